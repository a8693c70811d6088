package impl

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/infra/cache"
	"passport/internal/infra/persistence/kv"
	"passport/internal/infra/persistence/memory"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClock is a manually advanced clock shared by the cache and the code under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.Token.Issuer = "passport-test"
	cfg.Token.DefaultType = "jwt"
	cfg.Token.AccessTTL = 15 * time.Minute
	cfg.Token.RefreshTTL = time.Hour
	cfg.Captcha.Length = 6
	cfg.Captcha.SMS = config.CodeChannel{TTL: 60 * time.Second, Template: "sms_login"}
	cfg.Captcha.Email = config.CodeChannel{TTL: 5 * time.Minute, Template: "email_login"}
	cfg.TOTP.Skew = 1

	return cfg
}

// testStores holds the cache-backed repositories used across tests.
type testStores struct {
	cache    *cache.MemoryCache
	captchas repository.CaptchaRepository
	tokens   repository.TokenRepository
	refresh  repository.RefreshTokenRepository
}

func newTestStores(t *testing.T, clock *fakeClock) *testStores {
	t.Helper()

	opts := []cache.MemoryOption{cache.WithJanitorInterval(0)}
	var repoOpts []kv.Option
	if clock != nil {
		opts = append(opts, cache.WithClock(clock.Now))
		repoOpts = append(repoOpts, kv.WithClock(clock.Now))
	}
	c := cache.NewMemoryCache(opts...)
	t.Cleanup(func() { _ = c.Close() })

	return &testStores{
		cache:    c,
		captchas: kv.NewCaptchaRepository(c, repoOpts...),
		tokens:   kv.NewTokenRepository(c, repoOpts...),
		refresh:  kv.NewRefreshTokenRepository(c, repoOpts...),
	}
}

func newTestUsers() (*memory.UserRepository, *entity.User) {
	users := memory.NewUserRepository()
	alice := users.Add(&entity.User{
		Username:     "alice",
		Email:        "alice@example.com",
		Phone:        "+15550100",
		PasswordHash: "hashed-secret",
		Roles:        entity.Roles{entity.RoleUser},
	})

	return users, alice
}
