package kv

import (
	"context"
	"testing"
	"time"

	"passport/internal/domain/entity"
	"passport/internal/infra/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *cache.MemoryCache {
	t.Helper()

	c := cache.NewMemoryCache(cache.WithJanitorInterval(0))
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestCaptchaRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCaptchaRepository(newCache(t))

	entry := &entity.CaptchaEntry{Code: "123456", IssuedAt: time.Now(), TTL: time.Minute}
	require.NoError(t, repo.Save(ctx, entity.SchemeSMS, "+15551234567", entry))

	got, err := repo.Find(ctx, entity.SchemeSMS, "+15551234567")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "123456", got.Code)

	other, err := repo.Find(ctx, entity.SchemeEmail, "+15551234567")
	require.NoError(t, err)
	assert.Nil(t, other, "codes are scoped by scheme")

	taken, err := repo.Take(ctx, entity.SchemeSMS, "+15551234567")
	require.NoError(t, err)
	require.NotNil(t, taken)

	gone, err := repo.Find(ctx, entity.SchemeSMS, "+15551234567")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCaptchaRepository_ExpiredEntryIsAbsent(t *testing.T) {
	ctx := context.Background()
	issued := time.Now()
	now := issued
	repo := NewCaptchaRepository(newCache(t), WithClock(func() time.Time { return now }))

	require.NoError(t, repo.Save(ctx, entity.SchemeSMS, "id", &entity.CaptchaEntry{Code: "1", IssuedAt: issued, TTL: time.Minute}))

	now = issued.Add(61 * time.Second)

	got, err := repo.Find(ctx, entity.SchemeSMS, "id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCaptchaRepository_SaveIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewCaptchaRepository(newCache(t))
	now := time.Now()

	ok, err := repo.SaveIfAbsent(ctx, entity.SchemeTOTP, "u1:287082", &entity.CaptchaEntry{Code: "287082", IssuedAt: now, TTL: time.Minute})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SaveIfAbsent(ctx, entity.SchemeTOTP, "u1:287082", &entity.CaptchaEntry{Code: "287082", IssuedAt: now, TTL: time.Minute})
	require.NoError(t, err)
	assert.False(t, ok, "a live entry blocks the second claim")

	ok, err = repo.SaveIfAbsent(ctx, entity.SchemeTOTP, "u1:111111", &entity.CaptchaEntry{Code: "111111", IssuedAt: now, TTL: time.Minute})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SaveIfAbsent(ctx, entity.SchemeTOTP, "u1:222222", &entity.CaptchaEntry{Code: "222222", IssuedAt: now.Add(-2 * time.Minute), TTL: time.Minute})
	require.NoError(t, err)
	assert.False(t, ok, "an already expired entry is never stored")

	got, err := repo.Find(ctx, entity.SchemeTOTP, "u1:222222")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepository(newCache(t))

	record := &entity.TokenRecord{Token: "r2a_abc", Subject: "u1", Type: entity.TokenTypeOpaque, ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, repo.Save(ctx, record))

	got, err := repo.Find(ctx, "r2a_abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.Subject)
	assert.Equal(t, "r2a_abc", got.Token)

	require.NoError(t, repo.Delete(ctx, "r2a_abc"))
	got, err = repo.Find(ctx, "r2a_abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRefreshTokenRepository_ConsumeOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewRefreshTokenRepository(newCache(t))

	record := &entity.RefreshTokenRecord{Token: "rt", Subject: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Save(ctx, record))

	found, err := repo.Find(ctx, "rt")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Consumed)

	consumed, err := repo.Consume(ctx, "rt")
	require.NoError(t, err)
	require.NotNil(t, consumed)
	assert.True(t, consumed.Consumed)

	again, err := repo.Consume(ctx, "rt")
	require.NoError(t, err)
	assert.Nil(t, again)

	subject, used, err := repo.WasConsumed(ctx, "rt")
	require.NoError(t, err)
	assert.True(t, used)
	assert.Equal(t, "u1", subject)
}

func TestRefreshTokenRepository_Revoke(t *testing.T) {
	ctx := context.Background()
	repo := NewRefreshTokenRepository(newCache(t))

	require.NoError(t, repo.Save(ctx, &entity.RefreshTokenRecord{Token: "rt", Subject: "u1", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, repo.Revoke(ctx, "rt"))

	found, err := repo.Find(ctx, "rt")
	require.NoError(t, err)
	assert.Nil(t, found)

	_, used, err := repo.WasConsumed(ctx, "rt")
	require.NoError(t, err)
	assert.False(t, used)
}
