package impl

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	mockService "passport/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const directoryFilter = "(uid=jdoe)"

func newDirectoryConfig() *config.DirectoryConfig {
	return &config.DirectoryConfig{
		EmailAttribute: "mail",
		IDAttribute:    "employeeNumber",
		GroupAttribute: "memberOf",
	}
}

func TestDirectoryHandler_CanonicalEmail(t *testing.T) {
	ctx := context.Background()
	users, alice := newTestUsers()
	directory := mockService.NewMockDirectory(t)
	handler := NewDirectoryHandler(users, directory, newDirectoryConfig(), newDiscardLogger())

	directory.EXPECT().Filter("jdoe", "").Return(directoryFilter)
	directory.EXPECT().
		Attributes(ctx, directoryFilter, []string{"mail", "employeeNumber", "memberOf"}).
		Return(map[string][]string{
			"mail":     {"Alice@Example.com"},
			"memberOf": {"cn=ops,dc=example,dc=com"},
		}, nil).
		Once()
	directory.EXPECT().Bind(ctx, directoryFilter, "ldap-pass").Return(true, nil).Once()
	directory.EXPECT().
		Attributes(ctx, directoryFilter, []string{"mail", "employeeNumber"}).
		Return(map[string][]string{
			"mail":                       {"alice@example.com"},
			"employeeNumber":             {"42"},
			service.DirectoryDNAttribute: {"uid=jdoe,ou=people,dc=example,dc=com"},
		}, nil).
		Once()

	req := entity.NewDirectoryLogin("jdoe", "ldap-pass", "", entity.Scope{})

	user, err := handler.LoadUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)
	assert.Contains(t, user.Groups, "cn=ops,dc=example,dc=com")

	ok, err := handler.IsMatched(ctx, req, user)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "alice@example.com", req.Identifier, "the directory email replaces the submitted username")
	assert.Equal(t, "42", user.Attr(entity.ExtensionDirectoryID))
	assert.Equal(t, "uid=jdoe,ou=people,dc=example,dc=com", user.Attr(entity.ExtensionDirectoryDN))
}

func TestDirectoryHandler_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("no directory entry", func(t *testing.T) {
		users, _ := newTestUsers()
		directory := mockService.NewMockDirectory(t)
		handler := NewDirectoryHandler(users, directory, newDirectoryConfig(), newDiscardLogger())

		directory.EXPECT().Filter("ghost", "").Return("(uid=ghost)")
		directory.EXPECT().Attributes(ctx, "(uid=ghost)", mock.Anything).Return(nil, nil).Once()

		_, err := handler.LoadUser(ctx, entity.NewDirectoryLogin("ghost", "pw", "", entity.Scope{}))
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})

	t.Run("no local account", func(t *testing.T) {
		users, _ := newTestUsers()
		directory := mockService.NewMockDirectory(t)
		handler := NewDirectoryHandler(users, directory, newDirectoryConfig(), newDiscardLogger())

		directory.EXPECT().Filter("carol", "").Return("(uid=carol)")
		directory.EXPECT().Attributes(ctx, "(uid=carol)", mock.Anything).
			Return(map[string][]string{"mail": {"carol@example.com"}}, nil).Once()

		_, err := handler.LoadUser(ctx, entity.NewDirectoryLogin("carol", "pw", "", entity.Scope{}))
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})

	t.Run("bind rejected", func(t *testing.T) {
		users, alice := newTestUsers()
		directory := mockService.NewMockDirectory(t)
		handler := NewDirectoryHandler(users, directory, newDirectoryConfig(), newDiscardLogger())

		directory.EXPECT().Filter("jdoe", "7").Return(directoryFilter)
		directory.EXPECT().Bind(ctx, directoryFilter, "wrong").Return(false, nil).Once()

		req := entity.NewDirectoryLogin("jdoe", "wrong", "7", entity.Scope{})
		ok, err := handler.IsMatched(ctx, req, alice)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "jdoe", req.Identifier)
	})

	t.Run("directory unavailable", func(t *testing.T) {
		users, alice := newTestUsers()
		directory := mockService.NewMockDirectory(t)
		handler := NewDirectoryHandler(users, directory, newDirectoryConfig(), newDiscardLogger())

		directory.EXPECT().Filter("jdoe", "").Return(directoryFilter)
		directory.EXPECT().Bind(ctx, directoryFilter, "pw").
			Return(false, domainerrors.ErrDirectoryUnavailable.WrapMessage("dial timeout")).Once()

		_, err := handler.IsMatched(ctx, entity.NewDirectoryLogin("jdoe", "pw", "", entity.Scope{}), alice)
		assert.True(t, errors.Is(err, domainerrors.ErrDirectoryUnavailable))
		assert.False(t, domainerrors.IsAuthFailure(err))
	})

	t.Run("email changed between lookups", func(t *testing.T) {
		users, alice := newTestUsers()
		directory := mockService.NewMockDirectory(t)
		handler := NewDirectoryHandler(users, directory, newDirectoryConfig(), newDiscardLogger())

		directory.EXPECT().Filter("jdoe", "").Return(directoryFilter)
		directory.EXPECT().Bind(ctx, directoryFilter, "pw").Return(true, nil).Once()
		directory.EXPECT().Attributes(ctx, directoryFilter, mock.Anything).
			Return(map[string][]string{"mail": {"mallory@example.com"}}, nil).Once()

		ok, err := handler.IsMatched(ctx, entity.NewDirectoryLogin("jdoe", "pw", "", entity.Scope{}), alice)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNewDirectoryScheme_Unconfigured(t *testing.T) {
	users, _ := newTestUsers()
	reg := NewDirectoryScheme(DirectorySchemeParams{Config: newTestConfig(), Users: users, Logger: newDiscardLogger()})

	assert.Equal(t, entity.SchemeDirectory, reg.Scheme)
	assert.Nil(t, reg.Handler)
}

func TestGoogleHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("verified email logs in", func(t *testing.T) {
		users, alice := newTestUsers()
		verifier := mockService.NewMockIDTokenVerifier(t)
		handler := NewGoogleHandler(users, verifier, nil)

		verifier.EXPECT().VerifyIDToken(ctx, "id-token").
			Return(&service.OAuthUser{ID: "g-1", Email: "ALICE@example.com", EmailVerified: true}, nil).Twice()

		req := entity.NewGoogleLogin("id-token", "https://app.example.com/cb", entity.Scope{})
		user, err := handler.LoadUser(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
		assert.Equal(t, "alice@example.com", req.Identifier)

		ok, err := handler.IsMatched(ctx, req, user)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unverified email", func(t *testing.T) {
		users, _ := newTestUsers()
		verifier := mockService.NewMockIDTokenVerifier(t)
		handler := NewGoogleHandler(users, verifier, nil)

		verifier.EXPECT().VerifyIDToken(ctx, "id-token").
			Return(&service.OAuthUser{Email: "alice@example.com"}, nil).Once()
		verifier.EXPECT().Provider().Return("google").Maybe()

		_, err := handler.LoadUser(ctx, entity.NewGoogleLogin("id-token", "", entity.Scope{}))
		assert.True(t, errors.Is(err, domainerrors.ErrCredentialMismatch))
	})

	t.Run("invalid token", func(t *testing.T) {
		users, _ := newTestUsers()
		verifier := mockService.NewMockIDTokenVerifier(t)
		handler := NewGoogleHandler(users, verifier, nil)

		verifier.EXPECT().VerifyIDToken(ctx, "forged").Return(nil, errors.New("invalid signature")).Once()

		_, err := handler.LoadUser(ctx, entity.NewGoogleLogin("forged", "", entity.Scope{}))
		assert.True(t, errors.Is(err, domainerrors.ErrCredentialMismatch))
	})

	t.Run("unknown account", func(t *testing.T) {
		users, _ := newTestUsers()
		verifier := mockService.NewMockIDTokenVerifier(t)
		handler := NewGoogleHandler(users, verifier, nil)

		verifier.EXPECT().VerifyIDToken(ctx, "id-token").
			Return(&service.OAuthUser{Email: "dave@example.com", EmailVerified: true}, nil).Once()

		_, err := handler.LoadUser(ctx, entity.NewGoogleLogin("id-token", "", entity.Scope{}))
		assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	})
	t.Run("redirect URI outside the allow-list", func(t *testing.T) {
		users, alice := newTestUsers()
		verifier := mockService.NewMockIDTokenVerifier(t)
		handler := NewGoogleHandler(users, verifier, []string{"https://app.example.com/cb"})

		_, err := handler.LoadUser(ctx, entity.NewGoogleLogin("id-token", "https://evil.example.com/cb", entity.Scope{}))
		assert.True(t, errors.Is(err, domainerrors.ErrCredentialMismatch))

		ok, err := handler.IsMatched(ctx, entity.NewGoogleLogin("id-token", "", entity.Scope{}), alice)
		require.NoError(t, err)
		assert.False(t, ok, "a missing redirect URI is rejected once an allow-list is set")

		verifier.EXPECT().VerifyIDToken(ctx, "id-token").
			Return(&service.OAuthUser{Email: "alice@example.com", EmailVerified: true}, nil).Once()

		user, err := handler.LoadUser(ctx, entity.NewGoogleLogin("id-token", "https://app.example.com/cb", entity.Scope{}))
		require.NoError(t, err)
		assert.Equal(t, alice.ID, user.ID)
	})
}

func TestTOTPHandler(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	stores := newTestStores(t, clock)
	users, alice := newTestUsers()
	require.NoError(t, users.SetAttribute(ctx, alice.ID, entity.ExtensionTOTPSecret, "JBSWY3DPEHPK3PXP"))
	otp := mockService.NewMockOTPService(t)
	handler := NewTOTPHandler(users, otp, stores.captchas, 1, clock.Now, newDiscardLogger())

	req := entity.NewTOTPLogin("alice", "287082", entity.Scope{})
	user, err := handler.LoadUser(ctx, req)
	require.NoError(t, err)

	otp.EXPECT().Validate("287082", "JBSWY3DPEHPK3PXP", mock.AnythingOfType("time.Time")).Return(true)

	ok, err := handler.IsMatched(ctx, req, user)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = handler.IsMatched(ctx, req, user)
	require.NoError(t, err)
	assert.False(t, ok, "a passcode cannot be replayed inside its window")

	clock.Advance(91 * time.Second)
	ok, err = handler.IsMatched(ctx, req, user)
	require.NoError(t, err)
	assert.True(t, ok, "the replay guard expires with the validation window")
}

func TestTOTPHandler_ConcurrentSubmissionsAcceptOnce(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	stores := newTestStores(t, clock)
	users, alice := newTestUsers()
	require.NoError(t, users.SetAttribute(ctx, alice.ID, entity.ExtensionTOTPSecret, "JBSWY3DPEHPK3PXP"))
	otp := mockService.NewMockOTPService(t)
	otp.EXPECT().Validate("287082", "JBSWY3DPEHPK3PXP", mock.AnythingOfType("time.Time")).Return(true)
	handler := NewTOTPHandler(users, otp, stores.captchas, 1, clock.Now, newDiscardLogger())

	req := entity.NewTOTPLogin("alice", "287082", entity.Scope{})
	user, err := handler.LoadUser(ctx, req)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		accepted atomic.Int32
	)
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := handler.IsMatched(ctx, req, user)
			if err == nil && ok {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
}

func TestTOTPHandler_EarlierPasscodeStaysUsed(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	stores := newTestStores(t, clock)
	users, alice := newTestUsers()
	require.NoError(t, users.SetAttribute(ctx, alice.ID, entity.ExtensionTOTPSecret, "JBSWY3DPEHPK3PXP"))
	otp := mockService.NewMockOTPService(t)
	otp.EXPECT().Validate(mock.AnythingOfType("string"), "JBSWY3DPEHPK3PXP", mock.AnythingOfType("time.Time")).Return(true)
	handler := NewTOTPHandler(users, otp, stores.captchas, 1, clock.Now, newDiscardLogger())

	first := entity.NewTOTPLogin("alice", "287082", entity.Scope{})
	second := entity.NewTOTPLogin("alice", "431904", entity.Scope{})
	user, err := handler.LoadUser(ctx, first)
	require.NoError(t, err)

	ok, err := handler.IsMatched(ctx, first, user)
	require.NoError(t, err)
	assert.True(t, ok)

	clock.Advance(totpPeriod)
	ok, err = handler.IsMatched(ctx, second, user)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = handler.IsMatched(ctx, first, user)
	require.NoError(t, err)
	assert.False(t, ok, "accepting a newer passcode does not release an older one")
}

func TestTOTPHandler_Rejects(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores(t, nil)
	users, alice := newTestUsers()
	otp := mockService.NewMockOTPService(t)
	handler := NewTOTPHandler(users, otp, stores.captchas, 1, time.Now, newDiscardLogger())

	ok, err := handler.IsMatched(ctx, entity.NewTOTPLogin("alice", "123456", entity.Scope{}), alice)
	require.NoError(t, err)
	assert.False(t, ok, "user without enrollment")

	alice.SetAttr(entity.ExtensionTOTPSecret, "JBSWY3DPEHPK3PXP")
	otp.EXPECT().Validate("000000", "JBSWY3DPEHPK3PXP", mock.Anything).Return(false).Once()

	ok, err = handler.IsMatched(ctx, entity.NewTOTPLogin("alice", "000000", entity.Scope{}), alice)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = handler.IsMatched(ctx, entity.NewPasswordLogin("alice", "000000", entity.Scope{}), alice)
	assert.True(t, errors.Is(err, domainerrors.ErrSchemeMismatch))
}
