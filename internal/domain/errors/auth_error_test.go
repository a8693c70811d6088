package errors

import (
	"net/http"
	"testing"

	"passport/internal/domain/entity"
	"passport/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthError_KeepsCauseInternally(t *testing.T) {
	err := errors.Wrap(NewAuthError(ErrUserNotFound, entity.SchemeSMS, "+15551234567"), "login failed")

	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.False(t, errors.Is(err, ErrCredentialMismatch))
	assert.True(t, IsAuthFailure(err))

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, entity.SchemeSMS, authErr.Scheme)
	assert.Equal(t, "+15551234567", authErr.Identifier)
	assert.Contains(t, authErr.Error(), "USER_NOT_FOUND")
}

func TestAuthError_CollapsesOnTheWire(t *testing.T) {
	notFound := NewAuthError(ErrUserNotFound, entity.SchemePassword, "a@b.c")
	mismatch := NewAuthError(ErrCredentialMismatch, entity.SchemePassword, "a@b.c")

	for _, appErr := range []AppError{notFound, mismatch} {
		assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
		assert.Equal(t, "INVALID_CREDENTIALS", appErr.ErrorCode())
		assert.Equal(t, ErrInvalidCredentials.Message(), appErr.Message())
		assert.Empty(t, appErr.Details())
	}
}

func TestBaseError_WrapMessage(t *testing.T) {
	err := ErrTokenExpired.WrapMessage("validate token")

	assert.True(t, errors.Is(err, ErrTokenExpired))
	assert.Contains(t, err.Error(), "validate token")
}
