package errors

import (
	"fmt"

	"passport/internal/domain/entity"
	"passport/internal/errors"
)

// AuthError is a recoverable authentication failure. It keeps the offending
// identifier and scheme for audit logs and unwraps to its cause, so
// errors.Is(err, ErrUserNotFound) still works. Toward clients it reports the
// generic ErrInvalidCredentials so accounts cannot be enumerated.
type AuthError struct {
	Scheme     entity.Scheme
	Identifier string
	cause      *BaseError
}

// NewAuthError creates an AuthError for cause.
func NewAuthError(cause *BaseError, scheme entity.Scheme, identifier string) *AuthError {
	return &AuthError{
		Scheme:     scheme,
		Identifier: identifier,
		cause:      cause,
	}
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: scheme=%s identifier=%s", e.cause.ErrorCode(), e.Scheme, e.Identifier)
}

// Unwrap exposes the underlying taxonomy error.
func (e *AuthError) Unwrap() error {
	return e.cause
}

// Cause returns the taxonomy error behind the failure.
func (e *AuthError) Cause() *BaseError {
	return e.cause
}

func (e *AuthError) HTTPCode() int     { return ErrInvalidCredentials.HTTPCode() }
func (e *AuthError) ErrorCode() string { return ErrInvalidCredentials.ErrorCode() }
func (e *AuthError) Message() string   { return ErrInvalidCredentials.Message() }
func (e *AuthError) Details() string   { return "" }

// IsAuthFailure reports whether err is a user-not-found or credential-mismatch failure.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrCredentialMismatch)
}
