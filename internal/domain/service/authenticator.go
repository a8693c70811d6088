package service

import (
	"context"
	"time"

	"passport/internal/domain/entity"
)

// PreAuthProvider issues and verifies one-time codes for a single scheme.
type PreAuthProvider interface {
	Scheme() entity.Scheme

	// Authorize stores a new code for identifier and returns it for
	// out-of-band delivery. A zero ttl selects the scheme default.
	Authorize(ctx context.Context, identifier string, ttl time.Duration) (string, error)

	// IsMatched reports whether req carries the live code for its identifier.
	IsMatched(ctx context.Context, req *entity.LoginRequest) (bool, error)
}

// UserResolver loads the user a login request refers to.
type UserResolver interface {
	Scheme() entity.Scheme

	// LoadUser returns the user or an error wrapping ErrUserNotFound.
	LoadUser(ctx context.Context, req *entity.LoginRequest) (*entity.User, error)
}

// CredentialMatcher verifies the credential of a login request against a
// resolved user.
type CredentialMatcher interface {
	IsMatched(ctx context.Context, req *entity.LoginRequest, user *entity.User) (bool, error)
}

// SchemeHandler resolves and verifies logins for one scheme.
type SchemeHandler interface {
	UserResolver
	CredentialMatcher
}

// Authenticator runs a complete login.
type Authenticator interface {
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.Session, error)
}
