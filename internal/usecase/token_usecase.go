package usecase

import (
	"context"

	"passport/internal/domain/entity"
)

// --- Input DTOs ---

// LogoutInput names the tokens to withdraw.
type LogoutInput struct {
	RefreshToken string
	// AuthorizationHeader is the raw header of the logout request. Cache-bound
	// access tokens found in it are revoked as well.
	AuthorizationHeader string
}

// --- Output DTOs ---

// TokenOutput is the token pair handed to a client.
type TokenOutput struct {
	AccessToken  string
	RefreshToken string // empty when the token type does not support refresh
	TokenType    entity.TokenType
	ExpiresIn    int64 // seconds, 0 when the token does not expire
	Subject      string
}

// Introspection is the result of validating an Authorization header.
type Introspection struct {
	Kind   entity.CredentialKind
	Record *entity.TokenRecord
}

// TokenUsecase issues, validates and rotates tokens.
type TokenUsecase interface {
	// Issue mints an access token, and a refresh token when supported, for
	// session. An empty tokenType selects the configured default.
	Issue(ctx context.Context, session *entity.Session, tokenType entity.TokenType) (*TokenOutput, error)
	// Validate classifies header and validates it with the matching builder.
	// Failures are typed: ErrUnauthorized, ErrTokenNotFound or ErrTokenExpired.
	Validate(ctx context.Context, header string) (*Introspection, error)
	// Refresh exchanges a refresh token for a new pair. The old refresh
	// token is usable exactly once; nil output means it was absent, expired
	// or already used.
	Refresh(ctx context.Context, refreshToken string) (*TokenOutput, error)
	// Logout revokes the given tokens. Unknown tokens are ignored.
	Logout(ctx context.Context, input LogoutInput) error
}
