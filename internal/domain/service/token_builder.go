package service

import (
	"context"

	"passport/internal/domain/entity"
)

// TokenBuilder mints and validates access tokens of one format, and mints
// refresh tokens when the format supports them.
type TokenBuilder interface {
	// Type returns the token type this builder handles.
	Type() entity.TokenType

	// AccessOf mints an access token for session.
	AccessOf(ctx context.Context, session *entity.Session) (*entity.TokenRecord, error)

	// SubjectOf validates token and returns what it asserts. Unknown tokens
	// yield ErrTokenNotFound, stale ones ErrTokenExpired.
	SubjectOf(ctx context.Context, token string) (*entity.TokenRecord, error)

	// RefreshOf mints a refresh token for session, or fails with
	// ErrRefreshUnsupported.
	RefreshOf(ctx context.Context, session *entity.Session) (*entity.RefreshTokenRecord, error)
}

// TokenRevoker is implemented by builders whose tokens can be withdrawn
// before they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string) error
}

// TokenBuilders resolves builders by token type.
type TokenBuilders interface {
	// Builder returns the builder for tokenType. An unregistered type is a
	// configuration error.
	Builder(tokenType entity.TokenType) (TokenBuilder, error)
	// Types lists the registered token types.
	Types() []entity.TokenType
}
