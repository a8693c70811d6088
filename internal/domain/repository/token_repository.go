package repository

import (
	"context"

	"passport/internal/domain/entity"
)

// CaptchaRepository stores one live code per (scheme, identifier).
type CaptchaRepository interface {
	// Save stores entry, overwriting any earlier code for the pair.
	Save(ctx context.Context, scheme entity.Scheme, identifier string, entry *entity.CaptchaEntry) error

	// SaveIfAbsent stores entry only when no live code exists for the pair and
	// reports whether it did.
	SaveIfAbsent(ctx context.Context, scheme entity.Scheme, identifier string, entry *entity.CaptchaEntry) (bool, error)

	// Find returns the live entry or nil when absent or expired.
	Find(ctx context.Context, scheme entity.Scheme, identifier string) (*entity.CaptchaEntry, error)

	// Take atomically removes and returns the live entry, or nil.
	Take(ctx context.Context, scheme entity.Scheme, identifier string) (*entity.CaptchaEntry, error)
}

// TokenRepository keeps cache-bound access tokens.
type TokenRepository interface {
	Save(ctx context.Context, record *entity.TokenRecord) error
	Find(ctx context.Context, token string) (*entity.TokenRecord, error)
	Delete(ctx context.Context, token string) error
}

// RefreshTokenRepository keeps single-use refresh tokens.
type RefreshTokenRepository interface {
	// Save persists a new refresh token record until its expiry.
	Save(ctx context.Context, record *entity.RefreshTokenRecord) error

	// Find returns the live record or nil when absent or expired.
	Find(ctx context.Context, token string) (*entity.RefreshTokenRecord, error)

	// Consume atomically removes the live record and returns it flagged as
	// consumed. A nil record means another caller consumed it first.
	Consume(ctx context.Context, token string) (*entity.RefreshTokenRecord, error)

	// WasConsumed reports whether token was consumed within its lifetime and
	// returns the subject it was issued to.
	WasConsumed(ctx context.Context, token string) (subject string, used bool, err error)

	// Revoke drops the token without marking it consumed.
	Revoke(ctx context.Context, token string) error
}
