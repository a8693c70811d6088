package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"

	"github.com/pkg/errors"
)

// MintFunc mints a new access token for the subject of a live refresh token.
type MintFunc func(ctx context.Context, record *entity.RefreshTokenRecord) (string, error)

// RefreshRotation exchanges single-use refresh tokens for new access tokens.
// The old token is consumed only after a new access token exists, and the
// consume is atomic, so each refresh token succeeds at most once.
type RefreshRotation struct {
	tokens repository.RefreshTokenRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewRefreshRotation creates the rotation service.
func NewRefreshRotation(tokens repository.RefreshTokenRepository, logger *slog.Logger) *RefreshRotation {
	return &RefreshRotation{tokens: tokens, now: time.Now, logger: logger}
}

func (r *RefreshRotation) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, r.logger)
}

// RefreshOf returns the access token minted for token, or "" when token is
// empty, unknown, expired, already used, or mint produced nothing. Only
// storage failures are returned as errors.
func (r *RefreshRotation) RefreshOf(ctx context.Context, token string, mint MintFunc) (string, error) {
	if token == "" {
		return "", nil
	}

	record, err := r.tokens.Find(ctx, token)
	if err != nil {
		return "", errors.Wrap(err, "failed to load refresh token")
	}
	if record == nil || record.Expired(r.now()) {
		r.reportReplay(ctx, token)

		return "", nil
	}

	access, err := mint(ctx, record)
	if err != nil {
		r.log(ctx).Error("Failed to mint access token on refresh",
			slog.String("subject", record.Subject),
			slog.Any("error", err),
		)

		return "", nil
	}
	if access == "" {
		return "", nil
	}

	consumed, err := r.tokens.Consume(ctx, token)
	if err != nil {
		return "", errors.Wrap(err, "failed to consume refresh token")
	}
	if consumed == nil {
		r.log(ctx).Warn("Refresh token consumed concurrently, dropping minted token",
			slog.String("subject", record.Subject),
		)

		return "", nil
	}

	r.log(ctx).Debug("Refresh token rotated", slog.String("subject", record.Subject))

	return access, nil
}

func (r *RefreshRotation) reportReplay(ctx context.Context, token string) {
	subject, used, err := r.tokens.WasConsumed(ctx, token)
	if err != nil || !used {
		return
	}

	r.log(ctx).Warn("Refresh token replayed after use", slog.String("subject", subject))
}
