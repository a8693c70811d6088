package kv

import (
	"context"
	"time"

	"passport/internal/domain/constants"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"

	"github.com/pkg/errors"
)

type tokenRepository struct {
	cache repository.Cache
	now   func() time.Time
}

// NewTokenRepository keeps cache-bound access tokens until they expire.
func NewTokenRepository(cache repository.Cache, opts ...Option) repository.TokenRepository {
	return &tokenRepository{cache: cache, now: newClock(opts).now}
}

func (r *tokenRepository) Save(ctx context.Context, record *entity.TokenRecord) error {
	return put(ctx, r.cache, constants.AccessTokenKeyPrefix+record.Token, record, record.ExpiresAt.Sub(r.now()))
}

func (r *tokenRepository) Find(ctx context.Context, token string) (*entity.TokenRecord, error) {
	record, err := get[entity.TokenRecord](ctx, r.cache, constants.AccessTokenKeyPrefix+token)
	if err != nil || record == nil {
		return nil, err
	}
	record.Token = token

	return record, nil
}

func (r *tokenRepository) Delete(ctx context.Context, token string) error {
	return errors.WithStack(r.cache.Delete(ctx, constants.AccessTokenKeyPrefix+token))
}

type refreshTokenRepository struct {
	cache repository.Cache
	now   func() time.Time
}

// NewRefreshTokenRepository keeps single-use refresh tokens. Consumed tokens
// leave a marker behind until their original expiry.
func NewRefreshTokenRepository(cache repository.Cache, opts ...Option) repository.RefreshTokenRepository {
	return &refreshTokenRepository{cache: cache, now: newClock(opts).now}
}

func (r *refreshTokenRepository) Save(ctx context.Context, record *entity.RefreshTokenRecord) error {
	return put(ctx, r.cache, constants.RefreshTokenKeyPrefix+record.Token, record, record.ExpiresAt.Sub(r.now()))
}

func (r *refreshTokenRepository) Find(ctx context.Context, token string) (*entity.RefreshTokenRecord, error) {
	record, err := get[entity.RefreshTokenRecord](ctx, r.cache, constants.RefreshTokenKeyPrefix+token)
	if err != nil || record == nil {
		return nil, err
	}
	if record.Consumed || record.Expired(r.now()) {
		return nil, nil
	}
	record.Token = token

	return record, nil
}

func (r *refreshTokenRepository) Consume(ctx context.Context, token string) (*entity.RefreshTokenRecord, error) {
	record, err := take[entity.RefreshTokenRecord](ctx, r.cache, constants.RefreshTokenKeyPrefix+token)
	if err != nil || record == nil {
		return nil, err
	}
	record.Token = token
	record.Consumed = true

	if remaining := record.ExpiresAt.Sub(r.now()); remaining > 0 {
		if err := r.cache.Set(ctx, constants.ConsumedKeyPrefix+token, []byte(record.Subject), remaining); err != nil {
			return record, errors.Wrap(err, "mark refresh token consumed")
		}
	}

	return record, nil
}

func (r *refreshTokenRepository) WasConsumed(ctx context.Context, token string) (string, bool, error) {
	subject, ok, err := r.cache.Get(ctx, constants.ConsumedKeyPrefix+token)
	if err != nil {
		return "", false, errors.WithStack(err)
	}

	return string(subject), ok, nil
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	return errors.WithStack(r.cache.Delete(ctx, constants.RefreshTokenKeyPrefix+token))
}
