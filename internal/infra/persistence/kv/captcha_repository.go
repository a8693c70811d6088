package kv

import (
	"context"
	"time"

	"passport/internal/domain/constants"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
)

type captchaRepository struct {
	clock
	cache repository.Cache
}

// NewCaptchaRepository stores codes under captcha:<scheme>:<identifier>.
func NewCaptchaRepository(cache repository.Cache, opts ...Option) repository.CaptchaRepository {
	return &captchaRepository{clock: newClock(opts), cache: cache}
}

func captchaKey(scheme entity.Scheme, identifier string) string {
	return constants.CaptchaKeyPrefix + scheme.String() + ":" + identifier
}

func (r *captchaRepository) Save(ctx context.Context, scheme entity.Scheme, identifier string, entry *entity.CaptchaEntry) error {
	return put(ctx, r.cache, captchaKey(scheme, identifier), entry, r.remaining(entry))
}

func (r *captchaRepository) SaveIfAbsent(ctx context.Context, scheme entity.Scheme, identifier string, entry *entity.CaptchaEntry) (bool, error) {
	ttl := r.remaining(entry)
	if ttl <= 0 {
		return false, nil
	}

	return putIfAbsent(ctx, r.cache, captchaKey(scheme, identifier), entry, ttl)
}

func (r *captchaRepository) remaining(entry *entity.CaptchaEntry) time.Duration {
	return entry.IssuedAt.Add(entry.TTL).Sub(r.now())
}

func (r *captchaRepository) Find(ctx context.Context, scheme entity.Scheme, identifier string) (*entity.CaptchaEntry, error) {
	entry, err := get[entity.CaptchaEntry](ctx, r.cache, captchaKey(scheme, identifier))
	if err != nil || entry == nil {
		return nil, err
	}
	if entry.Expired(r.now()) {
		return nil, nil
	}

	return entry, nil
}

func (r *captchaRepository) Take(ctx context.Context, scheme entity.Scheme, identifier string) (*entity.CaptchaEntry, error) {
	entry, err := take[entity.CaptchaEntry](ctx, r.cache, captchaKey(scheme, identifier))
	if err != nil || entry == nil {
		return nil, err
	}
	if entry.Expired(r.now()) {
		return nil, nil
	}

	return entry, nil
}
