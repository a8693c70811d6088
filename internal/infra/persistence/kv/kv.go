// Package kv implements the code and token repositories on top of the shared
// TTL cache. Records are stored as JSON.
package kv

import (
	"context"
	"encoding/json"
	"time"

	"passport/internal/domain/repository"

	"github.com/pkg/errors"
)

// Option configures a repository.
type Option func(*clock)

// WithClock replaces time.Now for expiry checks and TTL computation.
func WithClock(now func() time.Time) Option {
	return func(c *clock) {
		if now != nil {
			c.now = now
		}
	}
}

type clock struct {
	now func() time.Time
}

func newClock(opts []Option) clock {
	c := clock{now: time.Now}
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

func put(ctx context.Context, cache repository.Cache, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}

	return errors.WithStack(cache.Set(ctx, key, data, ttl))
}

func putIfAbsent(ctx context.Context, cache repository.Cache, key string, value any, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, errors.Wrapf(err, "encode %s", key)
	}
	ok, err := cache.SetNX(ctx, key, data, ttl)

	return ok, errors.WithStack(err)
}

func get[T any](ctx context.Context, cache repository.Cache, key string) (*T, error) {
	data, ok, err := cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, errors.WithStack(err)
	}

	return decode[T](key, data)
}

func take[T any](ctx context.Context, cache repository.Cache, key string) (*T, error) {
	data, ok, err := cache.Take(ctx, key)
	if err != nil || !ok {
		return nil, errors.WithStack(err)
	}

	return decode[T](key, data)
}

func decode[T any](key string, data []byte) (*T, error) {
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, errors.Wrapf(err, "decode %s", key)
	}

	return out, nil
}
