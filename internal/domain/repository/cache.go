package repository

import (
	"context"
	"time"
)

// Cache is the TTL key-value store behind codes and tokens. Implementations
// must be safe for concurrent use and atomic per key.
type Cache interface {
	// Get returns the value for key and whether it was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl, replacing any previous value.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores value under key for ttl only when no live value exists.
	// Of several concurrent callers at most one observes true.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete removes key. Removing a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Take atomically returns and removes the value for key. Of several
	// concurrent callers at most one observes ok == true.
	Take(ctx context.Context, key string) ([]byte, bool, error)

	// Close releases resources held by the cache.
	Close() error
}
