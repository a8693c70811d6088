package cache

import (
	"context"
	"time"

	"passport/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisCache is a Cache shared by every instance of the service.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache wraps client. Every key is stored under prefix.
func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

var _ repository.Cache = (*RedisCache)(nil)

func (c *RedisCache) key(key string) string {
	return c.prefix + key
}

// Get implements repository.Cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "redis get %s", key)
	}

	return value, true, nil
}

// Set implements repository.Cache. A non-positive ttl removes the key.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return c.Delete(ctx, key)
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return errors.Wrapf(err, "redis set %s", key)
	}

	return nil
}

// Delete implements repository.Cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return errors.Wrapf(err, "redis del %s", key)
	}

	return nil
}

// SetNX implements repository.Cache with SET NX PX.
func (c *RedisCache) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	ok, err := c.client.SetNX(ctx, c.key(key), value, ttl).Result()
	if err != nil {
		return false, errors.Wrapf(err, "redis setnx %s", key)
	}

	return ok, nil
}

// Take implements repository.Cache with GETDEL, which is atomic on the server.
func (c *RedisCache) Take(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.GetDel(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "redis getdel %s", key)
	}

	return value, true, nil
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return errors.Wrap(c.client.Ping(ctx).Err(), "redis ping")
}

// Close implements repository.Cache.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
