// Package cache provides the TTL key-value stores behind codes and tokens.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"passport/internal/domain/repository"

	"github.com/cespare/xxhash/v2"
	"github.com/jellydator/ttlcache/v3"
)

const (
	defaultShards          = 32
	defaultJanitorInterval = time.Minute
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

func (i memoryItem) live(now time.Time) bool {
	return now.Before(i.expiresAt)
}

// MemoryCache is an in-process Cache on top of ttlcache. Writes to a key are
// serialized by one of a fixed set of striped locks, which makes SetNX and
// Take atomic against the configured clock as well as ttlcache's own expiry.
type MemoryCache struct {
	items    *ttlcache.Cache[string, memoryItem]
	locks    []sync.Mutex
	now      func() time.Time
	interval time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// MemoryOption configures a MemoryCache.
type MemoryOption func(*MemoryCache)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

// WithShards sets the number of write lock stripes.
func WithShards(n int) MemoryOption {
	return func(c *MemoryCache) {
		if n > 0 {
			c.locks = make([]sync.Mutex, n)
		}
	}
}

// WithJanitorInterval sets how often expired entries are purged. Zero disables the janitor.
func WithJanitorInterval(interval time.Duration) MemoryOption {
	return func(c *MemoryCache) {
		c.interval = interval
	}
}

// NewMemoryCache creates a MemoryCache and starts its janitor.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		items: ttlcache.New[string, memoryItem](
			ttlcache.WithDisableTouchOnHit[string, memoryItem](),
		),
		locks:    make([]sync.Mutex, defaultShards),
		now:      time.Now,
		interval: defaultJanitorInterval,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.interval > 0 {
		c.wg.Add(1)
		go c.janitor()
	}

	return c
}

var _ repository.Cache = (*MemoryCache)(nil)

func (c *MemoryCache) lock(key string) func() {
	mu := &c.locks[xxhash.Sum64String(key)%uint64(len(c.locks))]
	mu.Lock()

	return mu.Unlock
}

// lookup returns the live item for key. Callers that write must hold the key's lock.
func (c *MemoryCache) lookup(key string) (memoryItem, bool) {
	entry := c.items.Get(key)
	if entry == nil {
		return memoryItem{}, false
	}
	item := entry.Value()
	if !item.live(c.now()) {
		return memoryItem{}, false
	}

	return item, true
}

func (c *MemoryCache) store(key string, value []byte, ttl time.Duration) {
	c.items.Set(key, memoryItem{value: clone(value), expiresAt: c.now().Add(ttl)}, ttl)
}

// Get implements repository.Cache.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, ok := c.lookup(key)
	if !ok {
		return nil, false, nil
	}

	return clone(item.value), true, nil
}

// Set implements repository.Cache. A non-positive ttl removes the key.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	defer c.lock(key)()

	if ttl <= 0 {
		c.items.Delete(key)

		return nil
	}
	c.store(key, value, ttl)

	return nil
}

// SetNX implements repository.Cache. A non-positive ttl stores nothing.
func (c *MemoryCache) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	defer c.lock(key)()

	if _, ok := c.lookup(key); ok {
		return false, nil
	}
	c.store(key, value, ttl)

	return true, nil
}

// Delete implements repository.Cache.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	defer c.lock(key)()
	c.items.Delete(key)

	return nil
}

// Take implements repository.Cache.
func (c *MemoryCache) Take(_ context.Context, key string) ([]byte, bool, error) {
	defer c.lock(key)()

	entry, ok := c.items.GetAndDelete(key)
	if !ok || entry == nil {
		return nil, false, nil
	}
	item := entry.Value()
	if !item.live(c.now()) {
		return nil, false, nil
	}

	return item.value, true, nil
}

// CountPrefix returns the number of live entries whose key starts with prefix.
func (c *MemoryCache) CountPrefix(prefix string) int {
	now := c.now()
	n := 0
	for key, entry := range c.items.Items() {
		if strings.HasPrefix(key, prefix) && entry.Value().live(now) {
			n++
		}
	}

	return n
}

// Purge drops every expired entry.
func (c *MemoryCache) Purge() {
	c.items.DeleteExpired()

	now := c.now()
	for key, entry := range c.items.Items() {
		if entry.Value().live(now) {
			continue
		}
		c.purgeKey(key)
	}
}

func (c *MemoryCache) purgeKey(key string) {
	defer c.lock(key)()

	if _, ok := c.lookup(key); !ok {
		c.items.Delete(key)
	}
}

// Close stops the janitor.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	c.wg.Wait()

	return nil
}

func (c *MemoryCache) janitor() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.Purge()
		}
	}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)

	return out
}
