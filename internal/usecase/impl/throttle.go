package impl

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterPruneThreshold = 4096

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter applies an independent token bucket per key. Idle buckets are
// dropped once the table grows past limiterPruneThreshold.
type keyedLimiter struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	idle    time.Duration
	entries map[string]*limiterEntry
}

func newKeyedLimiter(interval time.Duration, burst int) *keyedLimiter {
	if burst <= 0 {
		burst = 1
	}

	return &keyedLimiter{
		every:   rate.Every(interval),
		burst:   burst,
		idle:    interval * time.Duration(burst),
		entries: make(map[string]*limiterEntry),
	}
}

// AllowAt reports whether an event for key may happen at now.
func (l *keyedLimiter) AllowAt(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= limiterPruneThreshold {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.idle {
				delete(l.entries, k)
			}
		}
	}

	entry, ok := l.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.entries[key] = entry
	}
	entry.lastSeen = now

	return entry.limiter.AllowN(now, 1)
}
