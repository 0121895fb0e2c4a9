package cache

import (
	"context"
	"sync"
	"time"
)

// TTLCache memoizes fetch results per key for a fixed window, preventing
// redundant upstream calls between refresh cycles. TTL and clock are
// injected so tests can drive expiry deterministically. Concurrent
// duplicate fetches within the race window are tolerated; last write wins.
type TTLCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

type entry struct {
	value     any
	fetchedAt time.Time
}

func NewTTLCache(ttl time.Duration, now func() time.Time) *TTLCache {
	if now == nil {
		now = time.Now
	}
	return &TTLCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry),
	}
}

func (c *TTLCache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, fetchedAt: c.now()}
}

// GetOrFetch returns the cached value for key if it is still within the
// TTL window, otherwise calls fetch, stores the result and returns it.
// Fetch errors are returned without poisoning the cache. The fetch runs
// outside the cache lock.
func GetOrFetch[T any](ctx context.Context, c *TTLCache, key string, fetch func(context.Context) (T, error)) (T, error) {
	if cached, ok := c.lookup(key); ok {
		return cached.(T), nil
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.store(key, value)
	return value, nil
}
