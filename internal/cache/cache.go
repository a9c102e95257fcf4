package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"travana-referral-dashboard/internal/logger"
)

const DefaultTTL = 60 * time.Second

// Loader fetches the value for a key on a miss.
type Loader func(ctx context.Context) (any, error)

type entry struct {
	value     any
	expiresAt time.Time
}

// QueryCache is the in-process query cache keyed by user or organization.
// Mutations invalidate the keys they affect; entries also age out after the
// TTL. A zero or negative TTL keeps entries until invalidated.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	// gen is bumped on every invalidation so a load that started before it
	// cannot write back a stale value.
	gen   uint64
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group
}

func New(ttl time.Duration) *QueryCache {
	return &QueryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *QueryCache) expired(e entry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func (c *QueryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.expired(e, c.now()) {
		return nil, false
	}
	return e.value, true
}

func (c *QueryCache) Set(key string, value any) {
	c.mu.Lock()
	c.setLocked(key, value)
	c.mu.Unlock()
}

func (c *QueryCache) setLocked(key string, value any) {
	e := entry{value: value}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.entries[key] = e
}

// GetOrLoad returns the cached value or runs load, coalescing concurrent
// misses for the same key. Errors are returned to every waiter and never
// cached.
func (c *QueryCache) GetOrLoad(ctx context.Context, key string, load Loader) (any, error) {
	if v, ok := c.Get(key); ok {
		logger.CacheEvent("hit", key)
		return v, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		startGen := c.gen
		c.mu.RUnlock()

		logger.CacheEvent("load", key)
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen == startGen {
			c.setLocked(key, v)
		}
		c.mu.Unlock()
		return v, nil
	})
	if shared {
		logger.CacheEvent("coalesced", key)
	}
	return v, err
}

// Invalidate drops the given keys and reports how many were present.
func (c *QueryCache) Invalidate(keys ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	removed := 0
	for _, key := range keys {
		if _, ok := c.entries[key]; ok {
			delete(c.entries, key)
			removed++
		}
		c.group.Forget(key)
		logger.CacheEvent("invalidate", key)
	}
	return removed
}

func (c *QueryCache) InvalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			c.group.Forget(key)
			removed++
		}
	}
	logger.CacheEvent("invalidate_prefix", prefix, "removed", removed)
	return removed
}

// PurgeExpired removes aged-out entries and reports how many it dropped.
func (c *QueryCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Load is GetOrLoad with a typed result.
func Load[T any](ctx context.Context, c interface {
	GetOrLoad(ctx context.Context, key string, load Loader) (any, error)
}, key string, load func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		// A stale entry of another type is treated as a miss.
		return load(ctx)
	}
	return typed, nil
}
