// Package cache provides a small keyed TTL cache for reads against the
// content plan and the slower-changing reference tables. Every write path
// must invalidate the matching key before the next read.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	fetchedAt time.Time
	ttl       time.Duration
}

// Cache is a concurrency-safe map of key -> (value, fetchedAt, ttl).
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// GetOrRefresh returns the cached value for key if it is still fresh,
// otherwise calls fetch, stores the result with the given ttl and returns
// it. A fetch error is returned as-is and nothing is cached.
func (c *Cache) GetOrRefresh(key string, ttl time.Duration, fetch func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.fetchedAt) < e.ttl {
		c.mu.Unlock()
		return e.value, nil
	}
	c.mu.Unlock()

	value, err := fetch()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, fetchedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
	return value, nil
}

// Invalidate drops the cached value for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
