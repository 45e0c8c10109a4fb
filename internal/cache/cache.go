// Package cache provides a small TTL cache with an entry bound.
// It replaces ad-hoc memoisation around side-effecting fetches: the cache
// is constructed once at process start, injected where lookups are
// needed, and invalidated explicitly.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	expires time.Time
}

// Cache is a string-keyed TTL cache. Safe for concurrent use.
type Cache[V any] struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]entry[V]

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a cache whose entries expire after ttl. When maxEntries is
// positive, inserting beyond the bound evicts the entry closest to
// expiry.
func New[V any](ttl time.Duration, maxEntries int) *Cache[V] {
	return &Cache[V]{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]entry[V]),
		now:        time.Now,
	}
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value under key with a fresh TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	c.entries[key] = entry[V]{value: value, expires: c.now().Add(c.ttl)}
}

// Invalidate removes a single entry.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Purge removes every entry.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// evictOldest drops the entry closest to expiry. Caller holds the lock.
func (c *Cache[V]) evictOldest() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, e := range c.entries {
		if first || e.expires.Before(oldest) {
			oldestKey, oldest = key, e.expires
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
