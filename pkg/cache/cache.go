// Package cache implements a small in-process TTL cache.
//
// Eviction is lazy: an expired entry is removed the next time it is read,
// never by a background sweep. Keys() therefore may report entries that are
// already past their TTL. The cache is safe for concurrent use, but a
// Get-miss/compute/Set sequence is deliberately not atomic: two concurrent
// misses for the same key may both compute. Both results are equivalent, so
// the redundant work is accepted.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	storedAt time.Time
	ttl      time.Duration
}

// Cache is a key-value store with per-entry expiry.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	defaultTTL time.Duration
}

// New creates a cache whose Set entries expire after defaultTTL.
func New[V any](defaultTTL time.Duration) *Cache[V] {
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
	}
}

// Set stores value under key with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key with an explicit TTL.
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, storedAt: time.Now(), ttl: ttl}
}

// Get returns the value stored under key. An entry older than its TTL is
// evicted and reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if time.Since(e.storedAt) > e.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Delete removes a single entry.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Keys enumerates all currently stored keys, including stale entries that
// have not been read (and therefore not evicted) since expiring.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// DeleteMatching removes every entry whose key contains any of the given
// substrings and returns the number of entries removed.
func (c *Cache[V]) DeleteMatching(substrings ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.entries {
		for _, s := range substrings {
			if strings.Contains(k, s) {
				delete(c.entries, k)
				removed++
				break
			}
		}
	}
	return removed
}

// Len returns the number of stored entries, stale ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
