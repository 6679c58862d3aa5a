// Package cache holds a small in-memory TTL cache that keeps hot read
// paths off the database between writes.
package cache

import (
	"sync"
	"time"
)

// TTLCache is a concurrency-safe map with per-entry expiry. Expired
// entries are reaped lazily on the next Get, not by a background
// goroutine. A nil *TTLCache behaves as a cache that never hits, so
// callers may leave it unwired.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
}

type entry[V any] struct {
	value    V
	deadline time.Time
}

func NewTTLCache[K comparable, V any]() *TTLCache[K, V] {
	return &TTLCache[K, V]{entries: make(map[K]entry[V])}
}

// Get returns the value stored under key, or a miss when the key is
// absent or past its deadline.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		c.Delete(key)
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. A ttl of zero or less keeps the entry
// until it is deleted.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if c == nil {
		return
	}
	e := entry[V]{value: value}
	if ttl > 0 {
		e.deadline = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// Delete drops key. Deleting an absent key is a no-op.
func (c *TTLCache[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
