package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is the capacity used by NewLRU when given a non-positive size.
const DefaultCapacity = 1000

// LRU is a fixed-capacity cache that evicts the least recently used entry.
// Get refreshes the entry's recency.
type LRU[K comparable, V any] struct {
	capacity int
	c        *lru.Cache[K, V]
}

// NewLRU creates an LRU cache with the given capacity.
// A non-positive capacity falls back to DefaultCapacity.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	// lru.New only fails for a non-positive size.
	c, _ := lru.New[K, V](capacity)
	return &LRU[K, V]{capacity: capacity, c: c}
}

// Capacity returns the maximum number of entries.
func (c *LRU[K, V]) Capacity() int { return c.capacity }

// Get returns the cached value and refreshes its recency.
func (c *LRU[K, V]) Get(key K) (V, bool) { return c.c.Get(key) }

// Set stores a value. If the cache is full the oldest entry is evicted.
func (c *LRU[K, V]) Set(key K, value V) { c.c.Add(key, value) }

// Delete removes a key if present.
func (c *LRU[K, V]) Delete(key K) { c.c.Remove(key) }

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int { return c.c.Len() }

// Clear drops every entry. Capacity is unchanged.
func (c *LRU[K, V]) Clear() { c.c.Purge() }
