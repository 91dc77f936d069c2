// Package cache provides bounded in-memory caches for render-time memoization.
//
// Caches are explicit objects owned by the component that uses them (for
// example a text measurer), never package-level singletons, so independent
// renderer instances and tests do not share state.
//
// # Implementations
//
//   - [LRU]: fixed-capacity cache with least-recently-used eviction. Reads
//     refresh an entry's recency.
//   - [Null]: disabled cache that never stores anything.
//
// Both are safe for concurrent use.
//
// # Usage
//
//	c := cache.NewLRU[string, float64](512)
//	c.Set("Revenue", 47.5)
//	if w, ok := c.Get("Revenue"); ok {
//	    // use w
//	}
package cache

// Cache is a keyed in-memory store with a capacity bound.
type Cache[K comparable, V any] interface {
	// Get returns the value for key and whether it was present.
	Get(key K) (V, bool)
	// Set stores value under key, evicting older entries if needed.
	Set(key K, value V)
	// Delete removes key. Missing keys are ignored.
	Delete(key K)
	// Len reports the number of stored entries.
	Len() int
	// Clear removes every entry.
	Clear()
}

// New returns an LRU cache holding at most capacity entries, or a [Null]
// cache when capacity is not positive.
func New[K comparable, V any](capacity int) Cache[K, V] {
	if capacity <= 0 {
		return NewNull[K, V]()
	}
	return NewLRU[K, V](capacity)
}

// Null is a cache that stores nothing. Every Get is a miss.
type Null[K comparable, V any] struct{}

// NewNull creates a disabled cache.
func NewNull[K comparable, V any]() *Null[K, V] { return &Null[K, V]{} }

func (*Null[K, V]) Get(K) (V, bool) {
	var zero V
	return zero, false
}
func (*Null[K, V]) Set(K, V) {}
func (*Null[K, V]) Delete(K) {}
func (*Null[K, V]) Len() int { return 0 }
func (*Null[K, V]) Clear()   {}

// Ensure implementations satisfy Cache.
var (
	_ Cache[string, int] = (*Null[string, int])(nil)
	_ Cache[string, int] = (*LRU[string, int])(nil)
)
