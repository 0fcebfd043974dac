package cache

import (
	"github.com/gogpu/textlayout/internal/cache"
	"github.com/gogpu/textlayout/text"
)

// DefaultCapacity is a capacity suited to UI workloads.
const DefaultCapacity = 4096

// ShapeCache is a thread-safe LRU cache of shape results keyed by
// text.ShapeKey. It satisfies text.ResultCache.
//
// A capacity of zero keeps every entry: memory then grows with the number
// of distinct keys ever shaped.
type ShapeCache struct {
	entries *cache.Cache[text.ShapeKey, *text.ShapeResult]
}

// NewShapeCache creates a cache holding at most capacity results.
// Zero or a negative capacity means unbounded.
func NewShapeCache(capacity int) *ShapeCache {
	return &ShapeCache{entries: cache.New[text.ShapeKey, *text.ShapeResult](capacity)}
}

// DefaultShapeCache creates a cache of DefaultCapacity entries.
func DefaultShapeCache() *ShapeCache {
	return NewShapeCache(DefaultCapacity)
}

// Get retrieves a cached result. A hit marks the entry recently used.
func (c *ShapeCache) Get(key text.ShapeKey) (*text.ShapeResult, bool) {
	return c.entries.Get(key)
}

// Set stores a result. Nil values are ignored.
//
// The value is stored as-is (not copied). Callers must not modify it
// after caching.
func (c *ShapeCache) Set(key text.ShapeKey, value *text.ShapeResult) {
	if value == nil {
		return
	}
	c.entries.Set(key, value)
}

// GetOrCreate returns the cached result for key or stores the one create
// returns. Create runs without the lock held, so concurrent misses on one
// key may each call it; a nil result is returned but not stored.
func (c *ShapeCache) GetOrCreate(key text.ShapeKey, create func() *text.ShapeResult) *text.ShapeResult {
	if v, ok := c.entries.Get(key); ok {
		return v
	}
	v := create()
	if v != nil {
		c.entries.Set(key, v)
	}
	return v
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *ShapeCache) Delete(key text.ShapeKey) bool {
	return c.entries.Delete(key)
}

// Clear removes all entries. Statistics are kept.
func (c *ShapeCache) Clear() {
	c.entries.Clear()
}

// Len returns the number of entries.
func (c *ShapeCache) Len() int {
	return c.entries.Len()
}

// Capacity returns the capacity, zero when unbounded.
func (c *ShapeCache) Capacity() int {
	return c.entries.Capacity()
}

// CacheStats contains cache statistics for monitoring.
type CacheStats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the maximum number of entries, zero when unbounded.
	Capacity int
	// Hits is the number of cache hits.
	Hits uint64
	// Misses is the number of cache misses.
	Misses uint64
	// HitRate is the cache hit rate (0.0 to 1.0).
	HitRate float64
	// Evictions is the number of entries evicted.
	Evictions uint64
}

// Stats returns a snapshot of the cache statistics.
func (c *ShapeCache) Stats() CacheStats {
	s := c.entries.Stats()
	return CacheStats{
		Len:       s.Len,
		Capacity:  s.Capacity,
		Hits:      s.Hits,
		Misses:    s.Misses,
		HitRate:   s.HitRate,
		Evictions: s.Evictions,
	}
}

// ResetStats zeroes the hit, miss and eviction counters.
func (c *ShapeCache) ResetStats() {
	c.entries.ResetStats()
}
