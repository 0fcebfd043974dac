// Package cache provides a generic, thread-safe LRU cache.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// A capacity of 0 builds an unbounded cache that never evicts. Use it only
// where the key space is bounded by the caller, such as font descriptors.
//
// # Thread Safety
//
// Cache is safe for concurrent use. A single mutex guards every operation;
// hit, miss and eviction counters are atomic so Stats never blocks on them.
// Cache must not be copied after creation (it contains a mutex).
package cache
