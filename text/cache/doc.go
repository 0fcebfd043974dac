// Package cache provides ShapeCache, the content-addressed store of shape
// results a text.Shaper consults before calling its backend.
//
// A ShapeCache may be shared by any number of shapers:
//
//	c := cache.NewShapeCache(4096)
//	s1 := text.NewShaper(backend, text.WithCache(c))
//	s2 := text.NewShaper(other, text.WithCache(c))
//
// One mutex guards every lookup and insert. Two goroutines missing on the
// same key both compute the result and the later Set wins; the values are
// equivalent, so readers never observe an inconsistency.
package cache
