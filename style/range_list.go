package style

import (
	"fmt"
	"math"
	"sort"
)

// MaxIndex is the end of the gap after the last range of a RangeList.
const MaxIndex = math.MaxInt

// rangeEntry is one constant range [start, end).
type rangeEntry[T comparable] struct {
	start, end int
	value      T
}

// RangeList maps disjoint character ranges [start, end) to values of one
// attribute. Entries are kept sorted; with merging enabled, touching
// entries holding equal values are joined. A position covered by no entry
// is undefined.
//
// The zero value is an empty list with merging disabled; NewRangeList
// enables it.
type RangeList[T comparable] struct {
	entries []rangeEntry[T]
	merge   bool
}

// NewRangeList returns an empty list with merging enabled.
func NewRangeList[T comparable]() *RangeList[T] {
	return &RangeList[T]{merge: true}
}

// SetMerge enables or disables merging of equal neighbours. Existing
// entries are left as they are.
func (l *RangeList[T]) SetMerge(merge bool) { l.merge = merge }

// Merge reports whether merging is enabled.
func (l *RangeList[T]) Merge() bool { return l.merge }

// Len returns the number of stored entries.
func (l *RangeList[T]) Len() int { return len(l.entries) }

// Entry returns the k-th entry in position order.
func (l *RangeList[T]) Entry(k int) (start, end int, value T) {
	e := l.entries[k]
	return e.start, e.end, e.value
}

// Clear removes every entry.
func (l *RangeList[T]) Clear() { l.entries = l.entries[:0] }

// SetRangeValue sets value over [start, end), overwriting whatever the
// range covered. An empty range is a no-op.
func (l *RangeList[T]) SetRangeValue(start, end int, value T) {
	l.set(start, end, value, true)
}

// ClearRangeValue makes [start, end) undefined.
func (l *RangeList[T]) ClearRangeValue(start, end int) {
	var zero T
	l.set(start, end, zero, false)
}

func (l *RangeList[T]) set(start, end int, value T, defined bool) {
	if start < 0 || end < start {
		panic(fmt.Sprintf("style: invalid range [%d, %d)", start, end))
	}
	if start == end {
		return
	}

	out := make([]rangeEntry[T], 0, len(l.entries)+2)
	inserted := !defined
	for _, e := range l.entries {
		if e.end <= start {
			out = append(out, e)
			continue
		}
		if e.start >= end {
			if !inserted {
				out = append(out, rangeEntry[T]{start, end, value})
				inserted = true
			}
			out = append(out, e)
			continue
		}
		if e.start < start {
			out = append(out, rangeEntry[T]{e.start, start, e.value})
		}
		if !inserted {
			out = append(out, rangeEntry[T]{start, end, value})
			inserted = true
		}
		if e.end > end {
			out = append(out, rangeEntry[T]{end, e.end, e.value})
		}
	}
	if !inserted {
		out = append(out, rangeEntry[T]{start, end, value})
	}

	if l.merge {
		merged := out[:0]
		for _, e := range out {
			if n := len(merged); n > 0 && merged[n-1].end == e.start && merged[n-1].value == e.value {
				merged[n-1].end = e.end
				continue
			}
			merged = append(merged, e)
		}
		out = merged
	}
	l.entries = out
}

// find returns the index of the first entry ending after i.
func (l *RangeList[T]) find(i int) int {
	return sort.Search(len(l.entries), func(k int) bool { return l.entries[k].end > i })
}

// GetAttrValue returns the value at position i and whether it is defined.
func (l *RangeList[T]) GetAttrValue(i int) (T, bool) {
	if k := l.find(i); k < len(l.entries) && l.entries[k].start <= i {
		return l.entries[k].value, true
	}
	var zero T
	return zero, false
}

// GetAttributeRange returns the maximal entry containing i, or the gap
// around i when i is undefined. The gap after the last entry ends at
// MaxIndex.
func (l *RangeList[T]) GetAttributeRange(i int) (start, end int, defined bool) {
	k := l.find(i)
	if k < len(l.entries) && l.entries[k].start <= i {
		return l.entries[k].start, l.entries[k].end, true
	}
	if k > 0 {
		start = l.entries[k-1].end
	}
	end = MaxIndex
	if k < len(l.entries) {
		end = l.entries[k].start
	}
	return start, end, false
}

// clone returns an independent copy.
func (l *RangeList[T]) clone() *RangeList[T] {
	c := &RangeList[T]{merge: l.merge}
	c.entries = append(c.entries, l.entries...)
	return c
}
