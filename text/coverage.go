package text

import "sync"

// glyphCoverage remembers which runes a typeface maps to a glyph, two bits
// per rune: checked and covered. Blocks of 256 runes are allocated on first
// use, so sparse lookups across Unicode stay small.
//
// glyphCoverage is safe for concurrent use and must not be copied.
type glyphCoverage struct {
	mu     sync.RWMutex
	blocks map[uint32]*coverageBlock
}

type coverageBlock struct {
	bits [8]uint64
}

func newGlyphCoverage() *glyphCoverage {
	return &glyphCoverage{blocks: make(map[uint32]*coverageBlock)}
}

func coverageBit(r rune) (block uint32, word, shift uint32) {
	i := (uint32(r) & 0xff) * 2
	return uint32(r) >> 8, i / 64, i % 64
}

// get returns whether r is covered and whether r was checked at all.
func (c *glyphCoverage) get(r rune) (covered, checked bool) {
	blk, word, shift := coverageBit(r)
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.blocks[blk]
	if !ok {
		return false, false
	}
	w := b.bits[word] >> shift
	return w&2 != 0, w&1 != 0
}

func (c *glyphCoverage) set(r rune, covered bool) {
	blk, word, shift := coverageBit(r)
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.blocks[blk]
	if !ok {
		b = &coverageBlock{}
		c.blocks[blk] = b
	}
	b.bits[word] |= 1 << shift
	if covered {
		b.bits[word] |= 2 << shift
	} else {
		b.bits[word] &^= 2 << shift
	}
}

// lookup returns the cached coverage of r, computing it with has on a miss.
func (c *glyphCoverage) lookup(r rune, has func(rune) bool) bool {
	if covered, checked := c.get(r); checked {
		return covered
	}
	covered := has(r)
	c.set(r, covered)
	return covered
}

func (c *glyphCoverage) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = make(map[uint32]*coverageBlock)
}
