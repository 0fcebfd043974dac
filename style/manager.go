package style

import "fmt"

// StyleRange is a range of characters sharing the same value for every
// requested attribute.
type StyleRange struct {
	Start, End int
	Style      Style
}

// Len returns the number of characters in the range.
func (r StyleRange) Len() int { return r.End - r.Start }

// Manager stores the character attributes of one paragraph as one sparse
// range list per attribute. Undefined positions take their value from the
// paragraph default style.
//
// A Manager is owned by its paragraph and is not safe for concurrent use.
type Manager struct {
	def   Style
	lists [attrCount]attrList
	extra map[AttrID]*RangeList[float64]
}

// NewManager returns a manager with the given paragraph default style.
// Attributes the default leaves undefined come from DefaultStyle.
func NewManager(def Style) *Manager {
	m := &Manager{extra: make(map[AttrID]*RangeList[float64])}
	for a := range m.lists {
		e := &attrTable[a]
		m.lists[a] = e.newList(e.merge)
	}
	m.SetParagraphStyle(def)
	return m
}

// Clone returns an independent copy of m.
func (m *Manager) Clone() *Manager {
	c := &Manager{def: m.def, extra: make(map[AttrID]*RangeList[float64], len(m.extra))}
	for a, l := range m.lists {
		c.lists[a] = l.clone()
	}
	for id, l := range m.extra {
		c.extra[id] = l.clone()
	}
	return c
}

// SetParagraphStyle replaces the default style.
func (m *Manager) SetParagraphStyle(def Style) {
	full := DefaultStyle()
	full.Merge(def)
	m.def = full
}

// ParagraphStyle returns the fully defined default style.
func (m *Manager) ParagraphStyle() Style { return m.def }

// ApplyStyleInRange stores every attribute s defines over [start, end).
func (m *Manager) ApplyStyleInRange(s Style, start, end int) {
	checkRange(start, end)
	for a := AttrID(0); a < attrCount; a++ {
		if s.Has(a) {
			m.lists[a].store(&s, start, end)
		}
	}
}

// ClearStyleInRange makes the attributes in mask undefined over
// [start, end).
func (m *Manager) ClearStyleInRange(mask AttrMask, start, end int) {
	checkRange(start, end)
	for a := AttrID(0); a < attrCount; a++ {
		if mask.Has(a) {
			m.lists[a].clear(start, end)
		}
	}
}

// Clear removes every stored attribute, extra attributes included.
func (m *Manager) Clear() {
	for _, l := range m.lists {
		l.reset()
	}
	m.ClearExtraAttributes()
}

// GetStyle returns the composed style at position i.
func (m *Manager) GetStyle(i int) Style {
	checkIndex(i)
	s := m.def
	for _, l := range m.lists {
		l.load(&s, i)
	}
	return s
}

// IsDefined reports whether attribute a is stored at position i, as
// opposed to coming from the default style.
func (m *Manager) IsDefined(a AttrID, i int) bool {
	checkIndex(i)
	if a >= attrCount {
		return false
	}
	var s Style
	return m.lists[a].load(&s, i)
}

// GetStyleRange returns the longest range beginning at start and ending no
// later than end over which every attribute in attrs is constant, together
// with the composed values of those attributes.
// Attributes outside attrs are left undefined in the result.
func (m *Manager) GetStyleRange(start, end int, attrs AttrMask) StyleRange {
	checkIndex(start)
	if end <= start {
		panic(fmt.Sprintf("style: invalid range [%d, %d)", start, end))
	}
	r := StyleRange{Start: start, End: end, Style: NewStyle()}
	for a := AttrID(0); a < attrCount; a++ {
		if !attrs.Has(a) {
			continue
		}
		if !m.lists[a].load(&r.Style, start) {
			attrTable[a].copy(&r.Style, &m.def)
		}
		s, e := m.lists[a].span(start)
		r.Start = max(r.Start, s)
		r.End = min(r.End, e)
	}
	return r
}

// NextStyleChange returns the first position after start, capped at end,
// where an attribute in attrs changes.
func (m *Manager) NextStyleChange(start, end int, attrs AttrMask) int {
	return m.GetStyleRange(start, end, attrs).End
}

// SetExtraFloat stores a float attribute that is not part of Style over
// [start, end).
func (m *Manager) SetExtraFloat(a AttrID, value float64, start, end int) {
	checkRange(start, end)
	l, ok := m.extra[a]
	if !ok {
		l = NewRangeList[float64]()
		m.extra[a] = l
	}
	l.SetRangeValue(start, end, value)
}

// ExtraFloat returns the extra attribute at i, or def when it is unset.
func (m *Manager) ExtraFloat(a AttrID, i int, def float64) float64 {
	checkIndex(i)
	if l, ok := m.extra[a]; ok {
		if v, ok := l.GetAttrValue(i); ok {
			return v
		}
	}
	return def
}

// ClearExtraAttributes drops every extra attribute.
func (m *Manager) ClearExtraAttributes() {
	clear(m.extra)
}

func checkRange(start, end int) {
	if start < 0 || end < start {
		panic(fmt.Sprintf("style: invalid range [%d, %d)", start, end))
	}
}

func checkIndex(i int) {
	if i < 0 {
		panic(fmt.Sprintf("style: negative index %d", i))
	}
}
