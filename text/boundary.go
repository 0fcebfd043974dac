package text

import (
	"fmt"

	"github.com/go-text/typesetting/segmenter"
)

// BoundaryType classifies the position after a character. Larger values
// are stronger boundaries; a boundary of one type is also a boundary of
// every weaker type.
type BoundaryType uint8

const (
	BoundaryNone BoundaryType = iota
	// BoundaryGrapheme ends a grapheme cluster.
	BoundaryGrapheme
	// BoundaryWord ends a word.
	BoundaryWord
	// BoundaryLineBreakable allows a line break.
	BoundaryLineBreakable
	// BoundaryMustLineBreak forces a line break.
	BoundaryMustLineBreak
	// BoundaryParagraph ends the paragraph.
	BoundaryParagraph
)

// String returns the string representation of the boundary type.
func (b BoundaryType) String() string {
	switch b {
	case BoundaryNone:
		return "None"
	case BoundaryGrapheme:
		return "Grapheme"
	case BoundaryWord:
		return "Word"
	case BoundaryLineBreakable:
		return "LineBreakable"
	case BoundaryMustLineBreak:
		return "MustLineBreak"
	case BoundaryParagraph:
		return "Paragraph"
	default:
		return unknownStr
	}
}

// BoundaryAnalyst holds the boundary type after every character of a
// text, from the Unicode grapheme (UAX #29), word (UAX #29) and line
// breaking (UAX #14) rules.
type BoundaryAnalyst struct {
	boundary []BoundaryType
}

// NewBoundaryAnalyst classifies text.
func NewBoundaryAnalyst(text []rune) *BoundaryAnalyst {
	a := &BoundaryAnalyst{boundary: make([]BoundaryType, len(text))}
	if len(text) == 0 {
		return a
	}

	var seg segmenter.Segmenter
	seg.Init(text)

	graphemes := seg.GraphemeIterator()
	for graphemes.Next() {
		g := graphemes.Grapheme()
		a.mark(g.Offset+len(g.Text)-1, BoundaryGrapheme)
	}

	words := seg.WordIterator()
	for words.Next() {
		w := words.Word()
		a.mark(w.Offset-1, BoundaryWord)
		a.mark(w.Offset+len(w.Text)-1, BoundaryWord)
	}

	lines := seg.LineIterator()
	for lines.Next() {
		l := lines.Line()
		end := l.Offset + len(l.Text) - 1
		if l.IsMandatoryBreak && end < len(text)-1 {
			a.mark(end, BoundaryMustLineBreak)
		} else {
			a.mark(end, BoundaryLineBreakable)
		}
	}

	last := len(text) - 1
	if isHardBreak(text[last]) {
		a.mark(last, BoundaryMustLineBreak)
	} else {
		a.mark(last, BoundaryLineBreakable)
	}
	return a
}

// isHardBreak reports whether r ends a line by itself.
func isHardBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

func (a *BoundaryAnalyst) mark(k int, t BoundaryType) {
	if k >= 0 && k < len(a.boundary) && a.boundary[k] < t {
		a.boundary[k] = t
	}
}

// Len returns the number of classified characters.
func (a *BoundaryAnalyst) Len() int { return len(a.boundary) }

// Type returns the boundary after character k.
func (a *BoundaryAnalyst) Type(k int) BoundaryType {
	if k < 0 || k >= len(a.boundary) {
		panic(fmt.Sprintf("text: boundary index %d out of range [0, %d)", k, len(a.boundary)))
	}
	return a.boundary[k]
}

// TypeBefore returns the boundary before character k. The start of the
// text is line breakable.
func (a *BoundaryAnalyst) TypeBefore(k int) BoundaryType {
	if k == 0 {
		return BoundaryLineBreakable
	}
	return a.Type(k - 1)
}

// FindNextBoundary returns the position after the first character at or
// after start followed by a boundary of at least t, or Len.
func (a *BoundaryAnalyst) FindNextBoundary(start int, t BoundaryType) int {
	for k := max(start, 0); k < len(a.boundary); k++ {
		if a.boundary[k] >= t {
			return k + 1
		}
	}
	return len(a.boundary)
}

// FindPrevBoundary returns the greatest position p in (0, start] with a
// boundary of at least t before it, or 0.
func (a *BoundaryAnalyst) FindPrevBoundary(start int, t BoundaryType) int {
	for k := min(start, len(a.boundary)); k > 0; k-- {
		if a.TypeBefore(k) >= t {
			return k
		}
	}
	return 0
}

// UpgradeBoundaryType raises every boundary in [start, end) to at least t.
func (a *BoundaryAnalyst) UpgradeBoundaryType(start, end int, t BoundaryType) {
	if start < 0 || end > len(a.boundary) || start > end {
		panic(fmt.Sprintf("text: boundary range [%d, %d) out of range [0, %d)", start, end, len(a.boundary)))
	}
	for k := start; k < end; k++ {
		a.mark(k, t)
	}
}

// DowngradeBoundaryType lowers every boundary in [start, end) that is
// stronger than t but weaker than a mandatory break to t.
func (a *BoundaryAnalyst) DowngradeBoundaryType(start, end int, t BoundaryType) {
	if start < 0 || end > len(a.boundary) || start > end {
		panic(fmt.Sprintf("text: boundary range [%d, %d) out of range [0, %d)", start, end, len(a.boundary)))
	}
	for k := start; k < end; k++ {
		if a.boundary[k] > t && a.boundary[k] < BoundaryMustLineBreak {
			a.boundary[k] = t
		}
	}
}
