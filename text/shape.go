package text

import "fmt"

// ShapeStyle is the part of a text style that affects shaping.
// It is comparable and forms part of the shape cache key.
type ShapeStyle struct {
	Font       FontDescriptor
	Size       float64
	FakeBold   bool
	FakeItalic bool
}

// ShapeKey identifies one shaping computation.
type ShapeKey struct {
	Text  string
	Style ShapeStyle
	RTL   bool
}

// NewShapeKey builds the key for text shaped with style.
func NewShapeKey(text []rune, style ShapeStyle, rtl bool) ShapeKey {
	return ShapeKey{Text: string(text), Style: style, RTL: rtl}
}

// Glyph is one glyph as produced by a Backend.
type Glyph struct {
	// ID is the glyph index in Font.
	ID GlyphID
	// Font is the typeface the glyph comes from.
	Font Typeface
	// Cluster is the index of the first character the glyph belongs to.
	Cluster int
	// XAdvance and YAdvance move the pen after the glyph.
	XAdvance, YAdvance float64
	// XOffset and YOffset displace the glyph from the pen position.
	XOffset, YOffset float64
}

// ShapeResult is the shaped form of a ShapeKey: glyphs in logical order with
// advances, offsets and the maps between characters and glyphs.
//
// A ShapeResult is shared by pointer between the cache and every run with
// an equal key; it must not be modified once returned by a Shaper.
type ShapeResult struct {
	glyphs      []GlyphID
	fonts       []Typeface
	advances    [][2]float64
	positions   [][2]float64
	glyphToChar []int
	charToGlyph []int
	rtl         bool
}

// NewShapeResult builds a result for charCount characters from glyphs.
// Clusters must lie in [0, charCount). A character that starts no glyph
// maps to the glyph of the character before it.
func NewShapeResult(glyphs []Glyph, charCount int, rtl bool) (*ShapeResult, error) {
	r := &ShapeResult{
		glyphs:      make([]GlyphID, len(glyphs)),
		fonts:       make([]Typeface, len(glyphs)),
		advances:    make([][2]float64, len(glyphs)),
		positions:   make([][2]float64, len(glyphs)),
		glyphToChar: make([]int, len(glyphs)),
		charToGlyph: make([]int, charCount),
		rtl:         rtl,
	}
	for i, g := range glyphs {
		if g.Cluster < 0 || g.Cluster >= charCount {
			return nil, fmt.Errorf("%w: glyph %d cluster %d outside [0, %d)", ErrGlyphMapping, i, g.Cluster, charCount)
		}
		r.glyphs[i] = g.ID
		r.fonts[i] = g.Font
		r.advances[i] = [2]float64{g.XAdvance, g.YAdvance}
		r.positions[i] = [2]float64{g.XOffset, g.YOffset}
		r.glyphToChar[i] = g.Cluster
	}

	for k := range r.charToGlyph {
		r.charToGlyph[k] = -1
	}
	for i, c := range r.glyphToChar {
		if r.charToGlyph[c] == -1 {
			r.charToGlyph[c] = i
		}
	}
	for k := range r.charToGlyph {
		if r.charToGlyph[k] != -1 {
			continue
		}
		if k == 0 {
			return nil, fmt.Errorf("%w: first character has no glyph", ErrGlyphMapping)
		}
		r.charToGlyph[k] = r.charToGlyph[k-1]
	}
	return r, nil
}

// emptyShapeResult maps every character to a zero-advance missing glyph.
func emptyShapeResult(charCount int, rtl bool) *ShapeResult {
	glyphs := make([]Glyph, charCount)
	for i := range glyphs {
		glyphs[i].Cluster = i
	}
	r, _ := NewShapeResult(glyphs, charCount, rtl)
	return r
}

// GlyphCount returns the number of glyphs.
func (r *ShapeResult) GlyphCount() int { return len(r.glyphs) }

// CharCount returns the number of shaped characters.
func (r *ShapeResult) CharCount() int { return len(r.charToGlyph) }

// IsRTL reports whether the text was shaped right to left.
func (r *ShapeResult) IsRTL() bool { return r.rtl }

// Glyph returns the glyph id at glyph index i.
func (r *ShapeResult) Glyph(i int) GlyphID { return r.glyphs[i] }

// Advance returns the x and y advance of glyph i.
func (r *ShapeResult) Advance(i int) [2]float64 { return r.advances[i] }

// Position returns the x and y offset of glyph i from its pen position.
func (r *ShapeResult) Position(i int) [2]float64 { return r.positions[i] }

// Font returns the typeface of glyph i.
func (r *ShapeResult) Font(i int) Typeface { return r.fonts[i] }

// FontByChar returns the typeface of the glyph covering character c.
func (r *ShapeResult) FontByChar(c int) Typeface {
	return r.fonts[r.CharToGlyph(c)]
}

// CharToGlyph returns the first glyph of character c, or GlyphCount when c
// is out of range.
func (r *ShapeResult) CharToGlyph(c int) int {
	if c < 0 || c >= len(r.charToGlyph) {
		return len(r.glyphs)
	}
	return r.charToGlyph[c]
}

// GlyphToChar returns the character of glyph g, or CharCount when g is
// out of range.
func (r *ShapeResult) GlyphToChar(g int) int {
	if g < 0 || g >= len(r.glyphToChar) {
		return len(r.charToGlyph)
	}
	return r.glyphToChar[g]
}

// MeasureWidth sums the x advances of the glyphs covering count characters
// from start. Each distinct glyph with a positive advance contributes its
// advance plus letterSpacing.
func (r *ShapeResult) MeasureWidth(start, count int, letterSpacing float64) float64 {
	if start < 0 || count < 0 || start+count > r.CharCount() {
		panic(fmt.Sprintf("text: measure range [%d, %d) out of range [0, %d)", start, start+count, r.CharCount()))
	}
	var width float64
	prev := -1
	for k := start; k < start+count; k++ {
		g := r.charToGlyph[k]
		if g == prev {
			continue
		}
		if adv := r.advances[g][0]; adv > 0 {
			width += adv + letterSpacing
		}
		prev = g
	}
	return width
}

// zeroAdvance clears the advance of glyph g. Only the Shaper calls it,
// before the result is published.
func (r *ShapeResult) zeroAdvance(g int) {
	r.advances[g] = [2]float64{}
}

// ShapePiece is a view of the characters [start, end) of a ShapeResult.
// Character and glyph indices passed to its methods are relative to the
// piece.
type ShapePiece struct {
	result     *ShapeResult
	start, end int
}

// NewShapePiece returns the view of characters [start, end) of r.
func NewShapePiece(r *ShapeResult, start, end int) ShapePiece {
	if r == nil || start < 0 || start > end || end > r.CharCount() {
		panic(fmt.Sprintf("text: shape piece [%d, %d) out of range", start, end))
	}
	return ShapePiece{result: r, start: start, end: end}
}

// Result returns the underlying result.
func (p ShapePiece) Result() *ShapeResult { return p.result }

// Slice returns the view of piece characters [start, end).
func (p ShapePiece) Slice(start, end int) ShapePiece {
	if start < 0 || start > end || end > p.CharCount() {
		panic(fmt.Sprintf("text: slice [%d, %d) out of range [0, %d)", start, end, p.CharCount()))
	}
	return ShapePiece{result: p.result, start: p.start + start, end: p.start + end}
}

// Valid reports whether the piece covers at least one character.
func (p ShapePiece) Valid() bool { return p.result != nil && p.CharCount() > 0 }

// CharCount returns the number of characters in the piece.
func (p ShapePiece) CharCount() int { return p.end - p.start }

// GlyphCount returns the number of glyphs in the piece.
func (p ShapePiece) GlyphCount() int {
	return p.result.CharToGlyph(p.end) - p.result.CharToGlyph(p.start)
}

func (p ShapePiece) glyphBase() int { return p.result.CharToGlyph(p.start) }

// Glyph returns the glyph id at piece glyph index i.
func (p ShapePiece) Glyph(i int) GlyphID { return p.result.Glyph(p.glyphBase() + i) }

// Advance returns the advance at piece glyph index i.
func (p ShapePiece) Advance(i int) [2]float64 { return p.result.Advance(p.glyphBase() + i) }

// Position returns the offset at piece glyph index i.
func (p ShapePiece) Position(i int) [2]float64 { return p.result.Position(p.glyphBase() + i) }

// Font returns the typeface at piece glyph index i.
func (p ShapePiece) Font(i int) Typeface { return p.result.Font(p.glyphBase() + i) }

// FontByChar returns the typeface covering piece character c.
func (p ShapePiece) FontByChar(c int) Typeface { return p.result.FontByChar(p.start + c) }

// CharToGlyph maps a piece character to a piece glyph index.
func (p ShapePiece) CharToGlyph(c int) int {
	return p.result.CharToGlyph(p.start+c) - p.glyphBase()
}

// GlyphToChar maps a piece glyph index to a piece character.
func (p ShapePiece) GlyphToChar(g int) int {
	return p.result.GlyphToChar(p.glyphBase()+g) - p.start
}

// IsRTL reports whether the underlying text was shaped right to left.
func (p ShapePiece) IsRTL() bool { return p.result.IsRTL() }

// MeasureWidth is ShapeResult.MeasureWidth relative to the piece.
func (p ShapePiece) MeasureWidth(start, count int, letterSpacing float64) float64 {
	return p.result.MeasureWidth(p.start+start, count, letterSpacing)
}
