package text

// FixedTypeface is a typeface whose every glyph is one em square, with
// three quarters of the em above the baseline. It has a glyph for every
// rune and needs no font data, which makes layout results predictable.
type FixedTypeface struct {
	id     uint64
	family string
}

// NewFixedTypeface returns a fixed typeface named family.
func NewFixedTypeface(family string) *FixedTypeface {
	return &FixedTypeface{id: NextTypefaceID(), family: family}
}

// ID implements Typeface.
func (t *FixedTypeface) ID() uint64 { return t.id }

// FamilyName implements Typeface.
func (t *FixedTypeface) FamilyName() string { return t.family }

// Style implements Typeface.
func (t *FixedTypeface) Style() FontStyle { return StyleNormal }

// FontInfo implements Typeface.
func (t *FixedTypeface) FontInfo(size float64) FontInfo {
	return FontInfo{
		Top:     -0.75 * size,
		Ascent:  -0.75 * size,
		Descent: 0.25 * size,
		Bottom:  0.25 * size,
		Size:    size,
	}
}

// GlyphIndex implements Typeface.
func (t *FixedTypeface) GlyphIndex(r rune) GlyphID {
	return GlyphID(r%0xFFFF) + 1
}

// GlyphAdvance implements Typeface.
func (t *FixedTypeface) GlyphAdvance(_ GlyphID, size float64) float64 { return size }

// GlyphBounds implements Typeface.
func (t *FixedTypeface) GlyphBounds(_ GlyphID, size float64) Rect {
	return Rect{MinX: 0, MinY: -0.75 * size, MaxX: size, MaxY: 0.25 * size}
}

// FixedBackend shapes every character to one glyph of a FixedTypeface,
// advancing by the font size.
type FixedBackend struct {
	typeface *FixedTypeface
}

// NewFixedBackend returns a backend over a fresh FixedTypeface.
func NewFixedBackend() *FixedBackend {
	return &FixedBackend{typeface: NewFixedTypeface("fixed")}
}

// Typeface returns the typeface every glyph uses.
func (b *FixedBackend) Typeface() *FixedTypeface { return b.typeface }

// OnShapeText implements Backend.
func (b *FixedBackend) OnShapeText(key ShapeKey) (*ShapeResult, error) {
	runes := []rune(key.Text)
	glyphs := make([]Glyph, len(runes))
	for i, r := range runes {
		glyphs[i] = Glyph{
			ID:       b.typeface.GlyphIndex(r),
			Font:     b.typeface,
			Cluster:  i,
			XAdvance: key.Style.Size,
		}
	}
	return NewShapeResult(glyphs, len(runes), key.RTL)
}

// Metrics implements Backend.
func (b *FixedBackend) Metrics(style ShapeStyle) FontInfo {
	return b.typeface.FontInfo(style.Size)
}
