package text

import (
	"sync/atomic"

	"github.com/gogpu/textlayout/internal/cache"
)

// Typeface is one font face usable for shaping and measuring.
// Sizes are in pixels per em. Implementations must be safe for
// concurrent use.
type Typeface interface {
	// ID returns a process-unique identifier.
	ID() uint64

	// FamilyName returns the family the typeface belongs to.
	FamilyName() string

	// Style returns the weight, width and slant of the typeface.
	Style() FontStyle

	// FontInfo returns the vertical metrics at size.
	FontInfo(size float64) FontInfo

	// GlyphIndex returns the glyph for r, or 0 when the typeface has none.
	GlyphIndex(r rune) GlyphID

	// GlyphAdvance returns the horizontal advance of g at size.
	GlyphAdvance(g GlyphID, size float64) float64

	// GlyphBounds returns the ink bounds of g at size, y down.
	GlyphBounds(g GlyphID, size float64) Rect
}

var typefaceIDs atomic.Uint64

// NextTypefaceID returns a fresh typeface identifier. Typeface
// implementations outside this package use it for ID.
func NextTypefaceID() uint64 {
	return typefaceIDs.Add(1)
}

// HasGlyph reports whether tf maps r to a glyph. Typefaces with a
// HasGlyph method of their own answer from it.
func HasGlyph(tf Typeface, r rune) bool {
	if tf == nil {
		return false
	}
	if c, ok := tf.(interface{ HasGlyph(rune) bool }); ok {
		return c.HasGlyph(r)
	}
	return tf.GlyphIndex(r) != 0
}

// SourceTypeface is the Typeface of a FontSource.
type SourceTypeface struct {
	source   *FontSource
	id       uint64
	metrics  *cache.Cache[float64, FontInfo]
	coverage *glyphCoverage
}

// NewTypeface returns the typeface of src.
func NewTypeface(src *FontSource) *SourceTypeface {
	if src == nil {
		panic("text: FontSource is nil; did you check the error from NewFontSource?")
	}
	src.copyCheck()
	return &SourceTypeface{
		source:   src,
		id:       NextTypefaceID(),
		metrics:  cache.New[float64, FontInfo](src.config.metricsLimit),
		coverage: newGlyphCoverage(),
	}
}

// Source returns the underlying font source.
func (t *SourceTypeface) Source() *FontSource { return t.source }

// ID implements Typeface.
func (t *SourceTypeface) ID() uint64 { return t.id }

// FamilyName implements Typeface.
func (t *SourceTypeface) FamilyName() string { return t.source.Name() }

// Style implements Typeface.
func (t *SourceTypeface) Style() FontStyle { return t.source.Style() }

// FontInfo implements Typeface. Results are cached per size.
func (t *SourceTypeface) FontInfo(size float64) FontInfo {
	return t.metrics.GetOrCreate(size, func() FontInfo {
		p := t.source.Parsed()
		if p == nil {
			return FontInfo{Size: size}
		}
		m := p.Metrics(size)
		b := p.Bounds(size)
		info := FontInfo{
			Top:     b.MinY,
			Ascent:  -m.Ascent,
			Descent: m.Descent,
			Bottom:  b.MaxY,
			Leading: m.LineGap,
			Size:    size,
		}
		info.Top = min(info.Top, info.Ascent)
		info.Bottom = max(info.Bottom, info.Descent)
		return info
	})
}

// GlyphIndex implements Typeface.
func (t *SourceTypeface) GlyphIndex(r rune) GlyphID {
	p := t.source.Parsed()
	if p == nil {
		return 0
	}
	return GlyphID(p.GlyphIndex(r))
}

// HasGlyph reports whether the font maps r to a glyph. Answers are
// remembered per rune, since font fallback asks for every character.
func (t *SourceTypeface) HasGlyph(r rune) bool {
	return t.coverage.lookup(r, func(r rune) bool { return t.GlyphIndex(r) != 0 })
}

// ClearCoverage forgets the remembered glyph coverage.
func (t *SourceTypeface) ClearCoverage() { t.coverage.clear() }

// GlyphAdvance implements Typeface.
func (t *SourceTypeface) GlyphAdvance(g GlyphID, size float64) float64 {
	p := t.source.Parsed()
	if p == nil {
		return 0
	}
	return p.GlyphAdvance(uint16(g), size)
}

// GlyphBounds implements Typeface.
func (t *SourceTypeface) GlyphBounds(g GlyphID, size float64) Rect {
	p := t.source.Parsed()
	if p == nil {
		return Rect{}
	}
	return p.GlyphBounds(uint16(g), size)
}
