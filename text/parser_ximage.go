package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements FontParser using golang.org/x/image/font/opentype.
type ximageParser struct{}

// Parse implements FontParser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	return &ximageParsedFont{font: f}, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
type ximageParsedFont struct {
	font *opentype.Font
}

// Name implements ParsedFont.Name.
func (f *ximageParsedFont) Name() string {
	if buf, err := f.font.Name(nil, sfnt.NameIDFamily); err == nil && buf != "" {
		return buf
	}
	return ""
}

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string {
	if buf, err := f.font.Name(nil, sfnt.NameIDFull); err == nil && buf != "" {
		return buf
	}
	return ""
}

// SubfamilyName implements ParsedFont.SubfamilyName.
func (f *ximageParsedFont) SubfamilyName() string {
	if buf, err := f.font.Name(nil, sfnt.NameIDSubfamily); err == nil {
		return buf
	}
	return ""
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// GlyphIndex implements ParsedFont.GlyphIndex.
func (f *ximageParsedFont) GlyphIndex(r rune) uint16 {
	idx, err := f.font.GlyphIndex(nil, r)
	if err != nil {
		return 0
	}
	return uint16(idx)
}

// GlyphAdvance implements ParsedFont.GlyphAdvance.
func (f *ximageParsedFont) GlyphAdvance(glyphIndex uint16, ppem float64) float64 {
	// Create buffer for operations
	var buf sfnt.Buffer

	// Get advance in font units
	advance, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(glyphIndex), fixed.Int26_6(ppem*64), font.HintingNone)
	if err != nil {
		return 0
	}

	return fixedToFloat(advance)
}

// GlyphBounds implements ParsedFont.GlyphBounds.
func (f *ximageParsedFont) GlyphBounds(glyphIndex uint16, ppem float64) Rect {
	var buf sfnt.Buffer

	bounds, _, err := f.font.GlyphBounds(&buf, sfnt.GlyphIndex(glyphIndex), fixed.Int26_6(ppem*64), font.HintingNone)
	if err != nil {
		return Rect{}
	}

	return rectFromFixed(bounds)
}

// Bounds implements ParsedFont.Bounds.
func (f *ximageParsedFont) Bounds(ppem float64) Rect {
	var buf sfnt.Buffer

	bounds, err := f.font.Bounds(&buf, fixed.Int26_6(ppem*64), font.HintingNone)
	if err != nil {
		return Rect{}
	}
	return rectFromFixed(bounds)
}

func rectFromFixed(r fixed.Rectangle26_6) Rect {
	return Rect{
		MinX: fixedToFloat(r.Min.X),
		MinY: fixedToFloat(r.Min.Y),
		MaxX: fixedToFloat(r.Max.X),
		MaxY: fixedToFloat(r.Max.Y),
	}
}

// Metrics implements ParsedFont.Metrics.
func (f *ximageParsedFont) Metrics(ppem float64) FontMetrics {
	var buf sfnt.Buffer

	metrics, err := f.font.Metrics(&buf, fixed.Int26_6(ppem*64), font.HintingNone)
	if err != nil {
		return FontMetrics{}
	}

	return FontMetrics{
		Ascent:    fixedToFloat(metrics.Ascent),
		Descent:   fixedToFloat(metrics.Descent),
		LineGap:   max(0, fixedToFloat(metrics.Height-metrics.Ascent-metrics.Descent)),
		XHeight:   fixedToFloat(metrics.XHeight),
		CapHeight: fixedToFloat(metrics.CapHeight),
	}
}

