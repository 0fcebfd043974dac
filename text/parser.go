package text

import "sync"

// FontParser is an interface for font parsing backends.
// This abstraction allows swapping the font parsing library
// (e.g., golang.org/x/image/font/opentype vs a pure Go implementation).
//
// The default implementation uses golang.org/x/image/font/opentype.
type FontParser interface {
	// Parse parses font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
// Sizes are in pixels per em.
type ParsedFont interface {
	// Name returns the font family name, or "" if not available.
	Name() string

	// FullName returns the full font name, or "" if not available.
	FullName() string

	// SubfamilyName returns the style name such as "Bold Italic",
	// or "" if not available.
	SubfamilyName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// GlyphIndex returns the glyph index for a rune, 0 if not found.
	GlyphIndex(r rune) uint16

	// GlyphAdvance returns the advance width of a glyph.
	GlyphAdvance(glyphIndex uint16, ppem float64) float64

	// GlyphBounds returns the bounding box of a glyph, y down.
	GlyphBounds(glyphIndex uint16, ppem float64) Rect

	// Bounds returns the union of all glyph bounds, y down.
	Bounds(ppem float64) Rect

	// Metrics returns the font metrics.
	Metrics(ppem float64) FontMetrics
}

// FontMetrics holds font-level metrics at a specific size.
// All values are distances and non-negative.
type FontMetrics struct {
	// Ascent is the distance from the baseline to the top of the font.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font.
	Descent float64

	// LineGap is the recommended line gap between lines.
	LineGap float64

	// XHeight is the height of lowercase letters (like 'x').
	XHeight float64

	// CapHeight is the height of uppercase letters.
	CapHeight float64
}

// Height returns the total line height (ascent + descent + line gap).
func (m FontMetrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

var (
	parserMu sync.RWMutex

	// parserRegistry holds registered font parsers.
	parserRegistry = map[string]FontParser{
		"ximage": &ximageParser{},
	}
)

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser.
func RegisterParser(name string, parser FontParser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// getParser returns the parser by name, or the default if not found.
func getParser(name string) FontParser {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p
	}
	return parserRegistry[defaultParserName]
}
