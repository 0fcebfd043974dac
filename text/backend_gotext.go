package text

import (
	"slices"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// GoTextBackend shapes with go-text/typesetting's HarfBuzz port, which
// applies ligatures, kerning, contextual alternates and complex script
// rules.
//
// Each character is assigned the first typeface of the style's font
// descriptor that has a glyph for it, then any typeface of the collection
// that has one. Whitespace and control characters stay with the typeface
// before them. Runs of characters sharing a typeface are shaped together.
// Typefaces without font data are measured glyph by glyph.
//
// GoTextBackend is safe for concurrent use. The HarfbuzzShaper instances
// are pooled via sync.Pool since they are not safe for concurrent use;
// each call gets its own font.Face over the shared parsed font.
type GoTextBackend struct {
	collection *FontCollection
	config     backendConfig
	shaperPool sync.Pool
}

// NewGoTextBackend creates a backend resolving fonts through collection.
func NewGoTextBackend(collection *FontCollection, opts ...BackendOption) *GoTextBackend {
	if collection == nil {
		panic("text: NewGoTextBackend with nil collection")
	}
	cfg := defaultBackendConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GoTextBackend{
		collection: collection,
		config:     cfg,
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// Collection returns the font collection.
func (b *GoTextBackend) Collection() *FontCollection { return b.collection }

// OnShapeText implements Backend.
func (b *GoTextBackend) OnShapeText(key ShapeKey) (*ShapeResult, error) {
	runes := []rune(key.Text)
	faces, err := b.assignTypefaces(runes, key.Style)
	if err != nil {
		return nil, err
	}

	glyphs := make([]Glyph, 0, len(runes))
	for start := 0; start < len(runes); {
		end := start + 1
		for end < len(runes) && faces[end] == faces[start] {
			end++
		}
		glyphs = b.shapeRun(glyphs, runes, start, end, faces[start], key)
		start = end
	}
	return NewShapeResult(glyphs, len(runes), key.RTL)
}

// Metrics implements Backend. Without any typeface it approximates the
// metrics from the size alone.
func (b *GoTextBackend) Metrics(style ShapeStyle) FontInfo {
	var tf Typeface
	if tfs := b.collection.FindTypefaces(style.Font); len(tfs) > 0 {
		tf = tfs[0]
	} else {
		tf = b.collection.DefaultTypeface()
	}
	if tf == nil {
		return FontInfo{
			Top:     -0.8 * style.Size,
			Ascent:  -0.8 * style.Size,
			Descent: 0.2 * style.Size,
			Bottom:  0.2 * style.Size,
			Size:    style.Size,
		}
	}
	return tf.FontInfo(style.Size)
}

// assignTypefaces picks the typeface of every character.
func (b *GoTextBackend) assignTypefaces(runes []rune, style ShapeStyle) ([]Typeface, error) {
	primary := b.collection.FindTypefaces(style.Font)
	faces := make([]Typeface, len(runes))
	for i, r := range runes {
		if i > 0 && (unicode.IsSpace(r) || unicode.IsControl(r)) {
			faces[i] = faces[i-1]
			continue
		}
		faces[i] = b.typefaceFor(r, primary, style.Font.Style)
		if faces[i] == nil && i > 0 {
			faces[i] = faces[i-1]
		}
	}
	if len(runes) > 0 && faces[0] == nil {
		first := slices.IndexFunc(faces, func(tf Typeface) bool { return tf != nil })
		if first < 0 {
			return nil, ErrNoTypeface
		}
		for i := 0; i < first; i++ {
			faces[i] = faces[first]
		}
	}
	return faces, nil
}

// typefaceFor returns the typeface for r: the first of primary with a
// glyph, else a collection fallback, else the first of primary.
func (b *GoTextBackend) typefaceFor(r rune, primary []Typeface, style FontStyle) Typeface {
	for _, tf := range primary {
		if HasGlyph(tf, r) {
			return tf
		}
	}
	if tf := b.collection.FallbackForRune(r, style, b.config.locale); tf != nil {
		return tf
	}
	if len(primary) > 0 {
		return primary[0]
	}
	return b.collection.DefaultTypeface()
}

// shapeRun appends the glyphs of runes[start:end] in logical order.
func (b *GoTextBackend) shapeRun(dst []Glyph, runes []rune, start, end int, tf Typeface, key ShapeKey) []Glyph {
	st, ok := tf.(*SourceTypeface)
	if !ok {
		return appendMetricGlyphs(dst, runes, start, end, tf, key.Style.Size)
	}
	face, err := st.Source().shapingFace()
	if err != nil {
		return appendMetricGlyphs(dst, runes, start, end, tf, key.Style.Size)
	}

	dir := DirectionLTR
	if key.RTL {
		dir = DirectionRTL
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  start,
		RunEnd:    end,
		Direction: mapDirection(dir),
		Face:      face,
		Size:      floatToFixed(key.Style.Size),
		Script:    detectScript(runes[start:end]),
		Language:  b.config.language,
	}

	// Get a HarfbuzzShaper from the pool (not concurrent-safe, so each
	// goroutine needs its own instance).
	hb := b.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	b.shaperPool.Put(hb)

	first := len(dst)
	for _, g := range output.Glyphs {
		dst = append(dst, Glyph{
			ID:       GlyphID(uint16(g.GlyphID)), //nolint:gosec // glyph ids of supported fonts fit in uint16
			Font:     tf,
			Cluster:  g.TextIndex(),
			XAdvance: fixedToFloat(g.Advance),
			XOffset:  fixedToFloat(g.XOffset),
			// go-text offsets are y up
			YOffset: -fixedToFloat(g.YOffset),
		})
	}
	if key.RTL {
		slices.Reverse(dst[first:])
	}
	return dst
}

// appendMetricGlyphs maps each rune to one glyph advanced by its font
// advance.
func appendMetricGlyphs(dst []Glyph, runes []rune, start, end int, tf Typeface, size float64) []Glyph {
	for i := start; i < end; i++ {
		gid := tf.GlyphIndex(runes[i])
		dst = append(dst, Glyph{
			ID:       gid,
			Font:     tf,
			Cluster:  i,
			XAdvance: tf.GlyphAdvance(gid, size),
		})
	}
	return dst
}

// mapDirection converts our text.Direction to go-text's di.Direction.
func mapDirection(d Direction) di.Direction {
	switch d {
	case DirectionRTL:
		return di.DirectionRTL
	case DirectionTTB:
		return di.DirectionTTB
	case DirectionBTT:
		return di.DirectionBTT
	default:
		return di.DirectionLTR
	}
}

// detectScript inspects the runes and returns the script of the first
// character with a real script. Runs are split by typeface, not script, so
// mixed-script runs take the first script.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		s := language.LookupScript(r)
		if s != language.Common && s != language.Inherited && s != language.Unknown {
			return s
		}
	}
	return language.Latin
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
