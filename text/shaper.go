package text

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/textlayout/internal/cache"
	"github.com/gogpu/textlayout/internal/logx"
)

// ResultCache stores shape results by key. Implementations must be safe
// for concurrent use. text/cache.ShapeCache is the usual choice for a
// cache shared between shapers.
type ResultCache interface {
	Get(key ShapeKey) (*ShapeResult, bool)
	Set(key ShapeKey, r *ShapeResult)
}

// Backend turns text into glyphs. Backends are called only on cache
// misses.
type Backend interface {
	// OnShapeText shapes key.Text. The result must cover exactly the
	// characters of key.Text.
	OnShapeText(key ShapeKey) (*ShapeResult, error)

	// Metrics returns the vertical metrics of the primary typeface of
	// style.
	Metrics(style ShapeStyle) FontInfo
}

// Shaper memoizes a Backend. Every call with an equal text, style and
// direction returns the same *ShapeResult.
//
// Shaper is safe for concurrent use when its cache is; two goroutines
// missing on the same key may both call the backend.
type Shaper struct {
	backend Backend
	cache   ResultCache
}

// NewShaper creates a Shaper over backend.
func NewShaper(backend Backend, opts ...ShaperOption) *Shaper {
	if backend == nil {
		panic("text: NewShaper with nil backend")
	}
	var cfg shaperConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.cache == nil {
		cfg.cache = cache.New[ShapeKey, *ShapeResult](cfg.capacity)
	}
	return &Shaper{backend: backend, cache: cfg.cache}
}

// Backend returns the shaping backend.
func (s *Shaper) Backend() Backend { return s.backend }

// Metrics returns the backend metrics for style.
func (s *Shaper) Metrics(style ShapeStyle) FontInfo {
	return s.backend.Metrics(style)
}

// ShapeText returns the shaped form of text.
//
// Backend failures are not returned: they are logged at debug level and
// the text gets a result of missing glyphs with zero advance. Control
// characters below U+0020 always have zero advance.
func (s *Shaper) ShapeText(text []rune, style ShapeStyle, rtl bool) *ShapeResult {
	key := NewShapeKey(text, style, rtl)
	if r, ok := s.cache.Get(key); ok {
		return r
	}

	r := s.shape(key, len(text))
	for k, c := range text {
		if c < 0x20 {
			r.zeroAdvance(r.CharToGlyph(k))
		}
	}
	s.cache.Set(key, r)
	return r
}

func (s *Shaper) shape(key ShapeKey, charCount int) *ShapeResult {
	if charCount == 0 {
		r, _ := NewShapeResult(nil, 0, key.RTL)
		return r
	}
	r, err := s.backend.OnShapeText(key)
	switch {
	case err != nil:
	case r == nil:
		err = errors.New("backend returned no result")
	case r.CharCount() != charCount:
		err = fmt.Errorf("%w: %d characters shaped, want %d", ErrGlyphMapping, r.CharCount(), charCount)
	default:
		return r
	}
	logx.Logger().Debug("text: shaping failed, using empty glyphs",
		slog.Any("error", &ShapeError{Key: key, Err: err}))
	return emptyShapeResult(charCount, key.RTL)
}
