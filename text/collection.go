package text

import (
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/gogpu/textlayout/internal/cache"
	"github.com/gogpu/textlayout/internal/logx"
)

// TypefaceProvider resolves typefaces for a FontCollection. A nil
// Typeface means no match. Implementations must be safe for concurrent
// use.
type TypefaceProvider interface {
	// MatchFamilyStyle returns the typeface of family closest to style.
	MatchFamilyStyle(family string, style FontStyle) Typeface

	// MatchFamilyStyleCharacter returns a typeface that has a glyph for
	// r, preferring family and style. Family may be empty. Locales are
	// BCP 47 hints, most preferred first.
	MatchFamilyStyleCharacter(family string, style FontStyle, locales []language.Tag, r rune) Typeface

	// LegacyMakeTypeface returns a best-effort typeface for family,
	// which may be empty or a generic name such as "sans-serif".
	LegacyMakeTypeface(family string, style FontStyle) Typeface
}

// genericFamilies are the CSS generic names a SourceProvider maps to its
// closest typeface.
var genericFamilies = map[string]bool{
	"":           true,
	"sans-serif": true,
	"serif":      true,
	"monospace":  true,
	"system-ui":  true,
	"cursive":    true,
	"fantasy":    true,
}

// SourceProvider serves a fixed list of typefaces.
type SourceProvider struct {
	typefaces []Typeface
}

// NewSourceProvider returns a provider over typefaces. The first
// typeface is the default.
func NewSourceProvider(typefaces ...Typeface) *SourceProvider {
	return &SourceProvider{typefaces: typefaces}
}

// Typefaces returns the provider's typefaces.
func (p *SourceProvider) Typefaces() []Typeface { return p.typefaces }

// MatchFamilyStyle implements TypefaceProvider.
func (p *SourceProvider) MatchFamilyStyle(family string, style FontStyle) Typeface {
	return closestStyle(p.family(family), style)
}

// MatchFamilyStyleCharacter implements TypefaceProvider.
func (p *SourceProvider) MatchFamilyStyleCharacter(family string, style FontStyle, _ []language.Tag, r rune) Typeface {
	if family != "" {
		if tf := closestStyle(withGlyph(p.family(family), r), style); tf != nil {
			return tf
		}
	}
	return closestStyle(withGlyph(p.typefaces, r), style)
}

// LegacyMakeTypeface implements TypefaceProvider.
func (p *SourceProvider) LegacyMakeTypeface(family string, style FontStyle) Typeface {
	if tf := p.MatchFamilyStyle(family, style); tf != nil {
		return tf
	}
	if genericFamilies[strings.ToLower(family)] {
		return closestStyle(p.typefaces, style)
	}
	return nil
}

func (p *SourceProvider) family(name string) []Typeface {
	var out []Typeface
	for _, tf := range p.typefaces {
		if strings.EqualFold(tf.FamilyName(), name) {
			out = append(out, tf)
		}
	}
	return out
}

func withGlyph(tfs []Typeface, r rune) []Typeface {
	var out []Typeface
	for _, tf := range tfs {
		if HasGlyph(tf, r) {
			out = append(out, tf)
		}
	}
	return out
}

// closestStyle returns the first typeface with the smallest style
// distance, or nil.
func closestStyle(tfs []Typeface, want FontStyle) Typeface {
	var best Typeface
	bestDist := -1
	for _, tf := range tfs {
		if d := styleDistance(tf.Style(), want); bestDist < 0 || d < bestDist {
			best, bestDist = tf, d
		}
	}
	return best
}

// styleDistance weighs slant over width over weight.
func styleDistance(a, b FontStyle) int {
	d := abs(int(a.Weight) - int(b.Weight))
	d += 1000 * abs(int(a.Width)-int(b.Width))
	if a.Slant != b.Slant {
		d += 10000
	}
	return d
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// FontCollection resolves font descriptors to typefaces through an ordered
// set of providers: dynamic, asset, test, then default while fallback is
// enabled.
//
// FontCollection is safe for concurrent use.
type FontCollection struct {
	mu              sync.RWMutex
	dynamic         TypefaceProvider
	asset           TypefaceProvider
	test            TypefaceProvider
	defaultProvider TypefaceProvider
	fallback        bool
	defaultFamilies []string

	typefaces *cache.Cache[FontDescriptor, []Typeface]
}

// NewFontCollection creates a collection configured by opts.
func NewFontCollection(opts ...CollectionOption) *FontCollection {
	c := &FontCollection{
		fallback:        true,
		defaultFamilies: []string{DefaultFontFamily},
		typefaces:       cache.New[FontDescriptor, []Typeface](0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// providers returns the providers in query order.
func (c *FontCollection) providers() []TypefaceProvider {
	c.mu.RLock()
	defer c.mu.RUnlock()
	order := make([]TypefaceProvider, 0, 4)
	for _, p := range []TypefaceProvider{c.dynamic, c.asset, c.test} {
		if p != nil {
			order = append(order, p)
		}
	}
	if c.defaultProvider != nil && c.fallback {
		order = append(order, c.defaultProvider)
	}
	return order
}

// ProviderCount returns the number of providers currently queried.
func (c *FontCollection) ProviderCount() int {
	return len(c.providers())
}

// FindTypefaces returns one typeface per family of fd that some provider
// can serve, in family order. When no family resolves it falls back to
// DefaultFontFamily. Results are cached per descriptor until ClearCaches.
func (c *FontCollection) FindTypefaces(fd FontDescriptor) []Typeface {
	return c.typefaces.GetOrCreate(fd, func() []Typeface {
		var out []Typeface
		for _, family := range fd.Families() {
			if tf := c.matchTypeface(family, fd.Style); tf != nil {
				out = append(out, tf)
			}
		}
		if len(out) == 0 {
			if tf := c.matchTypeface(DefaultFontFamily, fd.Style); tf != nil {
				out = append(out, tf)
			}
		}
		if len(out) == 0 {
			logx.Logger().Debug("text: no typeface for descriptor",
				slog.String("family", fd.Family), slog.String("style", fd.Style.String()))
		}
		return out
	})
}

func (c *FontCollection) matchTypeface(family string, style FontStyle) Typeface {
	providers := c.providers()
	for _, p := range providers {
		if tf := p.MatchFamilyStyle(family, style); tf != nil {
			return tf
		}
	}
	for _, p := range providers {
		if tf := p.LegacyMakeTypeface(family, style); tf != nil {
			return tf
		}
	}
	return nil
}

// FallbackForRune returns a typeface from any provider that has a glyph
// for r, or nil. The zero locale means no preference.
func (c *FontCollection) FallbackForRune(r rune, style FontStyle, locale language.Tag) Typeface {
	var locales []language.Tag
	if locale != (language.Tag{}) {
		locales = []language.Tag{locale}
	}
	for _, p := range c.providers() {
		if tf := p.MatchFamilyStyleCharacter("", style, locales, r); tf != nil {
			return tf
		}
	}
	return nil
}

// DefaultTypeface returns the default provider's typeface for the first
// default family it knows, or nil.
func (c *FontCollection) DefaultTypeface() Typeface {
	c.mu.RLock()
	p, families := c.defaultProvider, c.defaultFamilies
	c.mu.RUnlock()
	if p == nil {
		return nil
	}
	for _, family := range families {
		if tf := p.MatchFamilyStyle(family, StyleNormal); tf != nil {
			return tf
		}
	}
	return nil
}

// SetDefaultFamilies replaces the family names DefaultTypeface tries.
func (c *FontCollection) SetDefaultFamilies(families ...string) {
	c.mu.Lock()
	c.defaultFamilies = append([]string(nil), families...)
	c.mu.Unlock()
}

// SetDynamicProvider replaces the dynamic provider and clears the cache.
func (c *FontCollection) SetDynamicProvider(p TypefaceProvider) {
	c.setProvider(&c.dynamic, p)
}

// SetAssetProvider replaces the asset provider and clears the cache.
func (c *FontCollection) SetAssetProvider(p TypefaceProvider) {
	c.setProvider(&c.asset, p)
}

// SetTestProvider replaces the test provider and clears the cache.
func (c *FontCollection) SetTestProvider(p TypefaceProvider) {
	c.setProvider(&c.test, p)
}

// SetDefaultProvider replaces the default provider and clears the cache.
func (c *FontCollection) SetDefaultProvider(p TypefaceProvider) {
	c.setProvider(&c.defaultProvider, p)
}

func (c *FontCollection) setProvider(slot *TypefaceProvider, p TypefaceProvider) {
	c.mu.Lock()
	*slot = p
	c.mu.Unlock()
	c.ClearCaches()
}

// EnableFontFallback lets the default provider take part in matching.
func (c *FontCollection) EnableFontFallback() { c.setFallback(true) }

// DisableFontFallback removes the default provider from matching.
func (c *FontCollection) DisableFontFallback() { c.setFallback(false) }

func (c *FontCollection) setFallback(enabled bool) {
	c.mu.Lock()
	changed := c.fallback != enabled
	c.fallback = enabled
	c.mu.Unlock()
	if changed {
		c.ClearCaches()
	}
}

// FallbackEnabled reports whether the default provider is queried.
func (c *FontCollection) FallbackEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fallback
}

// ClearCaches drops every cached descriptor resolution.
func (c *FontCollection) ClearCaches() {
	c.typefaces.Clear()
}
