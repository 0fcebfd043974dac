package text

import (
	"github.com/go-text/typesetting/language"
	xlanguage "golang.org/x/text/language"
)

// SourceOption configures FontSource creation.
type SourceOption func(*sourceConfig)

// sourceConfig holds configuration for FontSource.
type sourceConfig struct {
	parserName   string
	metricsLimit int
}

// defaultSourceConfig returns the default source configuration.
func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		parserName:   defaultParserName,
		metricsLimit: 64,
	}
}

// WithParser specifies the font parser backend.
// The default is "ximage" which uses golang.org/x/image/font/opentype.
//
// Custom parsers can be registered with RegisterParser.
func WithParser(name string) SourceOption {
	return func(c *sourceConfig) {
		c.parserName = name
	}
}

// WithMetricsCacheLimit bounds the number of font sizes whose FontInfo a
// typeface keeps. Zero means unbounded.
func WithMetricsCacheLimit(n int) SourceOption {
	return func(c *sourceConfig) {
		c.metricsLimit = n
	}
}

// ShaperOption configures a Shaper.
type ShaperOption func(*shaperConfig)

type shaperConfig struct {
	cache    ResultCache
	capacity int
}

// WithCache makes the shaper use c for shape results. The cache is shared
// with whoever else holds it.
func WithCache(c ResultCache) ShaperOption {
	return func(cfg *shaperConfig) {
		cfg.cache = c
	}
}

// WithCacheCapacity bounds the default result cache. Zero, the default,
// keeps every result. It has no effect together with WithCache.
func WithCacheCapacity(n int) ShaperOption {
	return func(cfg *shaperConfig) {
		cfg.capacity = n
	}
}

// BackendOption configures a GoTextBackend.
type BackendOption func(*backendConfig)

type backendConfig struct {
	language language.Language
	locale   xlanguage.Tag
}

func defaultBackendConfig() backendConfig {
	return backendConfig{
		language: language.NewLanguage("en"),
		locale:   xlanguage.English,
	}
}

// WithLanguage sets the language tag used for shaping and fallback
// (e.g., "en", "ja", "ar").
func WithLanguage(lang string) BackendOption {
	return func(c *backendConfig) {
		c.language = language.NewLanguage(lang)
		c.locale = xlanguage.Make(lang)
	}
}

// CollectionOption configures a FontCollection.
type CollectionOption func(*FontCollection)

// WithDynamicProvider sets the provider consulted first, typically fonts
// registered at runtime.
func WithDynamicProvider(p TypefaceProvider) CollectionOption {
	return func(c *FontCollection) { c.dynamic = p }
}

// WithAssetProvider sets the provider for fonts bundled with the
// application.
func WithAssetProvider(p TypefaceProvider) CollectionOption {
	return func(c *FontCollection) { c.asset = p }
}

// WithTestProvider sets the provider used by tests.
func WithTestProvider(p TypefaceProvider) CollectionOption {
	return func(c *FontCollection) { c.test = p }
}

// WithDefaultProvider sets the system provider. It is consulted last and
// only while fallback is enabled.
func WithDefaultProvider(p TypefaceProvider) CollectionOption {
	return func(c *FontCollection) { c.defaultProvider = p }
}

// WithFallback sets whether the default provider takes part in matching.
// Fallback is enabled by default.
func WithFallback(enabled bool) CollectionOption {
	return func(c *FontCollection) { c.fallback = enabled }
}
