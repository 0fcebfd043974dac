// Package text turns styled text into glyphs for layout.
//
// The pipeline separates fonts from shaping:
//
//   - FontSource: Heavyweight, shared font resource (parses TTF/OTF files)
//   - Typeface: One face of a source, with metrics cached per size
//   - FontCollection: Resolves a FontDescriptor through ordered providers
//   - Backend: Shapes a ShapeKey into a ShapeResult (GoTextBackend, FixedBackend)
//   - Shaper: Memoizes a Backend so equal keys share one *ShapeResult
//   - BoundaryAnalyst: Grapheme, word and line break classification
//
// # Example usage
//
//	src, err := text.NewFontSource(goregular.TTF)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	coll := text.NewFontCollection(
//	    text.WithDefaultProvider(text.NewSourceProvider(text.NewTypeface(src))),
//	)
//	shaper := text.NewShaper(text.NewGoTextBackend(coll))
//	r := shaper.ShapeText([]rune("Hello"), text.ShapeStyle{
//	    Font: text.NewFontDescriptor("Go"),
//	    Size: 16,
//	}, false)
//	width := r.MeasureWidth(0, r.CharCount(), 0)
//
// # Pluggable Parser Backend
//
// Font metrics come from the FontParser interface. By default,
// golang.org/x/image/font/opentype is used. Custom parsers can be
// registered:
//
//	text.RegisterParser("myparser", myCustomParser)
//	source, err := text.NewFontSource(data, text.WithParser("myparser"))
//
// Shaping itself always uses go-text/typesetting over the same font data.
package text
