// Package textlayout is a cross-platform paragraph layout engine.
//
// # Overview
//
// textlayout turns styled paragraphs of Unicode text into lines of
// positioned glyph runs inside a bounded region. It resolves bidirectional
// text, shapes runs through a pluggable backend, breaks lines on Unicode
// boundaries and truncates with an ellipsis when the region is exhausted.
// Drawing is left to the caller.
//
// # Quick Start
//
//	src, _ := text.NewFontSource(goregular.TTF)
//	coll := text.NewFontCollection(text.WithDefaultProvider(text.NewSourceProvider(text.NewTypeface(src))))
//	engine := layout.NewEngine(text.NewShaper(text.NewGoTextBackend(coll)))
//
//	p := layout.NewParagraph(style.DefaultParagraphStyle())
//	_ = p.AddTextRun(style.NewStyle(), "Hello, world")
//
//	region := layout.NewRegion(200, 100, layout.SizeDefinite, layout.SizeAtMost)
//	res := engine.Layout(p, region, layout.NewContext())
//
// # Architecture
//
// The library is organized into:
//   - bidi: embedding levels, runs and visual maps (UAX #9)
//   - text: shaping, shape cache, font resolution, boundary analysis
//   - style: sparse per-attribute style ranges
//   - layout: paragraphs, line breaking, regions and lines
//
// # Coordinate System
//
//   - Origin (0,0) at the top-left of a region
//   - X increases right
//   - Y increases down; ascents are negative
package textlayout

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
