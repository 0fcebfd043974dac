// Package layout breaks styled paragraphs into lines.
//
// A Paragraph collects text, inline objects and ghost text together with
// their styles. An Engine formats the paragraph (bidi levels, boundaries,
// runs and shaping) and places it line by line into a Region:
//
//	p := layout.NewParagraph(style.DefaultParagraphStyle())
//	if err := p.AddTextRun(style.NewStyle(), "Hello, world"); err != nil {
//		return err
//	}
//	e := layout.NewEngine(text.NewShaper(backend))
//	r := layout.NewRegion(200, 100, layout.SizeDefinite, layout.SizeAtMost)
//	ctx := layout.NewContext()
//	for e.Layout(p, r, ctx) == layout.BreakPage {
//		// r is full; continue on a new region.
//		r = layout.NewRegion(200, 100, layout.SizeDefinite, layout.SizeAtMost)
//	}
//
// Each committed TextLine holds its pieces in visual order with their x
// offsets and baselines, ready for drawing.
//
// Layout is synchronous. Paragraphs, regions and contexts are owned by the
// caller and must not be shared between goroutines while in use; only the
// text.Shaper passed to NewEngine may be shared.
package layout
