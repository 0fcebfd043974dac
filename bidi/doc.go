// Package bidi resolves embedding levels for bidirectional text.
//
// The resolver implements the Unicode Bidirectional Algorithm (UAX #9) as a
// table-driven state machine: explicit levels from embedding, override and
// isolate controls, paired bracket resolution, implicit levels, and the
// reset of trailing whitespace to the paragraph level. Character properties
// come from golang.org/x/text/unicode/bidi; bracket pairs come from a
// table of the BidiBrackets.txt opening entries.
//
// # Usage
//
//	p := bidi.NewParagraph()
//	p.SetPara([]rune("abc אבג"), bidi.DefaultLTR, nil)
//	for i := 0; i < p.CountRuns(); i++ {
//	    r := p.VisualRun(i)
//	    // draw text[r.LogicalStart : r.LogicalStart+r.Length] in r.Direction()
//	}
//
// A Paragraph holds per-call state and must not be shared between
// goroutines. Malformed input never fails: unknown code points are
// neutral and nesting beyond MaxExplicitLevel is counted, not followed.
package bidi
