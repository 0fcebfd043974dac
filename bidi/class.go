package bidi

import xbidi "golang.org/x/text/unicode/bidi"

// Class is a bidirectional character class.
//
// The numeric order is significant: the resolver indexes its state tables
// and flag masks by class value.
type Class uint8

// Bidi classes in resolver order.
const (
	L   Class = iota // Left-to-right
	R                // Right-to-left
	EN               // European number
	ES               // European separator
	ET               // European terminator
	AN               // Arabic number
	CS               // Common separator
	B                // Paragraph separator
	S                // Segment separator
	WS               // Whitespace
	ON               // Other neutral
	LRE              // Left-to-right embedding
	LRO              // Left-to-right override
	AL               // Arabic letter
	RLE              // Right-to-left embedding
	RLO              // Right-to-left override
	PDF              // Pop directional format
	NSM              // Non-spacing mark
	BN               // Boundary neutral
	FSI              // First strong isolate
	LRI              // Left-to-right isolate
	RLI              // Right-to-left isolate
	PDI              // Pop directional isolate

	// enl and enr are EN after L and EN after R, assigned during bracket
	// resolution so the implicit tables can skip W7.
	enl
	enr
)

var classNames = [...]string{
	"L", "R", "EN", "ES", "ET", "AN", "CS", "B", "S", "WS", "ON",
	"LRE", "LRO", "AL", "RLE", "RLO", "PDF", "NSM", "BN",
	"FSI", "LRI", "RLI", "PDI", "ENL", "ENR",
}

// String returns the UAX#9 short name of the class.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return unknownStr
}

const unknownStr = "Unknown"

// fromXText maps golang.org/x/text classes onto resolver classes.
var fromXText = map[xbidi.Class]Class{
	xbidi.L:   L,
	xbidi.R:   R,
	xbidi.EN:  EN,
	xbidi.ES:  ES,
	xbidi.ET:  ET,
	xbidi.AN:  AN,
	xbidi.CS:  CS,
	xbidi.B:   B,
	xbidi.S:   S,
	xbidi.WS:  WS,
	xbidi.ON:  ON,
	xbidi.BN:  BN,
	xbidi.NSM: NSM,
	xbidi.AL:  AL,
	xbidi.LRO: LRO,
	xbidi.RLO: RLO,
	xbidi.LRE: LRE,
	xbidi.RLE: RLE,
	xbidi.PDF: PDF,
	xbidi.LRI: LRI,
	xbidi.RLI: RLI,
	xbidi.FSI: FSI,
	xbidi.PDI: PDI,
}

// ClassOf returns the bidi class of r. Anything the property tables
// cannot classify is treated as ON.
func ClassOf(r rune) Class {
	p, _ := xbidi.LookupRune(r)
	if c, ok := fromXText[p.Class()]; ok {
		return c
	}
	return ON
}

// openingBracketMatch returns the closing bracket paired with r when r is an
// opening paired bracket.
func openingBracketMatch(r rune) (rune, bool) {
	p, _ := xbidi.LookupRune(r)
	if !p.IsOpeningBracket() {
		return 0, false
	}
	m, ok := pairedBrackets[r]
	return m, ok
}

// IsControl reports whether r is one of the explicit bidi formatting
// characters or ZWJ/ZWNJ/LRM/RLM.
func IsControl(r rune) bool {
	return (r&^3) == 0x200c || (r >= 0x202a && r <= 0x202e) || (r >= 0x2066 && r <= 0x2069)
}

// flag returns the single-bit mask for class c.
func flag(c Class) uint32 { return 1 << c }

// flagMultiRuns marks text whose levels form more than one level run.
const flagMultiRuns = uint32(1) << 31

var (
	flagLR = [2]uint32{flag(L), flag(R)}
	flagE  = [2]uint32{flag(LRE), flag(RLE)}
	flagO  = [2]uint32{flag(LRO), flag(RLO)}
)

const (
	maskLTR = 1<<L | 1<<EN | 1<<enl | 1<<enr | 1<<AN | 1<<LRE | 1<<LRO | 1<<LRI
	maskRTL = 1<<R | 1<<AL | 1<<RLE | 1<<RLO | 1<<RLI
	maskRAL = 1<<R | 1<<AL

	maskExplicit   = 1<<LRE | 1<<LRO | 1<<RLE | 1<<RLO | 1<<PDF
	maskBNExplicit = 1<<BN | maskExplicit
	maskISO        = 1<<LRI | 1<<RLI | 1<<FSI | 1<<PDI
	maskBS         = 1<<B | 1<<S
	maskWS         = maskBS | 1<<WS | maskBNExplicit | maskISO
	maskPossibleN  = 1<<ON | 1<<CS | 1<<ES | 1<<ET | maskWS
	maskEmbedding  = 1<<NSM | maskPossibleN
)

func flagLRFor(level Level) uint32 { return flagLR[level&1] }
func flagEFor(level Level) uint32  { return flagE[level&1] }
func flagOFor(level Level) uint32  { return flagO[level&1] }

// dirFromStrong maps L to L and both R and AL to R.
func dirFromStrong(c Class) Class {
	if c == L {
		return L
	}
	return R
}
