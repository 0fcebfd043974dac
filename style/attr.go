package style

import "strings"

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// AttrID identifies one character style attribute.
type AttrID uint8

// Layout attributes change glyph measurement; the rest only affect drawing.
const (
	AttrFontDescriptor AttrID = iota
	AttrTextSize
	AttrTextScale
	AttrVerticalAlignment
	AttrWordSpacing
	AttrLetterSpacing
	AttrLocale
	AttrForegroundColor
	AttrBackgroundColor
	AttrDecorationColor
	AttrDecorationType
	AttrDecorationStyle
	AttrDecorationThicknessMultiplier
	AttrBold
	AttrItalic
	AttrWordBreak
	AttrBaselineOffset

	attrCount
)

// Extra attributes live outside Style and hold a single float per range.
const (
	AttrExtraBaselineOffset AttrID = 128 + iota
)

// String returns the attribute name.
func (a AttrID) String() string {
	if a < attrCount {
		return attrTable[a].name
	}
	if a == AttrExtraBaselineOffset {
		return "ExtraBaselineOffset"
	}
	return unknownStr
}

// Mask returns the single-bit mask of a.
func (a AttrID) Mask() AttrMask {
	if a >= attrCount {
		return 0
	}
	return 1 << a
}

// AttrMask is a set of attributes.
type AttrMask uint32

// Attribute groups.
const (
	SubSupMask     = AttrMask(1<<AttrTextSize | 1<<AttrTextScale | 1<<AttrVerticalAlignment)
	MeasureMask    = AttrMask(1<<AttrFontDescriptor|1<<AttrLetterSpacing|1<<AttrLocale) | SubSupMask
	LayoutMask     = MeasureMask | AttrMask(1<<AttrBold|1<<AttrItalic|1<<AttrWordSpacing|1<<AttrBaselineOffset)
	DecorationMask = AttrMask(1<<AttrDecorationColor | 1<<AttrDecorationStyle | 1<<AttrDecorationType | 1<<AttrDecorationThicknessMultiplier)
	FullMask       = AttrMask(1<<attrCount - 1)
)

// Has reports whether a is in the mask.
func (m AttrMask) Has(a AttrID) bool { return a < attrCount && m&(1<<a) != 0 }

// String lists the attribute names joined by '|'.
func (m AttrMask) String() string {
	if m == 0 {
		return "0"
	}
	var names []string
	for a := AttrID(0); a < attrCount; a++ {
		if m.Has(a) {
			names = append(names, a.String())
		}
	}
	return strings.Join(names, "|")
}

// DecorationType is a set of text decoration lines.
type DecorationType uint8

const (
	DecorationNone        DecorationType = 0
	DecorationUnderline   DecorationType = 1 << 0
	DecorationOverline    DecorationType = 1 << 1
	DecorationLineThrough DecorationType = 1 << 2
)

// String returns the decoration names joined by '|'.
func (d DecorationType) String() string {
	if d == DecorationNone {
		return "None"
	}
	var names []string
	if d&DecorationUnderline != 0 {
		names = append(names, "Underline")
	}
	if d&DecorationOverline != 0 {
		names = append(names, "Overline")
	}
	if d&DecorationLineThrough != 0 {
		names = append(names, "LineThrough")
	}
	if d&^(DecorationUnderline|DecorationOverline|DecorationLineThrough) != 0 {
		names = append(names, unknownStr)
	}
	return strings.Join(names, "|")
}

// LineType is the stroke style of a decoration line.
type LineType uint8

const (
	LineNone LineType = iota
	LineHidden
	LineSolid
	LineDouble
	LineDotted
	LineDashed
	LineWavy
)

var lineTypeNames = [...]string{"None", "Hidden", "Solid", "Double", "Dotted", "Dashed", "Wavy"}

func (l LineType) String() string {
	if int(l) < len(lineTypeNames) {
		return lineTypeNames[l]
	}
	return unknownStr
}

// WordBreak controls line breaking inside words.
type WordBreak uint8

const (
	// WordBreakNormal breaks at the usual line break opportunities.
	WordBreakNormal WordBreak = iota
	// WordBreakBreakAll allows a break between any two characters.
	WordBreakBreakAll
	// WordBreakKeepAll suppresses breaks between letters of CJK text.
	WordBreakKeepAll
)

func (w WordBreak) String() string {
	switch w {
	case WordBreakNormal:
		return "Normal"
	case WordBreakBreakAll:
		return "BreakAll"
	case WordBreakKeepAll:
		return "KeepAll"
	default:
		return unknownStr
	}
}

// VerticalAlignment positions a character run inside its line.
type VerticalAlignment uint8

const (
	AlignBaseline VerticalAlignment = iota
	AlignTop
	AlignMiddle
	AlignBottom
	AlignSuperScript
	AlignSubScript
)

var verticalAlignmentNames = [...]string{"Baseline", "Top", "Middle", "Bottom", "SuperScript", "SubScript"}

func (v VerticalAlignment) String() string {
	if int(v) < len(verticalAlignmentNames) {
		return verticalAlignmentNames[v]
	}
	return unknownStr
}

// IsScript reports whether v is SuperScript or SubScript.
func (v VerticalAlignment) IsScript() bool {
	return v == AlignSuperScript || v == AlignSubScript
}
