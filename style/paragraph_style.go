package style

import "math"

// HorizontalAlign positions lines inside the paragraph width.
type HorizontalAlign uint8

const (
	AlignLeft HorizontalAlign = iota
	AlignCenter
	AlignRight
	// AlignJustify stretches word spacing on every line that does not end
	// the paragraph or a hard break.
	AlignJustify
)

var horizontalAlignNames = [...]string{"Left", "Center", "Right", "Justify"}

func (h HorizontalAlign) String() string {
	if int(h) < len(horizontalAlignNames) {
		return horizontalAlignNames[h]
	}
	return unknownStr
}

// LineVerticalAlign places line content inside the extra height a line
// rule adds.
type LineVerticalAlign uint8

const (
	LineAlignTop LineVerticalAlign = iota
	LineAlignCenter
	LineAlignBottom
)

var lineVerticalAlignNames = [...]string{"Top", "Center", "Bottom"}

func (v LineVerticalAlign) String() string {
	if int(v) < len(lineVerticalAlignNames) {
		return lineVerticalAlignNames[v]
	}
	return unknownStr
}

// WriteDirection is the base direction of a paragraph.
type WriteDirection uint8

const (
	// DirectionAuto takes the direction of the first strong character.
	DirectionAuto WriteDirection = iota
	DirectionLTR
	DirectionRTL
	DirectionTTB
	DirectionBTT
)

var writeDirectionNames = [...]string{"Auto", "LTR", "RTL", "TTB", "BTT"}

func (d WriteDirection) String() string {
	if int(d) < len(writeDirectionNames) {
		return writeDirectionNames[d]
	}
	return unknownStr
}

// OverflowWrap decides what happens to a word wider than the line.
type OverflowWrap uint8

const (
	// OverflowWrapNormal never splits a word; it overflows the line.
	OverflowWrapNormal OverflowWrap = iota
	// OverflowWrapAnywhere splits a word at any character.
	OverflowWrapAnywhere
	// OverflowWrapBreakWord behaves like OverflowWrapAnywhere.
	OverflowWrapBreakWord
)

var overflowWrapNames = [...]string{"Normal", "Anywhere", "BreakWord"}

func (o OverflowWrap) String() string {
	if int(o) < len(overflowWrapNames) {
		return overflowWrapNames[o]
	}
	return unknownStr
}

// LineRule interprets Spacing.LinePx and Spacing.LinePercent.
type LineRule uint8

const (
	// LineRuleAtLeast uses LinePx as a minimum line height.
	LineRuleAtLeast LineRule = iota
	// LineRuleAuto multiplies the natural line height by LinePercent.
	LineRuleAuto
	// LineRuleExact forces every line to LinePx.
	LineRuleExact
)

var lineRuleNames = [...]string{"AtLeast", "Auto", "Exact"}

func (r LineRule) String() string {
	if int(r) < len(lineRuleNames) {
		return lineRuleNames[r]
	}
	return unknownStr
}

// RunDelegate supplies the metrics of an inline object. Ascent is negative
// (above the baseline) and Descent positive, following FontInfo. A
// delegate that also has a SetOffset(x, y float64) method is told its left
// edge and baseline in region coordinates once its line is placed.
type RunDelegate interface {
	Advance() float64
	Ascent() float64
	Descent() float64
}

// Indent holds paragraph indents. Each indent is given either in pixels or
// in characters of the default text size; setting one form resets the
// other.
type Indent struct {
	Start, End, FirstLine, Hanging                     float64
	StartChars, EndChars, FirstLineChars, HangingChars int
}

func (in *Indent) SetStart(px float64)        { in.Start, in.StartChars = px, 0 }
func (in *Indent) SetStartChars(n int)        { in.StartChars, in.Start = n, 0 }
func (in *Indent) SetEnd(px float64)          { in.End, in.EndChars = px, 0 }
func (in *Indent) SetEndChars(n int)          { in.EndChars, in.End = n, 0 }
func (in *Indent) SetFirstLine(px float64)    { in.FirstLine, in.FirstLineChars = px, 0 }
func (in *Indent) SetFirstLineChars(n int)    { in.FirstLineChars, in.FirstLine = n, 0 }
func (in *Indent) SetHanging(px float64)      { in.Hanging, in.HangingChars = px, 0 }
func (in *Indent) SetHangingChars(n int)      { in.HangingChars, in.Hanging = n, 0 }

// Resolve converts character counts to pixels using charSize and returns
// an indent holding pixels only.
func (in Indent) Resolve(charSize float64) Indent {
	return Indent{
		Start:     in.Start + float64(in.StartChars)*charSize,
		End:       in.End + float64(in.EndChars)*charSize,
		FirstLine: in.FirstLine + float64(in.FirstLineChars)*charSize,
		Hanging:   in.Hanging + float64(in.HangingChars)*charSize,
	}
}

// Spacing holds line and paragraph spacing.
type Spacing struct {
	// BeforePx and AfterPx separate the paragraph from its neighbours.
	BeforePx, AfterPx float64
	// LinePx is used by the AtLeast and Exact rules.
	LinePx float64
	// LinePercent scales the natural height under the Auto rule; 1 keeps it.
	LinePercent float64
	LineRule    LineRule
	// LineSpaceBeforePx and LineSpaceAfterPx are added around every line.
	LineSpaceBeforePx, LineSpaceAfterPx float64
}

// DefaultSpacing returns spacing with the natural line height.
func DefaultSpacing() Spacing {
	return Spacing{LinePercent: 1, LineRule: LineRuleAuto}
}

// SetLineHeight sets LinePx and the rule that interprets it.
func (s *Spacing) SetLineHeight(px float64, rule LineRule) {
	s.LinePx, s.LineRule = px, rule
}

// LineHeight returns the height of a line whose natural height is natural.
func (s Spacing) LineHeight(natural float64) float64 {
	switch s.LineRule {
	case LineRuleExact:
		return s.LinePx
	case LineRuleAtLeast:
		return max(natural, s.LinePx)
	default:
		return natural * s.LinePercent
	}
}

// ParagraphStyle holds paragraph level layout settings. Start from
// DefaultParagraphStyle and change fields as needed.
type ParagraphStyle struct {
	HorizontalAlign HorizontalAlign
	VerticalAlign   LineVerticalAlign
	// DefaultStyle applies to characters with no explicit attribute.
	DefaultStyle   Style
	Indent         Indent
	Spacing        Spacing
	WriteDirection WriteDirection
	// Ellipsis replaces truncated text. EllipsisDelegate, when set, is used
	// instead of the text.
	Ellipsis         string
	EllipsisDelegate RunDelegate
	// MaxLines limits the line count; 0 means unlimited.
	MaxLines int
	// LineHeightOverride replaces the font line height with the text size.
	// With HalfLeading the difference goes evenly above and below;
	// otherwise ascent and descent are scaled.
	LineHeightOverride bool
	HalfLeading        bool
	OverflowWrap       OverflowWrap
}

// DefaultParagraphStyle returns left aligned, unlimited, auto direction
// settings with DefaultStyle characters.
func DefaultParagraphStyle() ParagraphStyle {
	return ParagraphStyle{
		HorizontalAlign: AlignLeft,
		VerticalAlign:   LineAlignCenter,
		DefaultStyle:    DefaultStyle(),
		Spacing:         DefaultSpacing(),
		WriteDirection:  DirectionAuto,
		OverflowWrap:    OverflowWrapAnywhere,
	}
}

// LineLimit returns MaxLines, or math.MaxInt when unlimited.
func (p ParagraphStyle) LineLimit() int {
	if p.MaxLines <= 0 {
		return math.MaxInt
	}
	return p.MaxLines
}

// HasEllipsis reports whether truncation shows an ellipsis.
func (p ParagraphStyle) HasEllipsis() bool {
	return p.Ellipsis != "" || p.EllipsisDelegate != nil
}
