package style

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/gogpu/textlayout/text"
)

// DefaultTextSize is 10pt at 96 dpi.
const DefaultTextSize = 10.0 * 96 / 72

// Style is a set of optional character attributes. An attribute is defined
// once set; undefined attributes fall back to the paragraph default style
// when a Manager composes styles. The zero value defines nothing.
//
// Style values are comparable. The shaping style is recomputed by every
// setter that touches a layout attribute, so ShapeStyle never mutates.
type Style struct {
	defined AttrMask

	font           text.FontDescriptor
	textSize       float64
	textScale      float64
	valign         VerticalAlignment
	wordSpacing    float64
	letterSpacing  float64
	locale         language.Tag
	fg             Color
	bg             Color
	decoColor      Color
	decoType       DecorationType
	decoStyle      LineType
	decoThickness  float64
	bold           bool
	italic         bool
	wordBreak      WordBreak
	baselineOffset float64

	shape text.ShapeStyle
}

// NewStyle returns an empty style.
func NewStyle() Style {
	var s Style
	s.updateShapeStyle()
	return s
}

// DefaultStyle returns a style with every attribute defined.
func DefaultStyle() Style {
	s := NewStyle()
	s.SetFontDescriptor(text.NewFontDescriptor(text.DefaultFontFamily))
	s.SetTextSize(DefaultTextSize)
	s.SetTextScale(1)
	s.SetVerticalAlignment(AlignBaseline)
	s.SetWordSpacing(0)
	s.SetLetterSpacing(0)
	s.SetLocale(language.Und)
	s.SetForegroundColor(Black)
	s.SetBackgroundColor(Transparent)
	s.SetDecorationColor(Black)
	s.SetDecorationType(DecorationNone)
	s.SetDecorationStyle(LineSolid)
	s.SetDecorationThicknessMultiplier(1)
	s.SetBold(false)
	s.SetItalic(false)
	s.SetWordBreak(WordBreakNormal)
	s.SetBaselineOffset(0)
	return s
}

// Defined returns the mask of defined attributes.
func (s Style) Defined() AttrMask { return s.defined }

// Has reports whether attribute a is defined.
func (s Style) Has(a AttrID) bool { return s.defined.Has(a) }

// Reset undefines every attribute.
func (s *Style) Reset() {
	*s = NewStyle()
}

// Clear undefines the attributes in mask and restores their zero values.
func (s *Style) Clear(mask AttrMask) {
	empty := NewStyle()
	for a := AttrID(0); a < attrCount; a++ {
		if mask.Has(a) {
			attrTable[a].copy(s, &empty)
		}
	}
	s.defined &^= mask
	s.updateShapeStyle()
}

// Merge defines on s every attribute that other defines, taking other's
// value.
func (s *Style) Merge(other Style) {
	for a := AttrID(0); a < attrCount; a++ {
		if other.Has(a) {
			attrTable[a].copy(s, &other)
		}
	}
	s.defined |= other.defined
	s.updateShapeStyle()
}

// ShapeStyle returns the shaping parameters derived from the layout
// attributes.
func (s Style) ShapeStyle() text.ShapeStyle { return s.shape }

// ScaledTextSize returns TextSize multiplied by TextScale.
func (s Style) ScaledTextSize() float64 { return s.textSize * s.textScale }

func (s *Style) updateShapeStyle() {
	scale := s.textScale
	if !s.Has(AttrTextScale) {
		scale = 1
	}
	s.shape = text.ShapeStyle{
		Font:       s.font,
		Size:       s.textSize * scale,
		FakeBold:   s.bold,
		FakeItalic: s.italic,
	}
}

func (s *Style) define(a AttrID) {
	s.defined |= a.Mask()
	if LayoutMask.Has(a) {
		s.updateShapeStyle()
	}
}

func (s Style) FontDescriptor() text.FontDescriptor { return s.font }

func (s *Style) SetFontDescriptor(d text.FontDescriptor) {
	s.font = d
	s.define(AttrFontDescriptor)
}

func (s Style) TextSize() float64 { return s.textSize }

func (s *Style) SetTextSize(size float64) {
	s.textSize = size
	s.define(AttrTextSize)
}

func (s Style) TextScale() float64 { return s.textScale }

func (s *Style) SetTextScale(scale float64) {
	s.textScale = scale
	s.define(AttrTextScale)
}

func (s Style) VerticalAlignment() VerticalAlignment { return s.valign }

func (s *Style) SetVerticalAlignment(v VerticalAlignment) {
	s.valign = v
	s.define(AttrVerticalAlignment)
}

func (s Style) WordSpacing() float64 { return s.wordSpacing }

func (s *Style) SetWordSpacing(v float64) {
	s.wordSpacing = v
	s.define(AttrWordSpacing)
}

func (s Style) LetterSpacing() float64 { return s.letterSpacing }

func (s *Style) SetLetterSpacing(v float64) {
	s.letterSpacing = v
	s.define(AttrLetterSpacing)
}

// Locale is the language used for font fallback and line breaking.
func (s Style) Locale() language.Tag { return s.locale }

func (s *Style) SetLocale(tag language.Tag) {
	s.locale = tag
	s.define(AttrLocale)
}

func (s Style) ForegroundColor() Color { return s.fg }

func (s *Style) SetForegroundColor(c Color) {
	s.fg = c
	s.define(AttrForegroundColor)
}

func (s Style) BackgroundColor() Color { return s.bg }

func (s *Style) SetBackgroundColor(c Color) {
	s.bg = c
	s.define(AttrBackgroundColor)
}

func (s Style) DecorationColor() Color { return s.decoColor }

func (s *Style) SetDecorationColor(c Color) {
	s.decoColor = c
	s.define(AttrDecorationColor)
}

func (s Style) DecorationType() DecorationType { return s.decoType }

func (s *Style) SetDecorationType(d DecorationType) {
	s.decoType = d
	s.define(AttrDecorationType)
}

func (s Style) DecorationStyle() LineType { return s.decoStyle }

func (s *Style) SetDecorationStyle(l LineType) {
	s.decoStyle = l
	s.define(AttrDecorationStyle)
}

func (s Style) DecorationThicknessMultiplier() float64 { return s.decoThickness }

func (s *Style) SetDecorationThicknessMultiplier(v float64) {
	s.decoThickness = v
	s.define(AttrDecorationThicknessMultiplier)
}

func (s Style) Bold() bool { return s.bold }

func (s *Style) SetBold(b bool) {
	s.bold = b
	s.define(AttrBold)
}

func (s Style) Italic() bool { return s.italic }

func (s *Style) SetItalic(b bool) {
	s.italic = b
	s.define(AttrItalic)
}

func (s Style) WordBreak() WordBreak { return s.wordBreak }

func (s *Style) SetWordBreak(w WordBreak) {
	s.wordBreak = w
	s.define(AttrWordBreak)
}

// BaselineOffset shifts the run baseline; positive values move it up.
func (s Style) BaselineOffset() float64 { return s.baselineOffset }

func (s *Style) SetBaselineOffset(v float64) {
	s.baselineOffset = v
	s.define(AttrBaselineOffset)
}

// String lists the defined attributes, for logs and test failures.
func (s Style) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for a := AttrID(0); a < attrCount; a++ {
		if !s.Has(a) {
			continue
		}
		if !first {
			b.WriteByte(' ')
		}
		first = false
		e := &attrTable[a]
		fmt.Fprintf(&b, "%s=%s", e.name, e.kind.format(e.value(&s)))
	}
	b.WriteByte('}')
	return b.String()
}
