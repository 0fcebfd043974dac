package text

import (
	"strconv"
	"strings"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// GlyphID is a glyph index within a typeface. Zero is the missing glyph.
type GlyphID uint16

// Direction specifies text direction.
type Direction int

const (
	// DirectionLTR is left-to-right text (English, French, etc.)
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text (Arabic, Hebrew)
	DirectionRTL
	// DirectionTTB is top-to-bottom text (traditional Chinese, Japanese)
	DirectionTTB
	// DirectionBTT is bottom-to-top text (rare)
	DirectionBTT
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LTR"
	case DirectionRTL:
		return "RTL"
	case DirectionTTB:
		return "TTB"
	case DirectionBTT:
		return "BTT"
	default:
		return unknownStr
	}
}

// IsHorizontal returns true if the direction is horizontal (LTR or RTL).
func (d Direction) IsHorizontal() bool {
	return d == DirectionLTR || d == DirectionRTL
}

// IsVertical returns true if the direction is vertical (TTB or BTT).
func (d Direction) IsVertical() bool {
	return d == DirectionTTB || d == DirectionBTT
}

// FontWeight is the CSS-style weight of a font, 100 to 1000.
type FontWeight uint16

const (
	WeightInvisible  FontWeight = 0
	WeightThin       FontWeight = 100
	WeightExtraLight FontWeight = 200
	WeightLight      FontWeight = 300
	WeightNormal     FontWeight = 400
	WeightMedium     FontWeight = 500
	WeightSemiBold   FontWeight = 600
	WeightBold       FontWeight = 700
	WeightExtraBold  FontWeight = 800
	WeightBlack      FontWeight = 900
	WeightExtraBlack FontWeight = 1000
)

// FontWidth is the stretch of a font, 1 (ultra condensed) to 9 (ultra
// expanded).
type FontWidth uint8

const (
	WidthUltraCondensed FontWidth = iota + 1
	WidthExtraCondensed
	WidthCondensed
	WidthSemiCondensed
	WidthNormal
	WidthSemiExpanded
	WidthExpanded
	WidthExtraExpanded
	WidthUltraExpanded
)

// FontSlant is the posture of a font.
type FontSlant uint8

const (
	SlantUpright FontSlant = iota
	SlantItalic
	SlantOblique
)

// String returns the string representation of the slant.
func (s FontSlant) String() string {
	switch s {
	case SlantUpright:
		return "Upright"
	case SlantItalic:
		return "Italic"
	case SlantOblique:
		return "Oblique"
	default:
		return unknownStr
	}
}

// FontStyle combines weight, width and slant. The zero value is not a
// valid style; use StyleNormal.
type FontStyle struct {
	Weight FontWeight
	Width  FontWidth
	Slant  FontSlant
}

// Predefined font styles.
var (
	StyleNormal     = FontStyle{Weight: WeightNormal, Width: WidthNormal, Slant: SlantUpright}
	StyleBold       = FontStyle{Weight: WeightBold, Width: WidthNormal, Slant: SlantUpright}
	StyleItalic     = FontStyle{Weight: WeightNormal, Width: WidthNormal, Slant: SlantItalic}
	StyleBoldItalic = FontStyle{Weight: WeightBold, Width: WidthNormal, Slant: SlantItalic}
)

// String returns a short description such as "400/5/Upright".
func (s FontStyle) String() string {
	return strconv.Itoa(int(s.Weight)) + "/" + strconv.Itoa(int(s.Width)) + "/" + s.Slant.String()
}

// DefaultFontFamily is tried when none of a descriptor's families resolve.
const DefaultFontFamily = "sans-serif"

// familySep separates family names inside a FontDescriptor.
const familySep = ","

// FontDescriptor selects fonts: an ordered family list and a style.
// It is comparable and usable as a map key.
type FontDescriptor struct {
	// Family is the family list joined by commas, most preferred first.
	Family string
	// Style is the requested weight, width and slant.
	Style FontStyle
	// PlatformFont is an opaque handle to a platform font, 0 for none.
	PlatformFont uint64
}

// NewFontDescriptor builds a descriptor with the normal style.
func NewFontDescriptor(families ...string) FontDescriptor {
	trimmed := make([]string, 0, len(families))
	for _, f := range families {
		if f = strings.TrimSpace(f); f != "" {
			trimmed = append(trimmed, f)
		}
	}
	return FontDescriptor{Family: strings.Join(trimmed, familySep), Style: StyleNormal}
}

// Families returns the family list in preference order.
func (d FontDescriptor) Families() []string {
	if d.Family == "" {
		return nil
	}
	parts := strings.Split(d.Family, familySep)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WithStyle returns a copy of d with the given style.
func (d FontDescriptor) WithStyle(s FontStyle) FontDescriptor {
	d.Style = s
	return d
}

// Rect represents a rectangle for glyph bounds.
type Rect struct {
	// Min is the top-left corner
	MinX, MinY float64
	// Max is the bottom-right corner
	MaxX, MaxY float64
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Empty reports whether the rectangle is empty.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Union returns the smallest rectangle containing r and o. An empty
// rectangle is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}
