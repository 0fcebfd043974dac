package style

import (
	"image/color"
	"strconv"
)

// Color is a non-premultiplied RGBA color with components in [0, 1].
// It is comparable, so equal colors merge inside a RangeList.
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ARGB creates a color from a packed 0xAARRGGBB value.
func ARGB(v uint32) Color {
	return Color{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: float64(v>>24) / 255,
	}
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(nc.R) / 255,
		G: float64(nc.G) / 255,
		B: float64(nc.B) / 255,
		A: float64(nc.A) / 255,
	}
}

// Hex creates a color from a hex string in one of the forms "RGB", "RGBA",
// "RRGGBB" or "RRGGBBAA", with an optional leading '#'. Malformed input
// yields opaque black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}
	var r, g, b uint64
	a := uint64(255)
	var err error
	switch len(hex) {
	case 3, 4:
		digits := make([]uint64, len(hex))
		for i := range hex {
			if digits[i], err = strconv.ParseUint(hex[i:i+1], 16, 8); err != nil {
				return Black
			}
			digits[i] *= 17
		}
		r, g, b = digits[0], digits[1], digits[2]
		if len(hex) == 4 {
			a = digits[3]
		}
	case 6, 8:
		v, perr := strconv.ParseUint(hex, 16, 32)
		if perr != nil {
			return Black
		}
		if len(hex) == 6 {
			v = v<<8 | 0xff
		}
		r, g, b, a = v>>24&0xff, v>>16&0xff, v>>8&0xff, v&0xff
	default:
		return Black
	}
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// NRGBA converts the color to the standard non-premultiplied form.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool { return c.A == 0 }

// String returns the color as "#rrggbbaa".
func (c Color) String() string {
	n := c.NRGBA()
	v := uint32(n.R)<<24 | uint32(n.G)<<16 | uint32(n.B)<<8 | uint32(n.A)
	s := strconv.FormatUint(uint64(v), 16)
	for len(s) < 8 {
		s = "0" + s
	}
	return "#" + s
}

func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x + 0.5
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA(0, 0, 0, 0)
)
