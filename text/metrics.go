package text

// FontInfo holds vertical font metrics at one size, relative to the
// baseline with y growing down: ascent and top are typically negative,
// descent and bottom positive.
type FontInfo struct {
	// Top is the greatest extent above the baseline of any glyph.
	Top float64

	// Ascent is the recommended distance above the baseline to reserve
	// for a line of text.
	Ascent float64

	// Descent is the recommended distance below the baseline.
	Descent float64

	// Bottom is the greatest extent below the baseline of any glyph.
	Bottom float64

	// Leading is the recommended gap between lines.
	Leading float64

	// Size is the font size these metrics were computed for.
	Size float64
}

// Height returns the distance from ascent to descent.
func (f FontInfo) Height() float64 {
	return f.Descent - f.Ascent
}

// LineHeight returns Height plus leading.
// This is the recommended vertical distance between baselines of consecutive lines.
func (f FontInfo) LineHeight() float64 {
	return f.Height() + f.Leading
}
