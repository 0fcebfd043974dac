package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidFont is returned when font data cannot be parsed.
	ErrInvalidFont = errors.New("text: invalid font")

	// ErrNoTypeface is returned when no typeface can serve a descriptor.
	ErrNoTypeface = errors.New("text: no typeface")

	// ErrGlyphMapping is returned when a backend result does not cover
	// the shaped text.
	ErrGlyphMapping = errors.New("text: glyph mapping does not cover text")
)

// ShapeError reports a backend failure for one shape key.
// The shaper absorbs it and logs it; backends and tests see it.
type ShapeError struct {
	Key ShapeKey
	Err error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("text: shaping %q at %gpx: %v", e.Key.Text, e.Key.Style.Size, e.Err)
}

// Unwrap returns the underlying error.
func (e *ShapeError) Unwrap() error {
	return e.Err
}
