package layout

import "errors"

// Errors returned when content is rejected. The content is also logged.
var (
	// ErrEmptyText is returned when a run has no characters.
	ErrEmptyText = errors.New("layout: empty text")

	// ErrInvalidUTF8 is returned when a run is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("layout: invalid UTF-8")
)
