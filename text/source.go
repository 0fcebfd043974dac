package text

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
)

// FontSource represents a loaded font file.
// FontSource is heavyweight and should be shared across the application.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection (Ebitengine pattern).
	// It must point to the FontSource itself.
	addr *FontSource

	data   []byte
	parsed ParsedFont

	name  string
	style FontStyle

	// mu guards data and parsed against Close.
	mu sync.RWMutex

	// shapingFont is the go-text view of data, parsed on first use.
	shapingOnce sync.Once
	shapingFont *font.Font
	shapingErr  error

	config sourceConfig
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte, opts ...SourceOption) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultSourceConfig()
	for _, opt := range opts {
		opt(&config)
	}

	parsed, err := getParser(config.parserName).Parse(data)
	if err != nil {
		return nil, err
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	s := &FontSource{
		data:   dataCopy,
		parsed: parsed,
		config: config,
	}
	s.addr = s
	s.name = extractFontName(parsed)
	s.style = styleFromSubfamily(parsed.SubfamilyName())
	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string, opts ...SourceOption) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewFontSource(data, opts...)
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// Style returns the style declared by the font's subfamily name.
func (s *FontSource) Style() FontStyle {
	s.copyCheck()
	return s.style
}

// Parsed returns the parsed font for advanced operations.
func (s *FontSource) Parsed() ParsedFont {
	s.copyCheck()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parsed
}

// shapingFace returns a fresh go-text face for shaping. font.Face is not
// safe for concurrent use, so every shaping call gets its own; the
// underlying *font.Font is parsed once and shared.
func (s *FontSource) shapingFace() (*font.Face, error) {
	s.copyCheck()
	s.shapingOnce.Do(func() {
		s.mu.RLock()
		data := s.data
		s.mu.RUnlock()
		if data == nil {
			s.shapingErr = ErrEmptyFontData
			return
		}
		face, err := font.ParseTTF(bytes.NewReader(data))
		if err != nil {
			s.shapingErr = fmt.Errorf("%w: %w", ErrInvalidFont, err)
			return
		}
		s.shapingFont = face.Font
	})
	if s.shapingErr != nil {
		return nil, s.shapingErr
	}
	return font.NewFace(s.shapingFont), nil
}

// Close releases the font data. Typefaces created from the source must
// not be used afterwards.
func (s *FontSource) Close() error {
	s.copyCheck()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = nil
	s.parsed = nil
	return nil
}

// copyCheck panics if FontSource was copied by value.
// This is the Ebitengine pattern for preventing accidental copies.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

// extractFontName extracts the font family name from the parsed font.
func extractFontName(parsed ParsedFont) string {
	if name := parsed.Name(); name != "" {
		return name
	}
	if fullName := parsed.FullName(); fullName != "" {
		return fullName
	}
	return "Unknown Font"
}

// styleFromSubfamily derives a FontStyle from names like "Bold Italic".
func styleFromSubfamily(sub string) FontStyle {
	style := StyleNormal
	sub = strings.ToLower(sub)
	switch {
	case strings.Contains(sub, "black"), strings.Contains(sub, "heavy"):
		style.Weight = WeightBlack
	case strings.Contains(sub, "extrabold"), strings.Contains(sub, "ultrabold"):
		style.Weight = WeightExtraBold
	case strings.Contains(sub, "semibold"), strings.Contains(sub, "demibold"):
		style.Weight = WeightSemiBold
	case strings.Contains(sub, "bold"):
		style.Weight = WeightBold
	case strings.Contains(sub, "medium"):
		style.Weight = WeightMedium
	case strings.Contains(sub, "extralight"), strings.Contains(sub, "ultralight"):
		style.Weight = WeightExtraLight
	case strings.Contains(sub, "light"):
		style.Weight = WeightLight
	case strings.Contains(sub, "thin"):
		style.Weight = WeightThin
	}
	switch {
	case strings.Contains(sub, "italic"):
		style.Slant = SlantItalic
	case strings.Contains(sub, "oblique"):
		style.Slant = SlantOblique
	}
	return style
}
