package text

import (
	"fmt"
	"unicode"
)

// isCJKRune reports whether r is a CJK ideograph, kana, Hangul syllable or
// fullwidth form. These break between any two characters under the default
// line breaking rules.
func isCJKRune(r rune) bool {
	switch {
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0x3400 && r <= 0x4DBF: // Extension A
		return true
	case r >= 0x20000 && r <= 0x2A6DF: // Extension B
		return true
	case r >= 0x3040 && r <= 0x309F: // Hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // Katakana
		return true
	case r >= 0xAC00 && r <= 0xD7AF: // Hangul Syllables
		return true
	case r >= 0xFF00 && r <= 0xFFEF: // Halfwidth and Fullwidth Forms
		return true
	}
	return false
}

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// KeepAll removes the line break opportunities that the default rules put
// between two CJK letters in text[start:end], so CJK words wrap only where
// other scripts would. Boundaries stay at least Word.
//
// text must be the text a was built from.
func (a *BoundaryAnalyst) KeepAll(text []rune, start, end int) {
	if len(text) != len(a.boundary) || start < 0 || end > len(a.boundary) || start > end {
		panic(fmt.Sprintf("text: keep-all range [%d, %d) out of range [0, %d)", start, end, len(a.boundary)))
	}
	for k := start; k+1 < end; k++ {
		if a.boundary[k] != BoundaryLineBreakable {
			continue
		}
		l, r := text[k], text[k+1]
		if !isLetterOrDigit(l) || !isLetterOrDigit(r) {
			continue
		}
		if isCJKRune(l) || isCJKRune(r) {
			a.boundary[k] = BoundaryWord
		}
	}
}
