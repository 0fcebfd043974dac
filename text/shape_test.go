package text

import (
	"errors"
	"testing"
)

// ligatureResult shapes "office" as o, ffi ligature, c, e: six characters,
// four glyphs, with the ligature covering characters 1 to 3.
func ligatureResult(t *testing.T) *ShapeResult {
	t.Helper()
	tf := NewFixedTypeface("test")
	glyphs := []Glyph{
		{ID: 10, Font: tf, Cluster: 0, XAdvance: 5},
		{ID: 11, Font: tf, Cluster: 1, XAdvance: 9},
		{ID: 12, Font: tf, Cluster: 4, XAdvance: 4},
		{ID: 13, Font: tf, Cluster: 5, XAdvance: 4, XOffset: 1, YOffset: -2},
	}
	r, err := NewShapeResult(glyphs, 6, false)
	if err != nil {
		t.Fatalf("NewShapeResult: %v", err)
	}
	return r
}

func TestShapeResult_Maps(t *testing.T) {
	r := ligatureResult(t)

	if r.GlyphCount() != 4 || r.CharCount() != 6 {
		t.Fatalf("counts = %d glyphs / %d chars, want 4 / 6", r.GlyphCount(), r.CharCount())
	}

	wantC2G := []int{0, 1, 1, 1, 2, 3}
	for c, want := range wantC2G {
		if got := r.CharToGlyph(c); got != want {
			t.Errorf("CharToGlyph(%d) = %d, want %d", c, got, want)
		}
	}
	wantG2C := []int{0, 1, 4, 5}
	for g, want := range wantG2C {
		if got := r.GlyphToChar(g); got != want {
			t.Errorf("GlyphToChar(%d) = %d, want %d", g, got, want)
		}
	}

	if got := r.CharToGlyph(6); got != r.GlyphCount() {
		t.Errorf("CharToGlyph(out of range) = %d, want %d", got, r.GlyphCount())
	}
	if got := r.GlyphToChar(-1); got != r.CharCount() {
		t.Errorf("GlyphToChar(out of range) = %d, want %d", got, r.CharCount())
	}
	if r.Position(3) != [2]float64{1, -2} {
		t.Errorf("Position(3) = %v, want [1 -2]", r.Position(3))
	}
	if r.FontByChar(2) != r.Font(1) {
		t.Error("FontByChar should return the font of the covering glyph")
	}
}

func TestShapeResult_MeasureWidth(t *testing.T) {
	r := ligatureResult(t)

	tests := []struct {
		name          string
		start, count  int
		letterSpacing float64
		want          float64
	}{
		{"all", 0, 6, 0, 22},
		{"ligature counted once", 1, 3, 0, 9},
		{"inside ligature", 2, 1, 0, 9},
		{"letter spacing per glyph", 0, 6, 1, 26},
		{"empty", 3, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.MeasureWidth(tt.start, tt.count, tt.letterSpacing); got != tt.want {
				t.Errorf("MeasureWidth(%d, %d, %v) = %v, want %v",
					tt.start, tt.count, tt.letterSpacing, got, tt.want)
			}
		})
	}
}

func TestShapeResult_ZeroAdvanceSkipsSpacing(t *testing.T) {
	r := ligatureResult(t)
	r.zeroAdvance(0)
	if got := r.MeasureWidth(0, 1, 3); got != 0 {
		t.Errorf("zero-advance glyph measured %v, want 0", got)
	}
}

func TestNewShapeResult_Errors(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []Glyph
		chars  int
	}{
		{"cluster out of range", []Glyph{{Cluster: 2}}, 2},
		{"negative cluster", []Glyph{{Cluster: -1}}, 1},
		{"first char without glyph", []Glyph{{Cluster: 1}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShapeResult(tt.glyphs, tt.chars, false)
			if !errors.Is(err, ErrGlyphMapping) {
				t.Errorf("error = %v, want ErrGlyphMapping", err)
			}
		})
	}
}

func TestShapePiece(t *testing.T) {
	r := ligatureResult(t)
	p := NewShapePiece(r, 4, 6)

	if !p.Valid() {
		t.Fatal("piece should be valid")
	}
	if p.CharCount() != 2 || p.GlyphCount() != 2 {
		t.Errorf("counts = %d chars / %d glyphs, want 2 / 2", p.CharCount(), p.GlyphCount())
	}
	if p.Glyph(0) != 12 || p.Glyph(1) != 13 {
		t.Errorf("glyphs = %d, %d, want 12, 13", p.Glyph(0), p.Glyph(1))
	}
	if p.CharToGlyph(1) != 1 || p.GlyphToChar(1) != 1 {
		t.Error("piece maps should be relative to the piece")
	}
	if got := p.MeasureWidth(0, 2, 0); got != 8 {
		t.Errorf("MeasureWidth = %v, want 8", got)
	}
	if p.Result() != r {
		t.Error("Result() should return the shared result")
	}

	if NewShapePiece(r, 2, 2).Valid() {
		t.Error("empty piece should not be valid")
	}
}

func TestShapePiece_OutOfRangePanics(t *testing.T) {
	r := ligatureResult(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range piece")
		}
	}()
	NewShapePiece(r, 3, 7)
}
