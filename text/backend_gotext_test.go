package text

import (
	"errors"
	"sync"
	"testing"
)

// goTextBackend builds a backend whose asset provider serves Go Regular
// and whose default provider serves a fixed typeface covering every rune.
func goTextBackend(t *testing.T) (*GoTextBackend, *SourceTypeface, *FixedTypeface) {
	t.Helper()
	goFace := NewTypeface(testSource(t))
	fallback := NewFixedTypeface("Fallback")
	coll := NewFontCollection(
		WithAssetProvider(NewSourceProvider(goFace)),
		WithDefaultProvider(NewSourceProvider(fallback)),
	)
	return NewGoTextBackend(coll, WithLanguage("en")), goFace, fallback
}

func goStyle(size float64) ShapeStyle {
	return ShapeStyle{Font: NewFontDescriptor("Go"), Size: size}
}

func TestGoTextBackend_BasicLatin(t *testing.T) {
	b, goFace, _ := goTextBackend(t)

	r, err := b.OnShapeText(NewShapeKey([]rune("Hello"), goStyle(16), false))
	if err != nil {
		t.Fatalf("OnShapeText: %v", err)
	}
	if r.GlyphCount() != 5 || r.CharCount() != 5 {
		t.Fatalf("counts = %d / %d, want 5 / 5", r.GlyphCount(), r.CharCount())
	}
	for i := 0; i < r.GlyphCount(); i++ {
		if r.Advance(i)[0] <= 0 {
			t.Errorf("glyph %d: advance %v, want > 0", i, r.Advance(i)[0])
		}
		if r.Font(i) != goFace {
			t.Errorf("glyph %d: font %v, want Go", i, r.Font(i))
		}
		if r.GlyphToChar(i) != i {
			t.Errorf("GlyphToChar(%d) = %d", i, r.GlyphToChar(i))
		}
	}
}

func TestGoTextBackend_VariousText(t *testing.T) {
	b, _, _ := goTextBackend(t)

	tests := []struct {
		name string
		text string
	}{
		{"single char", "A"},
		{"with space", "Hello World"},
		{"numbers", "12345"},
		{"punctuation", "Hello, World!"},
		{"cyrillic", "Привет"},
		{"greek", "Αλφα"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runes := []rune(tt.text)
			r, err := b.OnShapeText(NewShapeKey(runes, goStyle(16), false))
			if err != nil {
				t.Fatalf("OnShapeText: %v", err)
			}
			if r.CharCount() != len(runes) {
				t.Errorf("CharCount = %d, want %d", r.CharCount(), len(runes))
			}
			if w := r.MeasureWidth(0, len(runes), 0); w <= 0 {
				t.Errorf("width = %v, want > 0", w)
			}
		})
	}
}

func TestGoTextBackend_WidthScalesWithSize(t *testing.T) {
	b, _, _ := goTextBackend(t)
	text := []rune("Hello World")

	small, err := b.OnShapeText(NewShapeKey(text, goStyle(12), false))
	if err != nil {
		t.Fatal(err)
	}
	large, err := b.OnShapeText(NewShapeKey(text, goStyle(24), false))
	if err != nil {
		t.Fatal(err)
	}

	ws := small.MeasureWidth(0, len(text), 0)
	wl := large.MeasureWidth(0, len(text), 0)
	if ratio := wl / ws; ratio < 1.9 || ratio > 2.1 {
		t.Errorf("width ratio 24/12 = %v, want about 2", ratio)
	}
}

func TestGoTextBackend_RTLIsLogicalOrder(t *testing.T) {
	b, _, _ := goTextBackend(t)
	text := []rune("abc")

	ltr, err := b.OnShapeText(NewShapeKey(text, goStyle(16), false))
	if err != nil {
		t.Fatal(err)
	}
	rtl, err := b.OnShapeText(NewShapeKey(text, goStyle(16), true))
	if err != nil {
		t.Fatal(err)
	}
	if !rtl.IsRTL() {
		t.Error("IsRTL() = false for an RTL key")
	}
	for c := range text {
		if ltr.Glyph(ltr.CharToGlyph(c)) != rtl.Glyph(rtl.CharToGlyph(c)) {
			t.Errorf("char %d: glyph differs between directions", c)
		}
		if rtl.GlyphToChar(c) != c {
			t.Errorf("RTL GlyphToChar(%d) = %d, want logical order", c, rtl.GlyphToChar(c))
		}
	}
}

func TestGoTextBackend_FallbackPerRune(t *testing.T) {
	b, goFace, fallback := goTextBackend(t)
	text := []rune("A一 B")

	r, err := b.OnShapeText(NewShapeKey(text, goStyle(10), false))
	if err != nil {
		t.Fatal(err)
	}
	wantFonts := []Typeface{goFace, fallback, fallback, goFace}
	for c, want := range wantFonts {
		if got := r.FontByChar(c); got != want {
			t.Errorf("char %d: font %v, want %v", c, got.FamilyName(), want.FamilyName())
		}
	}
	// the fixed typeface is measured, one em per glyph
	if got := r.MeasureWidth(1, 1, 0); got != 10 {
		t.Errorf("fallback advance = %v, want 10", got)
	}
}

func TestGoTextBackend_NoTypeface(t *testing.T) {
	b := NewGoTextBackend(NewFontCollection())
	_, err := b.OnShapeText(NewShapeKey([]rune("abc"), goStyle(10), false))
	if !errors.Is(err, ErrNoTypeface) {
		t.Errorf("error = %v, want ErrNoTypeface", err)
	}

	m := b.Metrics(goStyle(10))
	if m.Height() <= 0 || m.Size != 10 {
		t.Errorf("approximate metrics = %+v", m)
	}
}

func TestGoTextBackend_ThroughShaper(t *testing.T) {
	b, goFace, _ := goTextBackend(t)
	s := NewShaper(b)

	r := s.ShapeText([]rune("Hi"), goStyle(10), false)
	if r != s.ShapeText([]rune("Hi"), goStyle(10), false) {
		t.Error("shaper should cache GoTextBackend results")
	}
	if got, want := s.Metrics(goStyle(10)), goFace.FontInfo(10); got != want {
		t.Errorf("Metrics = %+v, want %+v", got, want)
	}
}

func TestGoTextBackend_Concurrent(t *testing.T) {
	b, _, _ := goTextBackend(t)
	texts := []string{"Hello", "World", "Привет", "Go text"}

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				txt := []rune(texts[i%len(texts)])
				r, err := b.OnShapeText(NewShapeKey(txt, goStyle(14), false))
				if err != nil {
					t.Errorf("OnShapeText: %v", err)
					return
				}
				if r.CharCount() != len(txt) {
					t.Errorf("CharCount = %d, want %d", r.CharCount(), len(txt))
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestMapDirection(t *testing.T) {
	for _, d := range []Direction{DirectionLTR, DirectionRTL, DirectionTTB, DirectionBTT} {
		if got := mapDirection(d); got.IsVertical() != d.IsVertical() {
			t.Errorf("mapDirection(%v).IsVertical() = %v", d, got.IsVertical())
		}
	}
}
