package style

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/gogpu/textlayout/text"
)

func TestStyle_SetDefinesAttribute(t *testing.T) {
	def := DefaultStyle()
	for a := AttrID(0); a < attrCount; a++ {
		t.Run(a.String(), func(t *testing.T) {
			s := NewStyle()
			if s.Has(a) {
				t.Fatal("new style defines the attribute")
			}
			attrTable[a].copy(&s, &def)
			if !s.Has(a) {
				t.Fatal("attribute not defined after set")
			}
			if s.Defined() != a.Mask() {
				t.Errorf("Defined() = %v, want %v", s.Defined(), a.Mask())
			}
			if got, want := attrTable[a].value(&s), attrTable[a].value(&def); got != want {
				t.Errorf("value = %v, want %v", got, want)
			}
		})
	}
}

func TestStyle_TableIndexedByID(t *testing.T) {
	for a := AttrID(0); a < attrCount; a++ {
		if attrTable[a].id != a {
			t.Errorf("attrTable[%d].id = %d", a, attrTable[a].id)
		}
		if attrTable[a].name == "" {
			t.Errorf("attrTable[%d] has no name", a)
		}
	}
	if attrTable[AttrDecorationType].merge {
		t.Error("DecorationType must not merge")
	}
}

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.Defined() != FullMask {
		t.Errorf("Defined() = %v, want FullMask", s.Defined())
	}
	if s.TextSize() != DefaultTextSize || s.TextScale() != 1 {
		t.Errorf("size = %v scale = %v", s.TextSize(), s.TextScale())
	}
	if s.ForegroundColor() != Black {
		t.Errorf("ForegroundColor = %v, want black", s.ForegroundColor())
	}
	if s.FontDescriptor().Family != text.DefaultFontFamily {
		t.Errorf("font family = %q", s.FontDescriptor().Family)
	}
}

func TestStyle_ShapeStyleUpdatedBySetters(t *testing.T) {
	tests := []struct {
		name   string
		change func(*Style)
	}{
		{"font", func(s *Style) { s.SetFontDescriptor(text.NewFontDescriptor("test").WithStyle(text.StyleBold)) }},
		{"size", func(s *Style) { s.SetTextSize(1) }},
		{"scale", func(s *Style) { s.SetTextScale(2) }},
		{"bold", func(s *Style) { s.SetBold(!s.Bold()) }},
		{"italic", func(s *Style) { s.SetItalic(!s.Italic()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			old := s.ShapeStyle()
			tt.change(&s)
			if s.ShapeStyle() == old {
				t.Error("ShapeStyle unchanged")
			}
		})
	}

	s := DefaultStyle()
	old := s.ShapeStyle()
	s.SetForegroundColor(Red)
	if s.ShapeStyle() != old {
		t.Error("color change altered ShapeStyle")
	}
}

func TestStyle_ScaledSize(t *testing.T) {
	s := NewStyle()
	s.SetTextSize(12)
	if got := s.ShapeStyle().Size; got != 12 {
		t.Errorf("Size without scale = %v, want 12", got)
	}
	s.SetTextScale(1.5)
	if got := s.ShapeStyle().Size; got != 18 {
		t.Errorf("Size = %v, want 18", got)
	}
	if s.ScaledTextSize() != 18 {
		t.Errorf("ScaledTextSize = %v, want 18", s.ScaledTextSize())
	}
}

func TestStyle_ResetClearMerge(t *testing.T) {
	s := NewStyle()
	s.SetBackgroundColor(Blue)
	s.SetTextSize(20)
	s.Clear(AttrBackgroundColor.Mask())
	if s.Has(AttrBackgroundColor) || s.BackgroundColor() != (Color{}) {
		t.Error("Clear left the background color")
	}
	if !s.Has(AttrTextSize) {
		t.Error("Clear removed an unrelated attribute")
	}

	other := NewStyle()
	other.SetItalic(true)
	other.SetLocale(language.Japanese)
	s.Merge(other)
	if !s.Italic() || s.Locale() != language.Japanese || s.TextSize() != 20 {
		t.Errorf("Merge result = %v", s)
	}
	if !s.ShapeStyle().FakeItalic {
		t.Error("Merge did not refresh ShapeStyle")
	}

	s.Reset()
	if s.Defined() != 0 {
		t.Errorf("Reset left %v", s.Defined())
	}
}

func TestStyle_String(t *testing.T) {
	s := NewStyle()
	s.SetTextSize(12.5)
	s.SetDecorationType(DecorationUnderline | DecorationLineThrough)
	got := s.String()
	for _, want := range []string{"TextSize=12.5", "DecorationType=Underline|LineThrough"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
	if NewStyle().String() != "{}" {
		t.Errorf("empty String() = %q", NewStyle().String())
	}
}

func TestAttrMask(t *testing.T) {
	if !LayoutMask.Has(AttrFontDescriptor) || LayoutMask.Has(AttrForegroundColor) {
		t.Error("LayoutMask membership")
	}
	if got := (AttrBold.Mask() | AttrItalic.Mask()).String(); got != "Bold|Italic" {
		t.Errorf("String() = %q", got)
	}
	if AttrExtraBaselineOffset.Mask() != 0 {
		t.Error("extra attributes have no mask bit")
	}
	if AttrExtraBaselineOffset.String() != "ExtraBaselineOffset" {
		t.Errorf("String() = %q", AttrExtraBaselineOffset.String())
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		hex  string
		want Color
	}{
		{"#ff0000", Red},
		{"00f", Blue},
		{"#00ff0080", RGBA(0, 1, 0, 128.0/255)},
		{"zz", Black},
		{"#gg0000", Black},
	}
	for _, tt := range tests {
		if got := Hex(tt.hex); got != tt.want {
			t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}
	if got := ARGB(0xff0000ff); got != Blue {
		t.Errorf("ARGB = %v, want blue", got)
	}
	if got := FromColor(Red.NRGBA()); got != Red {
		t.Errorf("FromColor round trip = %v", got)
	}
	if got := Red.String(); got != "#ff0000ff" {
		t.Errorf("String() = %q", got)
	}
	if !Transparent.IsTransparent() || Black.IsTransparent() {
		t.Error("IsTransparent")
	}
}
