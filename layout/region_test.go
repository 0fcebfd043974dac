package layout

import (
	"slices"
	"testing"

	"github.com/gogpu/textlayout/style"
)

func TestNewRegion_Sizes(t *testing.T) {
	tests := []struct {
		name         string
		w, h         float64
		wm, hm       SizeMode
		wantW, wantH float64
	}{
		{"definite", 30, 20, SizeDefinite, SizeDefinite, 30, 20},
		{"indefinite height", 30, 20, SizeDefinite, SizeIndefinite, 30, MaxUnits},
		{"indefinite width", 30, 20, SizeIndefinite, SizeAtMost, MaxUnits, 20},
		{"clamped", 2 * MaxUnits, -2 * MaxUnits, SizeAtMost, SizeDefinite, MaxUnits, -MaxUnits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegion(tt.w, tt.h, tt.wm, tt.hm)
			if r.Width() != tt.wantW || r.Height() != tt.wantH {
				t.Errorf("size = %vx%v, want %vx%v", r.Width(), r.Height(), tt.wantW, tt.wantH)
			}
			if r.WidthMode() != tt.wm || r.HeightMode() != tt.hm {
				t.Errorf("modes = %v,%v", r.WidthMode(), r.HeightMode())
			}
			if !r.IsEmpty() || r.IsFull() {
				t.Errorf("new region empty=%v full=%v", r.IsEmpty(), r.IsFull())
			}
		})
	}
}

func TestRegion_StacksParagraphs(t *testing.T) {
	e := newTestEngine()
	r := NewRegion(10, 0, SizeDefinite, SizeIndefinite)
	first := newTestParagraph(t, paragraphStyle(1), "ab")
	second := newTestParagraph(t, paragraphStyle(2), "cd")
	for _, p := range []*Paragraph{first, second} {
		if res := e.Layout(p, r, NewContext()); res != Normal {
			t.Fatalf("Layout = %v, want Normal", res)
		}
	}
	if len(r.Paragraphs()) != 2 || r.LineCount() != 2 {
		t.Fatalf("paragraphs = %d, lines = %d", len(r.Paragraphs()), r.LineCount())
	}
	if got := r.Line(1).Top(); !near(got, 1) {
		t.Errorf("second line top = %v, want 1", got)
	}
	if got := r.LayoutedHeight(); !near(got, 3) {
		t.Errorf("LayoutedHeight = %v, want 3", got)
	}
	if got := r.LayoutedWidth(); !near(got, 4) {
		t.Errorf("LayoutedWidth = %v, want 4", got)
	}

	r.Reset()
	if !r.IsEmpty() || r.LayoutedHeight() != 0 || len(r.Paragraphs()) != 0 {
		t.Errorf("Reset left lines=%d height=%v", r.LineCount(), r.LayoutedHeight())
	}
}

func TestPosition_Compare(t *testing.T) {
	tests := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 3}, Position{1, 0}, -1},
		{Position{1, 0}, Position{0, 9}, 1},
		{Position{2, 1}, Position{2, 4}, -1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := tt.a.Less(tt.b); got != (tt.want < 0) {
			t.Errorf("%v.Less(%v) = %v", tt.a, tt.b, got)
		}
	}
	if got := (Position{Run: 2, Char: 5}).NextRun(); got != (Position{Run: 3}) {
		t.Errorf("NextRun = %v", got)
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Normal.String(), "Normal"},
		{BreakPage.String(), "BreakPage"},
		{Result(99).String(), unknownStr},
		{SizeAtMost.String(), "AtMost"},
		{SizeMode(9).String(), unknownStr},
		{(Position{Run: 1, Char: 2}).String(), "1:2"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestRegion_RangeProviderRelayout(t *testing.T) {
	var heights []float64
	narrowTall := RangeProviderFunc(func(_ *Region, top, h, start, end float64) ([][2]float64, float64) {
		heights = append(heights, h)
		if h > 1.5 {
			return [][2]float64{{start, 6 - end}}, top + 1
		}
		return [][2]float64{{start, 10 - end}}, top + 1
	})
	p := NewParagraph(paragraphStyle(1))
	big := style.NewStyle()
	big.SetTextSize(2)
	if err := p.AddTextRun(style.NewStyle(), "aaa "); err != nil {
		t.Fatal(err)
	}
	if err := p.AddTextRun(big, "bbb"); err != nil {
		t.Fatal(err)
	}
	r := NewRegion(10, 0, SizeDefinite, SizeIndefinite, WithRangeProvider(narrowTall))
	if res := newTestEngine().Layout(p, r, NewContext()); res != Normal {
		t.Fatalf("Layout = %v, want Normal", res)
	}
	if r.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", r.LineCount())
	}
	if got := r.Line(0).Text(); got != "aaa " {
		t.Errorf("first line = %q, want %q", got, "aaa ")
	}
	if got := r.Line(0).Ranges()[0].Right(); !near(got, 6) {
		t.Errorf("first line range right = %v, want 6", got)
	}
	if got := r.Line(1).Text(); got != "bbb" {
		t.Errorf("second line = %q, want %q", got, "bbb")
	}
	if !slices.Contains(heights, 2) {
		t.Errorf("ranges never fetched for the taller run: %v", heights)
	}
}

func TestRegion_RangeProviderSplitsLine(t *testing.T) {
	obstacle := RangeProviderFunc(func(_ *Region, top, _, _, _ float64) ([][2]float64, float64) {
		return [][2]float64{{0, 4}, {6, 12}}, top + 1
	})
	p := newTestParagraph(t, paragraphStyle(1), "aaa bbb ccc")
	r := NewRegion(12, 0, SizeDefinite, SizeIndefinite, WithRangeProvider(obstacle))
	newTestEngine().Layout(p, r, NewContext())
	if r.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", r.LineCount())
	}
	l := r.Line(0)
	if len(l.Ranges()) != 2 || len(l.Pieces()) != 2 {
		t.Fatalf("ranges = %d, pieces = %d, want 2 and 2", len(l.Ranges()), len(l.Pieces()))
	}
	if got := l.Text(); got != "aaa bbb " {
		t.Errorf("first line = %q, want %q", got, "aaa bbb ")
	}
	if got := l.Pieces()[1].X(); !near(got, 6) {
		t.Errorf("second piece x = %v, want 6", got)
	}
	if got := r.Line(1).Text(); got != "ccc" {
		t.Errorf("second line = %q, want %q", got, "ccc")
	}
}

func TestRegion_RangeProviderMovesLineDown(t *testing.T) {
	// Above y=5 only two units are free.
	float := RangeProviderFunc(func(_ *Region, top, _, _, _ float64) ([][2]float64, float64) {
		if top < 5 {
			return [][2]float64{{0, 2}}, 5
		}
		return [][2]float64{{0, 10}}, top + 1
	})
	tests := []struct {
		name    string
		height  float64
		want    Result
		lines   int
		lineTop float64
	}{
		{"fits below", 20, Normal, 1, 5},
		{"no room below", 4, BreakPage, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParagraph(t, paragraphStyle(1), "abcdef")
			r := NewRegion(10, tt.height, SizeDefinite, SizeDefinite, WithRangeProvider(float))
			ctx := NewContext()
			if res := newTestEngine().Layout(p, r, ctx); res != tt.want {
				t.Fatalf("Layout = %v, want %v", res, tt.want)
			}
			if r.LineCount() != tt.lines {
				t.Fatalf("LineCount = %d, want %d", r.LineCount(), tt.lines)
			}
			if tt.lines > 0 && !near(r.Line(0).Top(), tt.lineTop) {
				t.Errorf("line top = %v, want %v", r.Line(0).Top(), tt.lineTop)
			}
			if tt.want == BreakPage && (!r.IsFull() || ctx.Position != (Position{})) {
				t.Errorf("full = %v, position = %v", r.IsFull(), ctx.Position)
			}
		})
	}
}

func TestRegion_EmptyRangesMoveDown(t *testing.T) {
	none := RangeProviderFunc(func(_ *Region, top, _, _, _ float64) ([][2]float64, float64) {
		return nil, top
	})
	p := newTestParagraph(t, paragraphStyle(1), "ab")
	r := NewRegion(10, 3, SizeDefinite, SizeDefinite, WithRangeProvider(none))
	if res := newTestEngine().Layout(p, r, NewContext()); res != BreakPage {
		t.Errorf("Layout = %v, want BreakPage", res)
	}
	if r.LineCount() != 0 {
		t.Errorf("LineCount = %d, want 0", r.LineCount())
	}
}
