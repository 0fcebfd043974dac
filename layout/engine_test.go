package layout

import (
	"strings"
	"testing"

	"github.com/gogpu/textlayout/style"
)

func TestLayout_AtMostRegion(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		lines      int
		wantWidth  float64
		wantHeight float64
	}{
		{"one line", "01", 1, 2, 1},
		{"wrapped", "01234", 2, 3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParagraph(t, paragraphStyle(1), tt.content)
			r, res := layoutOnce(t, p, 3, 2, SizeAtMost, SizeAtMost)
			if res != Normal {
				t.Errorf("Layout = %v, want Normal", res)
			}
			if r.LineCount() != tt.lines {
				t.Fatalf("LineCount = %d, want %d", r.LineCount(), tt.lines)
			}
			if !near(r.LayoutedWidth(), tt.wantWidth) || !near(r.LayoutedHeight(), tt.wantHeight) {
				t.Errorf("layouted size = %v x %v, want %v x %v",
					r.LayoutedWidth(), r.LayoutedHeight(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestLayout_Pagination(t *testing.T) {
	p := newTestParagraph(t, paragraphStyle(1), "0123456789")
	e := newTestEngine()
	ctx := NewContext()

	first := NewRegion(3, 2, SizeDefinite, SizeDefinite)
	if res := e.Layout(p, first, ctx); res != BreakPage {
		t.Fatalf("first Layout = %v, want BreakPage", res)
	}
	if first.LineCount() != 2 || !first.IsFull() {
		t.Fatalf("first region: %d lines, full %v", first.LineCount(), first.IsFull())
	}
	if got := p.LayoutPositionToCharPos(ctx.Position); got != 6 {
		t.Errorf("resume char = %d, want 6", got)
	}

	second := NewRegion(3, 2, SizeDefinite, SizeDefinite)
	if res := e.Layout(p, second, ctx); res != Normal {
		t.Fatalf("second Layout = %v, want Normal", res)
	}
	if second.LineCount() != 2 {
		t.Fatalf("second region: %d lines, want 2", second.LineCount())
	}
	if got := second.Line(0).Text(); got != "678" {
		t.Errorf("second region first line = %q, want %q", got, "678")
	}
	if !near(second.Line(0).Top(), 0) {
		t.Errorf("second region first line top = %v, want 0", second.Line(0).Top())
	}
	if !ctx.Done(p) {
		t.Error("context not done")
	}
}

// TestLayout_PositionsIncrease checks that lines cover the paragraph in
// order without gaps.
func TestLayout_PositionsIncrease(t *testing.T) {
	content := "The quick brown fox jumps over the lazy dog.\nPack my box with five dozen liquor jugs."
	for _, width := range []float64{3, 7, 11.5, 40} {
		p := newTestParagraph(t, paragraphStyle(1), content)
		r, res := layoutOnce(t, p, width, 0, SizeDefinite, SizeIndefinite)
		if res != Normal {
			t.Fatalf("width %v: Layout = %v", width, res)
		}
		prev := Position{}
		for i, l := range r.Lines() {
			if l.Start() != prev {
				t.Errorf("width %v line %d starts at %v, want %v", width, i, l.Start(), prev)
			}
			if !l.Start().Less(l.End()) {
				t.Errorf("width %v line %d is empty: %v..%v", width, i, l.Start(), l.End())
			}
			prev = l.End()
		}
		if prev.Run != p.RunCount() {
			t.Errorf("width %v: last line ends at %v, want run %d", width, prev, p.RunCount())
		}
	}
}

func TestLayout_HardBreak(t *testing.T) {
	p := newTestParagraph(t, paragraphStyle(1), "ab\ncd\r\nef")
	r, _ := layoutOnce(t, p, 100, 0, SizeDefinite, SizeIndefinite)
	if r.LineCount() != 3 {
		t.Fatalf("LineCount = %d, want 3", r.LineCount())
	}
	want := []string{"ab\n", "cd\r\n", "ef"}
	for i, w := range want {
		if got := r.Line(i).Text(); got != w {
			t.Errorf("line %d = %q, want %q", i, got, w)
		}
		if !near(r.Line(i).Right(), 2) {
			t.Errorf("line %d right = %v, want 2", i, r.Line(i).Right())
		}
	}
}

func TestLayout_Alignment(t *testing.T) {
	const width = 10.5
	tests := []struct {
		align style.HorizontalAlign
		check func(t *testing.T, l *TextLine)
	}{
		{style.AlignLeft, func(t *testing.T, l *TextLine) {
			if !near(l.Left(), 0) || larger(l.Right(), width) {
				t.Errorf("left aligned line spans %v..%v", l.Left(), l.Right())
			}
		}},
		{style.AlignCenter, func(t *testing.T, l *TextLine) {
			if mid := (l.Left() + l.Right()) / 2; !near(mid, width/2) {
				t.Errorf("centered line middle = %v, want %v", mid, width/2)
			}
		}},
		{style.AlignRight, func(t *testing.T, l *TextLine) {
			if !near(l.Right(), width) || !larger(l.Left(), 0) {
				t.Errorf("right aligned line spans %v..%v", l.Left(), l.Right())
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			ps := paragraphStyle(1)
			ps.HorizontalAlign = tt.align
			p := newTestParagraph(t, ps, "Hello world!")
			r, _ := layoutOnce(t, p, width, 0, SizeDefinite, SizeIndefinite)
			if r.LineCount() != 2 {
				t.Fatalf("LineCount = %d, want 2", r.LineCount())
			}
			for _, l := range r.Lines() {
				tt.check(t, l)
			}
		})
	}
}

func TestLayout_Justify(t *testing.T) {
	const width = 10.5
	ps := paragraphStyle(1)
	ps.HorizontalAlign = style.AlignJustify
	p := newTestParagraph(t, ps, "Hello world!")
	r, _ := layoutOnce(t, p, width, 0, SizeDefinite, SizeIndefinite)
	if r.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", r.LineCount())
	}
	first := r.Line(0)
	if !near(first.Left(), 0) || !near(first.Right(), width) {
		t.Errorf("justified line spans %v..%v, want 0..%v", first.Left(), first.Right(), width)
	}
	if n := len(first.Pieces()); n != 2 {
		t.Errorf("justified line has %d pieces, want 2", n)
	}
	last := r.Line(1)
	if !near(last.Left(), 0) || !near(last.Right(), 6) {
		t.Errorf("last line spans %v..%v, want 0..6", last.Left(), last.Right())
	}
}

func TestLayout_Indents(t *testing.T) {
	const (
		size  = 1.1
		width = 3.6
	)
	tests := []struct {
		name  string
		set   func(*style.Indent)
		lines int
		// start of the first and second line, right edge limit
		first, second float64
	}{
		{"start px", func(in *style.Indent) { in.SetStart(0.2) }, 2, 0, 0.2},
		{"hanging px", func(in *style.Indent) { in.SetHanging(0.2) }, 2, 0, 0.2},
		{"first line chars", func(in *style.Indent) { in.SetFirstLineChars(2) }, 2, 2.2, 0},
		{"first line px", func(in *style.Indent) { in.SetFirstLine(0.2) }, 2, 0.2, 0},
		{"start chars", func(in *style.Indent) { in.SetStartChars(2) }, 2, 0, 2.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := paragraphStyle(size)
			tt.set(&ps.Indent)
			p := newTestParagraph(t, ps, "abcd")
			r, _ := layoutOnce(t, p, width, 0, SizeDefinite, SizeIndefinite)
			if r.LineCount() != tt.lines {
				t.Fatalf("LineCount = %d, want %d", r.LineCount(), tt.lines)
			}
			for i, want := range []float64{tt.first, tt.second} {
				l := r.Line(i)
				rect := l.CharBoundingRect(l.StartChar())
				if !near(rect.MinX, want) {
					t.Errorf("line %d starts at %v, want %v", i, rect.MinX, want)
				}
				if end := l.CharBoundingRect(l.EndChar()); larger(end.MaxX, width) {
					t.Errorf("line %d ends at %v past %v", i, end.MaxX, width)
				}
			}
		})
	}
}

func TestLayout_EndIndent(t *testing.T) {
	tests := []struct {
		name string
		set  func(*style.Indent)
	}{
		{"chars", func(in *style.Indent) { in.SetEndChars(1) }},
		{"px", func(in *style.Indent) { in.SetEnd(0.4) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := paragraphStyle(1.1)
			tt.set(&ps.Indent)
			p := newTestParagraph(t, ps, "abcd")
			r, _ := layoutOnce(t, p, 3.6, 0, SizeDefinite, SizeIndefinite)
			if r.LineCount() != 2 {
				t.Fatalf("LineCount = %d, want 2", r.LineCount())
			}
			for i, l := range r.Lines() {
				if l.CharCount() != 2 {
					t.Errorf("line %d holds %d chars, want 2", i, l.CharCount())
				}
			}
		})
	}
}

func TestLayout_LineSpacing(t *testing.T) {
	tests := []struct {
		name    string
		spacing style.Spacing
		want    float64
	}{
		{"natural", style.DefaultSpacing(), 1},
		{"auto 1.5", style.Spacing{LinePercent: 1.5, LineRule: style.LineRuleAuto}, 1.5},
		{"at least", style.Spacing{LinePx: 2, LineRule: style.LineRuleAtLeast}, 2},
		{"exact", style.Spacing{LinePx: 2, LineRule: style.LineRuleExact}, 2},
		{"exact natural", style.Spacing{LinePx: 1, LineRule: style.LineRuleExact}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := paragraphStyle(1)
			ps.Spacing = tt.spacing
			p := newTestParagraph(t, ps, "This is a test paragraph spanning multiple lines of text")
			r, _ := layoutOnce(t, p, 10, 0, SizeDefinite, SizeIndefinite)
			if r.LineCount() < 3 {
				t.Fatalf("LineCount = %d, want at least 3", r.LineCount())
			}
			for i := 1; i < r.LineCount(); i++ {
				d := r.Line(i).Baseline() - r.Line(i-1).Baseline()
				if !near(d, tt.want) {
					t.Errorf("baseline distance %d = %v, want %v", i, d, tt.want)
				}
			}
		})
	}
}

func TestLayout_ParagraphSpacing(t *testing.T) {
	e := newTestEngine()
	ctx := NewContext()
	r := NewRegion(100, 0, SizeDefinite, SizeIndefinite)

	ps := paragraphStyle(1)
	ps.Spacing.BeforePx = 2
	ps.Spacing.AfterPx = 3
	a := newTestParagraph(t, ps, "first")
	b := newTestParagraph(t, ps, "second")
	e.Layout(a, r, ctx)
	ctx.Reset()
	e.Layout(b, r, ctx)

	if r.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", r.LineCount())
	}
	if got := r.Line(0).Top(); !near(got, 2) {
		t.Errorf("first top = %v, want 2", got)
	}
	if got := r.Line(1).Top(); !near(got, 3+3+2) {
		t.Errorf("second top = %v, want 8", got)
	}
	if len(r.Paragraphs()) != 2 {
		t.Errorf("Paragraphs = %d, want 2", len(r.Paragraphs()))
	}

	skip := NewRegion(100, 0, SizeDefinite, SizeIndefinite)
	ctx = NewContext()
	ctx.SkipSpacingBeforeFirstLine = true
	e.Layout(a, skip, ctx)
	if got := skip.Line(0).Top(); got != 0 {
		t.Errorf("skipped spacing top = %v, want 0", got)
	}
}

func TestLayout_LineHeightOverride(t *testing.T) {
	for _, half := range []bool{false, true} {
		ps := paragraphStyle(2)
		ps.LineHeightOverride = true
		ps.HalfLeading = half
		p := newTestParagraph(t, ps, "This is a test paragraph\nwith multiple lines of text")
		r, _ := layoutOnce(t, p, 20, 0, SizeDefinite, SizeIndefinite)
		if r.LineCount() < 2 {
			t.Fatalf("half leading %v: LineCount = %d", half, r.LineCount())
		}
		for i, l := range r.Lines() {
			if !near(l.Height(), 2) {
				t.Errorf("half leading %v line %d height = %v, want 2", half, i, l.Height())
			}
		}
	}
}

func TestLayout_MaxLines(t *testing.T) {
	tests := []struct {
		maxLines int
		want     int
		exceeded bool
	}{
		{0, 4, false},
		{1, 1, true},
		{2, 2, true},
		{4, 4, false},
		{9, 4, false},
	}
	for _, tt := range tests {
		ps := paragraphStyle(1)
		ps.MaxLines = tt.maxLines
		p := newTestParagraph(t, ps, "0123456")
		r, _ := layoutOnce(t, p, 2, 0, SizeDefinite, SizeIndefinite)
		if r.LineCount() != tt.want {
			t.Errorf("MaxLines %d: LineCount = %d, want %d", tt.maxLines, r.LineCount(), tt.want)
		}
		if r.ExceededMaxLines() != tt.exceeded {
			t.Errorf("MaxLines %d: ExceededMaxLines = %v, want %v", tt.maxLines, r.ExceededMaxLines(), tt.exceeded)
		}
	}
}

func TestLayout_Ellipsis(t *testing.T) {
	tests := []struct {
		dir   style.WriteDirection
		wantX float64
		text  string
	}{
		{style.DirectionLTR, 0, "The quick..."},
		{style.DirectionRTL, 3, "...The quick"},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			ps := paragraphStyle(1)
			ps.WriteDirection = tt.dir
			ps.MaxLines = 1
			ps.Ellipsis = "..."
			p := newTestParagraph(t, ps, "The quick brown fox jumps over the lazy dog.")
			r, _ := layoutOnce(t, p, 12, 3, SizeDefinite, SizeDefinite)
			if r.LineCount() != 1 {
				t.Fatalf("LineCount = %d, want 1", r.LineCount())
			}
			l := r.Line(0)
			if got := l.CharBoundingRect(0).MinX; !near(got, tt.wantX) {
				t.Errorf("first char at %v, want %v", got, tt.wantX)
			}
			if got := l.Text(); got != tt.text {
				t.Errorf("line text = %q, want %q", got, tt.text)
			}
			if larger(l.Right(), 12) {
				t.Errorf("line right = %v past the region", l.Right())
			}
		})
	}
}

func TestLayout_EllipsisDelegate(t *testing.T) {
	ps := paragraphStyle(1)
	ps.MaxLines = 1
	obj := &fixedObject{advance: 2, ascent: -0.5, descent: 0.5}
	ps.EllipsisDelegate = obj
	p := newTestParagraph(t, ps, "abcdefghij")
	r, _ := layoutOnce(t, p, 5, 0, SizeDefinite, SizeIndefinite)
	l := r.Line(0)
	if got := l.Text(); got != "abc" {
		t.Errorf("line text = %q, want %q", got, "abc")
	}
	if !obj.placed || !near(obj.x, 3) {
		t.Errorf("ellipsis object placed %v at %v, want 3", obj.placed, obj.x)
	}
}

func TestLayout_OverflowWrap(t *testing.T) {
	const word = "abcdefghijklmnopqrstuvwxyz"
	tests := []struct {
		wrap  style.OverflowWrap
		lines int
	}{
		{style.OverflowWrapNormal, 1},
		{style.OverflowWrapAnywhere, 3},
		{style.OverflowWrapBreakWord, 3},
	}
	for _, tt := range tests {
		t.Run(tt.wrap.String(), func(t *testing.T) {
			ps := paragraphStyle(1)
			ps.OverflowWrap = tt.wrap
			p := newTestParagraph(t, ps, word)
			r, _ := layoutOnce(t, p, 10, 0, SizeDefinite, SizeIndefinite)
			if r.LineCount() != tt.lines {
				t.Fatalf("LineCount = %d, want %d", r.LineCount(), tt.lines)
			}
			if tt.wrap == style.OverflowWrapNormal {
				if !larger(r.Line(0).Right(), 10) {
					t.Errorf("unwrapped word right = %v, want past 10", r.Line(0).Right())
				}
				return
			}
			for i, l := range r.Lines() {
				if larger(l.Right(), 10) {
					t.Errorf("line %d right = %v past 10", i, l.Right())
				}
			}
		})
	}
}

func TestLayout_OverflowWrapKeepsGraphemes(t *testing.T) {
	// Four clusters of 'e' and a combining acute accent.
	word := strings.Repeat("e\u0301", 4)
	for _, width := range []float64{1, 3} {
		p := newTestParagraph(t, paragraphStyle(1), word)
		r, _ := layoutOnce(t, p, width, 0, SizeDefinite, SizeIndefinite)
		if r.LineCount() != 4 {
			t.Fatalf("width %v: LineCount = %d, want 4", width, r.LineCount())
		}
		for i, l := range r.Lines() {
			if l.StartChar() != 2*i || l.CharCount() != 2 {
				t.Errorf("width %v: line %d holds [%d, +%d), want [%d, +2)", width, i, l.StartChar(), l.CharCount(), 2*i)
			}
		}
	}
}

func TestLayout_OverflowWrapNormalBreaksAfterWord(t *testing.T) {
	ps := paragraphStyle(1)
	ps.OverflowWrap = style.OverflowWrapNormal
	p := newTestParagraph(t, ps, "abcdefgh ij")
	r, _ := layoutOnce(t, p, 3, 0, SizeDefinite, SizeIndefinite)
	if r.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", r.LineCount())
	}
	if got := r.Line(0).CharCount(); got != 9 {
		t.Errorf("first line chars = %d, want 9", got)
	}
	if got := r.Line(1).Text(); got != "ij" {
		t.Errorf("second line = %q, want %q", got, "ij")
	}
}

func TestLayout_WordBreakBreakAll(t *testing.T) {
	ps := paragraphStyle(1)
	ps.DefaultStyle.SetWordBreak(style.WordBreakBreakAll)
	p := newTestParagraph(t, ps, "ab cdefgh")
	r, _ := layoutOnce(t, p, 5, 0, SizeDefinite, SizeIndefinite)
	if got := r.Line(0).Text(); got != "ab cd" {
		t.Errorf("first line = %q, want %q", got, "ab cd")
	}
}

func TestLayout_TrailingSpacesHang(t *testing.T) {
	p := newTestParagraph(t, paragraphStyle(1), "ab     cd")
	r, _ := layoutOnce(t, p, 4, 0, SizeDefinite, SizeIndefinite)
	if r.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", r.LineCount())
	}
	if got := r.Line(1).Text(); got != "cd" {
		t.Errorf("second line = %q, want %q", got, "cd")
	}
}

func TestLayout_ZeroRegion(t *testing.T) {
	p := newTestParagraph(t, paragraphStyle(1), "abc")
	r, res := layoutOnce(t, p, 0, 10, SizeDefinite, SizeDefinite)
	if res != Normal || r.LineCount() != 0 {
		t.Errorf("Layout = %v with %d lines, want Normal and none", res, r.LineCount())
	}
}

func TestLayout_LastLineOverflow(t *testing.T) {
	for _, overflow := range []bool{true, false} {
		p := newTestParagraph(t, paragraphStyle(1), "0123456789")
		r := NewRegion(3, 1.5, SizeDefinite, SizeDefinite)
		ctx := NewContext()
		ctx.LastLineCanOverflow = overflow
		res := newTestEngine().Layout(p, r, ctx)
		if res != BreakPage {
			t.Errorf("overflow %v: Layout = %v, want BreakPage", overflow, res)
		}
		want := 1
		if overflow {
			want = 2
		}
		if r.LineCount() != want {
			t.Errorf("overflow %v: LineCount = %d, want %d", overflow, r.LineCount(), want)
		}
	}
}

type stopAfter struct {
	n     int
	calls []bool
}

func (s *stopAfter) OnLineLayouted(r *Region, line int, last bool, _ float64) Result {
	s.calls = append(s.calls, last)
	if line+1 >= s.n {
		return BreakColumn
	}
	return Normal
}

func TestLayout_LineListener(t *testing.T) {
	l := &stopAfter{n: 2}
	p := newTestParagraph(t, paragraphStyle(1), "0123456789")
	r := NewRegion(3, 0, SizeDefinite, SizeIndefinite, WithLineListener(l))
	ctx := NewContext()
	if res := newTestEngine().Layout(p, r, ctx); res != BreakColumn {
		t.Fatalf("Layout = %v, want BreakColumn", res)
	}
	if len(l.calls) != 2 || l.calls[0] || l.calls[1] {
		t.Errorf("listener calls = %v", l.calls)
	}

	var lastFlags []bool
	r = NewRegion(3, 0, SizeDefinite, SizeIndefinite, WithLineListener(LineListenerFunc(
		func(_ *Region, _ int, last bool, _ float64) Result {
			lastFlags = append(lastFlags, last)
			return Normal
		})))
	newTestEngine().Layout(p, r, NewContext())
	if n := len(lastFlags); n != 4 || !lastFlags[n-1] {
		t.Errorf("last flags = %v", lastFlags)
	}
}

func TestLayout_PageBreakLogged(t *testing.T) {
	buf := captureLogs(t)
	p := newTestParagraph(t, paragraphStyle(1), "0123456789")
	layoutOnce(t, p, 3, 1, SizeDefinite, SizeDefinite)
	if !strings.Contains(buf.String(), "layout: region full") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestLayout_NilArgumentsPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	newTestEngine().Layout(nil, NewRegion(1, 1, SizeDefinite, SizeDefinite), NewContext())
}

func TestLayout_WordBreakKeepAll(t *testing.T) {
	tests := []struct {
		wb    style.WordBreak
		lines int
	}{
		{style.WordBreakNormal, 2},
		{style.WordBreakKeepAll, 1},
	}
	for _, tt := range tests {
		t.Run(tt.wb.String(), func(t *testing.T) {
			ps := paragraphStyle(1)
			ps.OverflowWrap = style.OverflowWrapNormal
			ps.DefaultStyle.SetWordBreak(tt.wb)
			p := newTestParagraph(t, ps, "漢字漢字")
			r, _ := layoutOnce(t, p, 2, 0, SizeDefinite, SizeIndefinite)
			if r.LineCount() != tt.lines {
				t.Errorf("LineCount = %d, want %d", r.LineCount(), tt.lines)
			}
		})
	}
}
