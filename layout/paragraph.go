package layout

import (
	"fmt"
	"log/slog"
	"sort"
	"unicode/utf8"

	"github.com/gogpu/textlayout/bidi"
	"github.com/gogpu/textlayout/internal/logx"
	"github.com/gogpu/textlayout/style"
	"github.com/gogpu/textlayout/text"
)

// objectReplacementChar stands for an inline object in the paragraph text.
const objectReplacementChar = '\uFFFC'

// item is one call to an Add method, kept until the paragraph is formatted.
type item struct {
	typ      RunType
	start    int
	end      int
	style    style.Style
	content  []rune
	delegate style.RunDelegate
}

// Paragraph is styled content laid out as a unit. Content is added with
// the Add methods; Engine.Layout formats it on first use.
//
// A Paragraph is not safe for concurrent use.
type Paragraph struct {
	style   style.ParagraphStyle
	styles  *style.Manager
	content []rune
	items   []item

	formatted bool
	runs      []*Run
	analyst   *text.BoundaryAnalyst
	levels    []bidi.Level
	visual    []int // logical to visual character index
	paraLevel bidi.Level
	indent    style.Indent
}

// NewParagraph returns an empty paragraph with settings ps.
func NewParagraph(ps style.ParagraphStyle) *Paragraph {
	return &Paragraph{
		style:  ps,
		styles: style.NewManager(ps.DefaultStyle),
	}
}

// ParagraphStyle returns the paragraph settings.
func (p *Paragraph) ParagraphStyle() style.ParagraphStyle { return p.style }

// SetParagraphStyle replaces the paragraph settings. The paragraph is
// formatted again on the next layout.
func (p *Paragraph) SetParagraphStyle(ps style.ParagraphStyle) {
	p.style = ps
	p.styles.SetParagraphStyle(ps.DefaultStyle)
	p.formatted = false
}

// Styles returns the character style manager. Changes made through it
// take effect once the paragraph is formatted again; use ApplyStyleInRange
// to have that done automatically.
func (p *Paragraph) Styles() *style.Manager { return p.styles }

// AddTextRun appends content with style s.
func (p *Paragraph) AddTextRun(s style.Style, content string) error {
	if content == "" {
		logx.Logger().Warn("layout: empty text run rejected")
		return ErrEmptyText
	}
	if !utf8.ValidString(content) {
		logx.Logger().Error("layout: invalid UTF-8 text run rejected", slog.Int("bytes", len(content)))
		return ErrInvalidUTF8
	}
	start := len(p.content)
	p.content = append(p.content, []rune(content)...)
	p.items = append(p.items, item{typ: RunText, start: start, end: len(p.content), style: s})
	p.styles.ApplyStyleInRange(s, start, len(p.content))
	p.formatted = false
	return nil
}

// AddShapeRun appends an inline object measured by delegate. It takes one
// object replacement character of the paragraph text.
func (p *Paragraph) AddShapeRun(s style.Style, delegate style.RunDelegate) {
	if delegate == nil {
		panic("layout: AddShapeRun with nil delegate")
	}
	start := len(p.content)
	p.content = append(p.content, objectReplacementChar)
	p.items = append(p.items, item{typ: RunObject, start: start, end: start + 1, style: s, delegate: delegate})
	p.styles.ApplyStyleInRange(s, start, start+1)
	p.formatted = false
}

// AddGhostRun appends content that is drawn and measured but is not part
// of the paragraph text: character positions do not count it.
func (p *Paragraph) AddGhostRun(s style.Style, content string) error {
	if content == "" {
		logx.Logger().Warn("layout: empty ghost run rejected")
		return ErrEmptyText
	}
	if !utf8.ValidString(content) {
		logx.Logger().Error("layout: invalid UTF-8 ghost run rejected", slog.Int("bytes", len(content)))
		return ErrInvalidUTF8
	}
	pos := len(p.content)
	p.items = append(p.items, item{typ: RunGhost, start: pos, end: pos, style: s, content: []rune(content)})
	p.formatted = false
	return nil
}

// ApplyStyleInRange applies s to the characters [start, end).
func (p *Paragraph) ApplyStyleInRange(s style.Style, start, end int) {
	if start < 0 || end > len(p.content) || start > end {
		panic(fmt.Sprintf("layout: style range [%d, %d) out of range [0, %d)", start, end, len(p.content)))
	}
	p.styles.ApplyStyleInRange(s, start, end)
	p.formatted = false
}

// CharCount returns the number of paragraph characters. Ghost text is not
// counted.
func (p *Paragraph) CharCount() int { return len(p.content) }

// Text returns the paragraph text.
func (p *Paragraph) Text() string { return string(p.content) }

// RunCount returns the number of runs. It is zero until the paragraph is
// formatted.
func (p *Paragraph) RunCount() int { return len(p.runs) }

// Run returns run i.
func (p *Paragraph) Run(i int) *Run {
	if i < 0 || i >= len(p.runs) {
		panic(fmt.Sprintf("layout: run %d out of range [0, %d)", i, len(p.runs)))
	}
	return p.runs[i]
}

// runAt returns run i, or nil past the last run.
func (p *Paragraph) runAt(i int) *Run {
	if i < 0 || i >= len(p.runs) {
		return nil
	}
	return p.runs[i]
}

// Formatted reports whether the runs reflect the current content.
func (p *Paragraph) Formatted() bool { return p.formatted }

// Format splits the paragraph into runs and shapes them. It does nothing
// when the paragraph has not changed since the last call.
func (p *Paragraph) Format(sh *text.Shaper) {
	if p.formatted {
		return
	}
	p.styles.SetParagraphStyle(p.style.DefaultStyle)
	p.styles.ClearExtraAttributes()

	def := p.styles.ParagraphStyle()
	p.indent = p.style.Indent.Resolve(def.TextSize())
	if p.indent.FirstLine > 0 && p.indent.Hanging > 0 {
		logx.Logger().Warn("layout: first line and hanging indents both set",
			slog.Float64("first_line", p.indent.FirstLine), slog.Float64("hanging", p.indent.Hanging))
	}

	if len(p.items) == 0 {
		p.content = append(p.content, '\n')
		p.items = append(p.items, item{typ: RunText, start: 0, end: 1, style: style.NewStyle()})
	}

	p.analyst = text.NewBoundaryAnalyst(p.content)
	p.applyWordBreak()
	p.resolveLevels()
	p.buildRuns()
	p.shapeRuns(sh)
	for _, r := range p.runs {
		r.layout(sh)
	}
	p.formatted = true
	logx.Logger().Debug("layout: paragraph formatted",
		slog.Int("chars", len(p.content)), slog.Int("runs", len(p.runs)))
}

// applyWordBreak drops the CJK break opportunities inside keep-all ranges.
func (p *Paragraph) applyWordBreak() {
	for c := 0; c < len(p.content); {
		sr := p.styles.GetStyleRange(c, len(p.content), style.AttrWordBreak.Mask())
		if sr.Style.WordBreak() == style.WordBreakKeepAll {
			p.analyst.KeepAll(p.content, sr.Start, sr.End)
		}
		c = sr.End
	}
}

func (p *Paragraph) resolveLevels() {
	var level bidi.Level
	switch p.style.WriteDirection {
	case style.DirectionAuto:
		level = bidi.DefaultLTR
	case style.DirectionRTL:
		level = 1
	}
	p.levels, p.visual = nil, nil
	p.paraLevel = level &^ bidi.DefaultLTR
	if len(p.content) == 0 {
		return
	}
	b := bidi.NewParagraph()
	b.SetPara(p.content, level, nil)
	p.paraLevel = b.ParaLevel()
	p.levels = b.Levels()
	p.visual = b.LogicalMap()
}

// hardBreakLen returns the length of the hard break sequence starting at
// k, or 0.
func hardBreakLen(content []rune, k int) int {
	switch content[k] {
	case '\r':
		if k+1 < len(content) && content[k+1] == '\n' {
			return 2
		}
		return 1
	case '\n', '\v', '\f', 0x85, 0x2028, 0x2029:
		return 1
	}
	return 0
}

// buildRuns cuts the items into runs at bidi level changes, layout style
// changes and hard breaks, and sets the boundary after every run.
func (p *Paragraph) buildRuns() {
	n := len(p.content)
	split := make([]bool, n+1)
	control := make([]bool, n+1)

	for k := 0; k < n; {
		l := hardBreakLen(p.content, k)
		if l == 0 {
			k++
			continue
		}
		split[k], split[k+l] = true, true
		control[k] = true
		p.analyst.UpgradeBoundaryType(k+l-1, k+l, text.BoundaryMustLineBreak)
		if p.content[k] == 0x2029 {
			p.analyst.UpgradeBoundaryType(k, k+1, text.BoundaryParagraph)
		}
		k += l
	}
	for k := 1; k < n; k++ {
		if p.levels[k] != p.levels[k-1] {
			split[k] = true
			p.analyst.UpgradeBoundaryType(k-1, k, text.BoundaryLineBreakable)
		}
	}

	p.runs = p.runs[:0]
	for _, it := range p.items {
		switch it.typ {
		case RunGhost:
			s := p.styles.ParagraphStyle()
			s.Merge(it.style)
			p.runs = append(p.runs, &Run{
				para: p, typ: RunGhost, start: it.start, end: it.start,
				style: s, level: p.paraLevel, content: it.content,
			})
		case RunObject:
			p.runs = append(p.runs, &Run{
				para: p, typ: RunObject, start: it.start, end: it.end,
				style: p.styles.GetStyle(it.start), level: p.levels[it.start], delegate: it.delegate,
			})
		default:
			p.splitText(it.start, it.end, split, control)
		}
	}

	for i, r := range p.runs {
		switch {
		case r.isGhost() || r.isObject():
			r.boundary = text.BoundaryLineBreakable
			if r.CharCount() > 0 {
				p.analyst.UpgradeBoundaryType(r.start, r.end, text.BoundaryLineBreakable)
				if r.start > 0 {
					p.analyst.UpgradeBoundaryType(r.start-1, r.start, text.BoundaryLineBreakable)
				}
			}
			if i > 0 {
				p.runs[i-1].boundary = max(p.runs[i-1].boundary, text.BoundaryLineBreakable)
			}
		default:
			r.boundary = p.analyst.Type(r.end - 1)
		}
	}
	if last := p.runs[len(p.runs)-1]; last.boundary < text.BoundaryLineBreakable {
		last.boundary = text.BoundaryLineBreakable
	}
}

// splitText appends the runs of the text item [start, end).
func (p *Paragraph) splitText(start, end int, split, control []bool) {
	for start < end {
		stop := start + 1
		for stop < end && !split[stop] {
			stop++
		}
		if !control[start] {
			r := p.styles.GetStyleRange(start, stop, style.LayoutMask)
			if r.End < stop {
				if p.styles.GetStyle(r.End).BaselineOffset() != p.styles.GetStyle(r.End-1).BaselineOffset() {
					p.analyst.UpgradeBoundaryType(r.End-1, r.End, text.BoundaryLineBreakable)
				}
				stop = r.End
			}
		}
		typ := RunText
		if control[start] {
			typ = RunControl
		}
		p.runs = append(p.runs, &Run{
			para: p, typ: typ, start: start, end: stop,
			style: p.styles.GetStyle(start), level: p.levels[start],
		})
		start = stop
	}
}

// shapeRuns shapes consecutive text runs of the same direction and shape
// style together, so that shaping sees the whole context.
func (p *Paragraph) shapeRuns(sh *text.Shaper) {
	for i := 0; i < len(p.runs); {
		r := p.runs[i]
		switch r.typ {
		case RunObject:
			i++
			continue
		case RunGhost:
			res := sh.ShapeText(r.content, r.style.ShapeStyle(), r.IsRTL())
			r.shape = text.NewShapePiece(res, 0, res.CharCount())
			i++
			continue
		}
		j := i + 1
		for j < len(p.runs) && shapesWith(p.runs[j], r) {
			j++
		}
		start, end := r.start, p.runs[j-1].end
		res := sh.ShapeText(p.content[start:end], r.style.ShapeStyle(), r.IsRTL())
		for _, q := range p.runs[i:j] {
			q.shape = text.NewShapePiece(res, q.start-start, q.end-start)
		}
		i = j
	}
}

func shapesWith(r, first *Run) bool {
	if r.typ != RunText && r.typ != RunControl {
		return false
	}
	return r.IsRTL() == first.IsRTL() && r.style.ShapeStyle() == first.style.ShapeStyle()
}

// LayoutPositionToCharPos returns the paragraph character at pos.
func (p *Paragraph) LayoutPositionToCharPos(pos Position) int {
	r := p.runAt(pos.Run)
	if r == nil {
		if pos.Run != len(p.runs) || pos.Char != 0 {
			panic(fmt.Sprintf("layout: position %v out of range", pos))
		}
		return len(p.content)
	}
	if pos.Char < 0 || pos.Char > r.CharCount() {
		panic(fmt.Sprintf("layout: position %v out of range", pos))
	}
	return r.start + pos.Char
}

// CharPosToLayoutPosition returns the position of paragraph character c.
// Runs without characters are skipped; characters past the end map to
// {RunCount, 0}.
func (p *Paragraph) CharPosToLayoutPosition(c int) Position {
	i := sort.Search(len(p.runs), func(i int) bool { return p.runs[i].end > c })
	for i < len(p.runs) && p.runs[i].CharCount() == 0 {
		i++
	}
	if i == len(p.runs) {
		return Position{Run: len(p.runs)}
	}
	return Position{Run: i, Char: max(c-p.runs[i].start, 0)}
}

func (p *Paragraph) boundaries() *text.BoundaryAnalyst {
	if p.analyst == nil || !p.formatted {
		return text.NewBoundaryAnalyst(p.content)
	}
	return p.analyst
}

// GetWordBoundary returns the word [start, end) containing character c.
func (p *Paragraph) GetWordBoundary(c int) (start, end int) {
	if c < 0 || c >= len(p.content) {
		return c, c
	}
	a := p.boundaries()
	return a.FindPrevBoundary(c, text.BoundaryWord), a.FindNextBoundary(c, text.BoundaryWord)
}

// GetMaxIntrinsicWidth returns the width of the widest hard broken line,
// or 0 when the paragraph is not formatted.
func (p *Paragraph) GetMaxIntrinsicWidth() float64 {
	if !p.formatted {
		return 0
	}
	var maxWidth, lineWidth float64
	lineStart := 0
	hardBreak := p.analyst.FindNextBoundary(0, text.BoundaryMustLineBreak)
	for i := 0; i < len(p.runs); {
		r := p.runs[i]
		if r.CharCount() == 0 {
			lineWidth += r.fullWidth()
			i++
			continue
		}
		s, e := max(lineStart, r.start), min(hardBreak, r.end)
		if e > s {
			lineWidth += r.width(s-r.start, e-s)
		}
		if e == hardBreak && p.analyst.Type(e-1) >= text.BoundaryMustLineBreak {
			maxWidth = max(maxWidth, lineWidth)
			lineWidth = 0
			lineStart = hardBreak
			hardBreak = p.analyst.FindNextBoundary(hardBreak, text.BoundaryMustLineBreak)
		}
		if e == r.end {
			i++
		}
	}
	return max(maxWidth, lineWidth)
}

// findNextBoundary returns the position after the first break of at least
// t at or after start, counting the boundaries after runs.
func (p *Paragraph) findNextBoundary(start Position, t text.BoundaryType) Position {
	r := p.runs[start.Run]
	ret := p.CharPosToLayoutPosition(p.analyst.FindNextBoundary(r.start+start.Char, t))
	for pos := start; pos.Run < ret.Run; pos = pos.NextRun() {
		if p.runs[pos.Run].boundary >= t {
			return pos.NextRun()
		}
	}
	return ret
}

// findPrevBoundary returns the last break of at least t at or before
// start.
func (p *Paragraph) findPrevBoundary(start Position, t text.BoundaryType) Position {
	r := p.runAt(start.Run)
	if r == nil {
		return start
	}
	pos := start
	for r.CharCount() == 0 {
		if pos.Run == 0 {
			return Position{}
		}
		prev := p.runs[pos.Run-1]
		if prev.boundary >= t {
			return Position{Run: pos.Run}
		}
		pos = Position{Run: pos.Run - 1, Char: max(prev.CharCount()-1, 0)}
		r = prev
	}
	ret := p.CharPosToLayoutPosition(p.analyst.FindPrevBoundary(r.start+pos.Char, t))
	for pos.Run > ret.Run {
		if p.runs[pos.Run-1].boundary >= t {
			return Position{Run: pos.Run}
		}
		pos = Position{Run: pos.Run - 1}
	}
	return ret
}

// boundaryBefore returns the break type before the character at pos.
func (p *Paragraph) boundaryBefore(pos Position) text.BoundaryType {
	return p.analyst.TypeBefore(p.LayoutPositionToCharPos(pos))
}

func (p *Paragraph) isFirstCharOfParagraph(c int) bool {
	return c == 0 || c >= len(p.content) || p.analyst.TypeBefore(c) == text.BoundaryParagraph
}

// visualIndex returns the visual position of character c. Positions past
// the end come last.
func (p *Paragraph) visualIndex(c int) int {
	if c >= len(p.visual) {
		return len(p.visual)
	}
	return p.visual[c]
}
