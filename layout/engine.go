package layout

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/textlayout/internal/logx"
	"github.com/gogpu/textlayout/style"
	"github.com/gogpu/textlayout/text"
)

// Engine lays paragraphs out into regions. It holds no per paragraph state
// and is safe for concurrent use as long as each call gets its own
// paragraph, region and context.
type Engine struct {
	shaper *text.Shaper
}

// NewEngine returns an engine shaping text with sh.
func NewEngine(sh *text.Shaper) *Engine {
	if sh == nil {
		panic("layout: NewEngine with nil shaper")
	}
	return &Engine{shaper: sh}
}

// Shaper returns the shaper of the engine.
func (e *Engine) Shaper() *text.Shaper { return e.shaper }

// Layout places the lines of p into r, starting at ctx.Position, and
// advances ctx.Position past the committed lines. It returns BreakPage
// when r is full and content remains, so the caller can continue with
// the same context on a new region. Normal means p is done or the region
// has no area.
func (e *Engine) Layout(p *Paragraph, r *Region, ctx *Context) Result {
	if p == nil || r == nil || ctx == nil {
		panic("layout: Layout with nil argument")
	}
	p.Format(e.shaper)
	if r.width <= 0 || r.height <= 0 {
		return Normal
	}
	if ctx.Position.Run > len(p.runs) || ctx.Position.Run < 0 {
		panic(fmt.Sprintf("layout: context position %v out of range", ctx.Position))
	}

	b := &lineBuilder{engine: e, para: p, region: r, ctx: ctx, ps: &p.style}
	result := Normal
	var line *TextLine
	for ctx.Position.Run < len(p.runs) && result == Normal && !r.full {
		if line == nil {
			line = b.newLine()
		}
		ctx.Position, result = b.addBreakableRuns(line, ctx.Position)
		switch result {
		case RelayoutLine:
			ctx.Position = line.start
			line.clearForRelayout()
			result = Normal
			continue
		case BreakLine, BreakPage, BreakColumn:
		default:
			if ctx.Position.Run < len(p.runs) {
				continue
			}
		}
		if !line.IsEmpty() {
			result = b.finishLine(line)
			line = nil
		}
	}
	return result
}

// lineBuilder holds the state of one Layout call.
type lineBuilder struct {
	engine *Engine
	para   *Paragraph
	region *Region
	ctx    *Context
	ps     *style.ParagraphStyle
}

func (b *lineBuilder) lineCount() int { return b.region.paragraphLineCount(b.para) }

func (b *lineBuilder) newLine() *TextLine {
	l := newTextLine(b.para, b.region, b.ctx.Position)
	l.top = b.region.layoutedBottom + b.lineGap()
	return l
}

// lineGap returns the spacing above the next line.
func (b *lineBuilder) lineGap() float64 {
	sp := b.ps.Spacing
	last := b.region.lastLine()
	if last == nil {
		if b.ctx.SkipSpacingBeforeFirstLine {
			return 0
		}
		gap := sp.LineSpaceBeforePx
		if b.ctx.Position == (Position{}) {
			gap += sp.BeforePx
		}
		return gap
	}
	prev := last.para.style.Spacing
	gap := sp.LineSpaceBeforePx + prev.LineSpaceAfterPx
	if last.para != b.para {
		gap += prev.AfterPx + sp.BeforePx
	}
	return gap
}

// finishLine commits line if it fits and decides whether the region is
// full. A full region gets the ellipsis on its last line when content was
// cut.
func (b *lineBuilder) finishLine(line *TextLine) Result {
	line.createPieces()
	line.applyAlignment(b.ps.HorizontalAlign)

	breakPage, keep := true, true
	switch {
	case b.lineCount()+1 >= b.ps.LineLimit():
		b.region.exceeded = line.end.Run < len(b.para.runs)
	case largerOrEqual(b.region.height, line.Bottom()):
		breakPage = false
	case larger(b.region.height, line.top) && b.ctx.LastLineCanOverflow:
	default:
		keep = false
	}

	result := Normal
	if keep {
		result = b.region.addLine(line)
	} else {
		b.ctx.Position = line.start
	}
	if !breakPage {
		return result
	}

	b.region.full = true
	if last := b.region.lastLine(); last != nil && (last != line || b.ctx.Position.Run < len(b.para.runs)) {
		last.stripByEllipsis(b.engine.shaper)
		b.region.updateLayoutedSize(last)
	}
	logx.Logger().Debug("layout: region full",
		slog.Int("lines", b.region.LineCount()),
		slog.String("position", b.ctx.Position.String()),
		slog.Bool("exceeded_max_lines", b.region.exceeded))
	return BreakPage
}

// addBreakableRuns fills the ranges of line from start. It returns the
// position after the placed content and Normal when the paragraph ended
// without filling the line, BreakLine when the line is done, or a
// relayout or page break request. Relayout results return start.
func (b *lineBuilder) addBreakableRuns(line *TextLine, start Position) (Position, Result) {
	p := b.para
	pos := start
	metrics := Metrics{Ascent: -line.ascent, Descent: line.descent}

	h := b.tryAddRun(metrics, p.runs[pos.Run])
	if b.needRelayout(line, h) {
		return start, RelayoutLine
	}

	var greedy Position
	for {
		rng := line.currentRange()
		avail := rng.AvailableWidth()
		var result Result
		greedy, result = b.findBreakPosInWord(pos, &avail)
		brk := greedy
		if b.lineCount()+1 < b.ps.LineLimit() {
			brk = p.findPrevBoundary(greedy, text.BoundaryLineBreakable)
		}
		if brk.Less(pos) {
			brk = pos
		}
		if pos.Less(brk) {
			desired := b.addWordsToRange(rng, pos, brk, &metrics)
			if b.needRelayout(line, desired) {
				return start, RelayoutLine
			}
			line.update(brk, metrics, desired)
			pos = brk
		}
		if brk.Run >= len(p.runs) || result != Normal {
			return brk, result
		}
		if line.cur+1 >= len(line.ranges) {
			break
		}
		line.cur++
	}

	brk := b.breakWordForWidth(pos, greedy)
	if brk == pos && line.IsEmpty() {
		rng := line.currentRange()
		if len(line.ranges) > 1 || larger(b.region.width, rng.Width()+line.startIndent+line.endIndent) {
			// No range is wide enough here; move the line down.
			_, next := b.region.rangesAt(line.top, max(h, line.relayoutHeight), line.startIndent, line.endIndent)
			line.ranges = nil
			line.top = next
			if larger(next, b.region.height) {
				b.region.full = true
				return start, BreakPage
			}
			return start, RelayoutLine
		}
		brk = b.forceBreakWord(pos, greedy)
	}
	if pos.Less(brk) {
		desired := b.addWordsToRange(line.currentRange(), pos, brk, &metrics)
		if b.needRelayout(line, desired) {
			return start, RelayoutLine
		}
		line.update(brk, metrics, desired)
	}
	return brk, BreakLine
}

// needRelayout fetches the ranges of line for height h. It reports true
// when the line already has content and taller content changed the
// ranges. The height is remembered so the relayout keeps those ranges.
func (b *lineBuilder) needRelayout(line *TextLine, h float64) bool {
	h = max(h, line.relayoutHeight)
	if len(line.ranges) == 0 {
		ranges, _ := b.region.rangesAt(line.top, h, line.startIndent, line.endIndent)
		line.setRanges(ranges)
		return false
	}
	if !larger(h, line.Height()) {
		return false
	}
	ranges, _ := b.region.rangesAt(line.top, h, line.startIndent, line.endIndent)
	if line.sameRanges(ranges) {
		return false
	}
	line.setRanges(ranges)
	line.relayoutHeight = h
	return true
}

// tryAddRun returns the line height after adding r to a line with
// metrics m.
func (b *lineBuilder) tryAddRun(m Metrics, r *Run) float64 {
	sp := b.ps.Spacing
	if sp.LineRule == style.LineRuleExact {
		return sp.LinePx
	}
	rm := r.metrics
	desired := rm.Height()
	if !r.isObject() {
		desired = sp.LineHeight(desired)
		rm.ApplyDesiredHeight(desired)
	}
	rm.ApplyBaselineOffset(r.baselineOffset())
	m.UpdateMax(rm)
	return m.Height()
}

// addWordsToRange places [start, end) into rng, growing m, and returns the
// largest line height the runs ask for.
func (b *lineBuilder) addWordsToRange(rng *LineRange, start, end Position, m *Metrics) float64 {
	p := b.para
	desired := -MaxUnits
	for pos := start; pos.Less(end); pos = pos.NextRun() {
		r := p.runs[pos.Run]
		desired = max(desired, b.tryAddRun(*m, r))
		rm := r.metrics
		rm.ApplyBaselineOffset(r.baselineOffset())
		m.UpdateMax(rm)
		stop := r.CharCount()
		if pos.Run == end.Run {
			stop = end.Char
		}
		rng.add(&Piece{run: r, rng: rng, start: pos.Char, end: stop})
	}
	return desired
}

func isSpaceChar(c rune) bool {
	switch c {
	case ' ', '\t', 0xa0, 0x200b, 0x3000:
		return true
	}
	return false
}

// findBreakPosInWord returns how far from start content fits in avail,
// without crossing a hard break, plus the trailing spaces after it. The
// result is BreakLine when the hard break was reached.
func (b *lineBuilder) findBreakPosInWord(start Position, avail *float64) (Position, Result) {
	p := b.para
	brk := start
	end := p.findNextBoundary(start, text.BoundaryMustLineBreak)
	for brk.Less(end) {
		r := p.runs[brk.Run]
		k := brk.Char
		if r.CharCount() == 0 || r.isObject() {
			w := r.width(0, r.CharCount())
			if larger(w, *avail) {
				return brk, Normal
			}
			*avail -= w
			k = r.CharCount()
		} else {
			var w float64
			k, w = r.measureByWidth(k, *avail)
			if k == brk.Char {
				break
			}
			*avail -= w
		}
		if k == r.CharCount() {
			brk = brk.NextRun()
		} else {
			brk.Char = k
			break
		}
	}

	for brk.Less(end) {
		r := p.runs[brk.Run]
		limit := r.CharCount()
		if brk.Run == end.Run {
			limit = end.Char
		}
		k := brk.Char
		for k < limit && isSpaceChar(p.content[r.start+k]) {
			k++
		}
		if k < r.CharCount() {
			brk.Char = k
			break
		}
		brk = brk.NextRun()
	}

	if !brk.Less(end) {
		return end, BreakLine
	}
	return brk, Normal
}

// breakWordForWidth returns the last grapheme boundary up to greedy when
// the word it cuts allows breaks anywhere, and pos otherwise.
func (b *lineBuilder) breakWordForWidth(pos, greedy Position) Position {
	p := b.para
	if r := p.runs[pos.Run]; r.isGhost() || greedy == pos {
		return pos
	}
	if r := p.runAt(greedy.Run); r == nil || r.CharCount() == 0 {
		return pos
	}
	if c := p.LayoutPositionToCharPos(greedy); c > 0 && p.styles.GetStyle(c-1).WordBreak() == style.WordBreakBreakAll {
		if brk := p.findPrevBoundary(greedy, text.BoundaryGrapheme); pos.Less(brk) {
			return brk
		}
	}
	return pos
}

// forceBreakWord makes progress when nothing fits: overflow wrap splits
// the word at the last grapheme boundary that fits, or after the first
// grapheme when none does. Otherwise the whole word overflows the line.
func (b *lineBuilder) forceBreakWord(pos, greedy Position) Position {
	p := b.para
	if b.ps.OverflowWrap == style.OverflowWrapNormal {
		return p.findNextBoundary(pos, text.BoundaryLineBreakable)
	}
	if r := p.runAt(pos.Run); r == nil || r.CharCount() == 0 {
		return p.findNextBoundary(pos, text.BoundaryLineBreakable)
	}
	if pos.Less(greedy) {
		if brk := p.findPrevBoundary(greedy, text.BoundaryGrapheme); pos.Less(brk) {
			return brk
		}
	}
	return p.findNextBoundary(pos, text.BoundaryGrapheme)
}
