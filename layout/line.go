package layout

import (
	"sort"
	"strings"

	"github.com/gogpu/textlayout/style"
	"github.com/gogpu/textlayout/text"
)

// LineRange is a horizontal span of a line that content can be placed in.
type LineRange struct {
	xMin, xMax float64
	used       float64
	pieces     []*Piece
}

func newLineRange(xMin, xMax float64) *LineRange {
	return &LineRange{xMin: xMin, xMax: xMax}
}

// Left returns the left edge of the range.
func (lr *LineRange) Left() float64 { return lr.xMin }

// Right returns the right edge of the range.
func (lr *LineRange) Right() float64 { return lr.xMax }

// Width returns the width of the range.
func (lr *LineRange) Width() float64 { return lr.xMax - lr.xMin }

// AvailableWidth returns the width not yet taken by content.
func (lr *LineRange) AvailableWidth() float64 { return lr.Width() - lr.used }

// IsEmpty reports whether no content was placed in the range.
func (lr *LineRange) IsEmpty() bool { return len(lr.pieces) == 0 }

func (lr *LineRange) add(pc *Piece) {
	lr.pieces = append(lr.pieces, pc)
	lr.used += pc.Width()
}

func (lr *LineRange) contentRight() float64 { return lr.xMin + lr.used }

// TextLine is one laid out line of a paragraph.
type TextLine struct {
	para   *Paragraph
	region *Region
	start  Position
	end    Position

	top         float64
	ascent      float64 // above the baseline, positive
	descent     float64
	topExtra    float64
	bottomExtra float64
	startIndent float64
	endIndent   float64

	ranges         []*LineRange
	cur            int
	relayoutHeight float64 // height the ranges were fetched for on relayout
	pieces []*Piece // visual order
	extra  []*Run   // ghost runs owned by the line
}

func newTextLine(p *Paragraph, r *Region, start Position) *TextLine {
	l := &TextLine{para: p, region: r, start: start, end: start}
	idx := start.Run
	for idx+1 < len(p.runs) && p.runs[idx].isGhost() {
		idx++
	}
	c := len(p.content)
	if run := p.runAt(idx); run != nil {
		c = run.start
		if idx == start.Run {
			c += start.Char
		}
	}
	l.startIndent, l.endIndent = p.indent.Start, p.indent.End
	if p.isFirstCharOfParagraph(c) {
		l.startIndent = p.indent.FirstLine
	} else {
		l.startIndent += p.indent.Hanging
	}
	return l
}

// Paragraph returns the paragraph the line belongs to.
func (l *TextLine) Paragraph() *Paragraph { return l.para }

// Start returns the position of the first character of the line.
func (l *TextLine) Start() Position { return l.start }

// End returns the position after the line.
func (l *TextLine) End() Position { return l.end }

// StartChar returns the first paragraph character of the line.
func (l *TextLine) StartChar() int { return l.para.LayoutPositionToCharPos(l.start) }

// EndChar returns the paragraph character after the line.
func (l *TextLine) EndChar() int { return l.para.LayoutPositionToCharPos(l.end) }

// CharCount returns the number of paragraph characters on the line.
func (l *TextLine) CharCount() int { return l.EndChar() - l.StartChar() }

// IsEmpty reports whether the line holds no content.
func (l *TextLine) IsEmpty() bool { return l.start == l.end }

// IsLastLineOfParagraph reports whether the line ends the paragraph.
func (l *TextLine) IsLastLineOfParagraph() bool { return l.end.Run >= len(l.para.runs) }

// Top returns the top of the line in region coordinates.
func (l *TextLine) Top() float64 { return l.top }

// Height returns the line height including the extra height of the line
// rule.
func (l *TextLine) Height() float64 { return l.ContentHeight() + l.topExtra + l.bottomExtra }

// Bottom returns Top plus Height.
func (l *TextLine) Bottom() float64 { return l.top + l.Height() }

// Baseline returns the baseline in region coordinates.
func (l *TextLine) Baseline() float64 { return l.top + l.ContentBaseline() }

// ContentHeight returns the height of the glyph content.
func (l *TextLine) ContentHeight() float64 { return l.ascent + l.descent }

// ContentTop returns the top of the content relative to the line top.
func (l *TextLine) ContentTop() float64 { return l.topExtra }

// ContentBaseline returns the baseline relative to the line top.
func (l *TextLine) ContentBaseline() float64 { return l.topExtra + l.ascent }

// ContentBottom returns the bottom of the content relative to the line
// top.
func (l *TextLine) ContentBottom() float64 { return l.topExtra + l.ContentHeight() }

// StartIndent returns the indent at the start of the line.
func (l *TextLine) StartIndent() float64 { return l.startIndent }

// EndIndent returns the indent at the end of the line.
func (l *TextLine) EndIndent() float64 { return l.endIndent }

// Ranges returns the horizontal ranges of the line.
func (l *TextLine) Ranges() []*LineRange { return l.ranges }

// Pieces returns the content of the line in visual order.
func (l *TextLine) Pieces() []*Piece { return l.pieces }

// Left returns the left edge of the content.
func (l *TextLine) Left() float64 {
	if len(l.pieces) > 0 {
		return l.pieces[0].x
	}
	if len(l.ranges) > 0 {
		return l.ranges[0].xMin
	}
	return l.startIndent
}

// Right returns the right edge of the content.
func (l *TextLine) Right() float64 {
	if n := len(l.pieces); n > 0 {
		return l.pieces[n-1].x + l.pieces[n-1].Width()
	}
	if n := len(l.ranges); n > 0 {
		return l.ranges[n-1].contentRight()
	}
	return l.startIndent
}

// Text returns the visible text of the line in visual order of pieces,
// ellipsis included.
func (l *TextLine) Text() string {
	var b strings.Builder
	for _, pc := range l.pieces {
		b.WriteString(pc.Text())
	}
	return b.String()
}

func (l *TextLine) currentRange() *LineRange { return l.ranges[l.cur] }

func (l *TextLine) setRanges(ranges [][2]float64) {
	l.ranges = l.ranges[:0]
	for _, r := range ranges {
		l.ranges = append(l.ranges, newLineRange(r[0], r[1]))
	}
	l.cur = 0
}

func (l *TextLine) sameRanges(ranges [][2]float64) bool {
	if len(ranges) != len(l.ranges) {
		return false
	}
	for i, r := range ranges {
		if !floatsEqual(r[0], l.ranges[i].xMin) || !floatsEqual(r[1], l.ranges[i].xMax) {
			return false
		}
	}
	return true
}

// clearForRelayout drops the content but keeps the line top and ranges.
func (l *TextLine) clearForRelayout() {
	for _, r := range l.ranges {
		r.pieces, r.used = nil, 0
	}
	l.cur = 0
	l.end = l.start
	l.ascent, l.descent = 0, 0
	l.topExtra, l.bottomExtra = 0, 0
	l.pieces = nil
}

// update extends the line to end with metrics m and distributes the
// difference between desired and the content height.
func (l *TextLine) update(end Position, m Metrics, desired float64) {
	l.end = end
	l.ascent = max(l.ascent, -m.Ascent)
	l.descent = max(l.descent, m.Descent)
	diff := desired - l.ContentHeight()
	switch l.para.style.VerticalAlign {
	case style.LineAlignTop:
		l.topExtra, l.bottomExtra = 0, diff
	case style.LineAlignBottom:
		l.topExtra, l.bottomExtra = diff, 0
	default:
		l.topExtra, l.bottomExtra = diff/2, diff/2
	}
}

// createPieces rebuilds the visual piece list from the ranges. Justified
// lines split text at word boundaries so that spacing can be spread.
func (l *TextLine) createPieces() {
	l.pieces = l.pieces[:0]
	justify := l.para.style.HorizontalAlign == style.AlignJustify
	for _, rng := range l.ranges {
		for _, pc := range rng.pieces {
			if justify && pc.run.typ == RunText {
				l.splitWords(pc)
				continue
			}
			c := *pc
			l.insert(&c)
		}
	}
}

func (l *TextLine) splitWords(pc *Piece) {
	a := l.para.analyst
	start, end := pc.Start(), pc.End()
	for next := a.FindNextBoundary(start, text.BoundaryWord); next < end; next = a.FindNextBoundary(start, text.BoundaryWord) {
		l.insert(pc.sub(start, next))
		start = next
	}
	if start < end {
		l.insert(pc.sub(start, end))
	}
}

// insert places pc after every piece that does not follow it visually.
func (l *TextLine) insert(pc *Piece) {
	idx := pc.visualIndex()
	i := sort.Search(len(l.pieces), func(i int) bool { return l.pieces[i].visualIndex() > idx })
	l.pieces = append(l.pieces, nil)
	copy(l.pieces[i+1:], l.pieces[i:])
	l.pieces[i] = pc
}

// canJustify reports whether justification applies: not on the last line
// of the paragraph and not before a hard break.
func (l *TextLine) canJustify() bool {
	if l.end.Run >= len(l.para.runs) {
		return false
	}
	return l.para.boundaryBefore(l.end) < text.BoundaryMustLineBreak
}

// offsetSetter is implemented by run delegates that track their position.
// SetOffset receives the left edge of the object and its baseline, both in
// region coordinates.
type offsetSetter interface {
	SetOffset(x, y float64)
}

// applyAlignment sets the x offset and baseline of every piece.
func (l *TextLine) applyAlignment(align style.HorizontalAlign) {
	justify := align == style.AlignJustify && l.canJustify()
	for i := 0; i < len(l.pieces); {
		rng := l.pieces[i].rng
		j := i
		var total float64
		for j < len(l.pieces) && l.pieces[j].rng == rng {
			total += l.pieces[j].Width()
			j++
		}
		x := rng.xMin
		var spacing float64
		rest := max(0, rng.Width()-total)
		switch {
		case align == style.AlignCenter:
			x += rest / 2
		case align == style.AlignRight:
			x += rest
		case justify && j-i > 1:
			spacing = (rng.Width() - total) / float64(j-i-1)
		}
		for ; i < j; i++ {
			pc := l.pieces[i]
			pc.x = x
			pc.y = l.pieceBaseline(pc)
			if os, ok := pc.run.delegate.(offsetSetter); ok {
				os.SetOffset(pc.x, l.top+pc.y)
			}
			x += pc.Width() + spacing
		}
	}
}

// pieceBaseline returns the baseline of pc relative to the line top.
func (l *TextLine) pieceBaseline(pc *Piece) float64 {
	m := pc.run.metrics
	var y float64
	switch pc.run.style.VerticalAlignment() {
	case style.AlignTop:
		y = l.ContentTop() - m.Ascent
	case style.AlignBottom:
		y = l.ContentBottom() - m.Descent
	case style.AlignMiddle:
		y = l.ContentTop() + (l.ContentHeight()-m.Height())/2 - m.Ascent
	default:
		y = l.ContentBaseline()
	}
	return y + pc.run.baselineOffset()
}

// stripByEllipsis truncates the line so that the ellipsis fits at its end
// and inserts it.
func (l *TextLine) stripByEllipsis(sh *text.Shaper) {
	ps := &l.para.style
	if !ps.HasEllipsis() || len(l.pieces) == 0 || len(l.ranges) == 0 {
		return
	}
	if ps.HorizontalAlign != style.AlignLeft {
		l.createPieces()
	}
	var src *Run
	for i := len(l.pieces) - 1; i >= 0; i-- {
		if r := l.pieces[i].run; r.shape.Valid() {
			src = r
			break
		}
	}
	if src == nil {
		return
	}

	c := l.EndChar()
	ell := &Run{para: l.para, start: c, end: c, style: src.style, level: l.para.paraLevel}
	if ps.EllipsisDelegate != nil {
		ell.typ = RunObject
		ell.delegate = ps.EllipsisDelegate
	} else {
		ell.typ = RunGhost
		ell.content = []rune(ps.Ellipsis)
		res := sh.ShapeText(ell.content, ell.style.ShapeStyle(), false)
		ell.shape = text.NewShapePiece(res, 0, res.CharCount())
	}
	ell.layout(sh)

	if l.stripContentByWidth(ell.fullWidth()) {
		pc := &Piece{run: ell, rng: l.ranges[len(l.ranges)-1]}
		if l.isRTL() {
			l.pieces = append([]*Piece{pc}, l.pieces...)
		} else {
			l.pieces = append(l.pieces, pc)
		}
		l.extra = append(l.extra, ell)
	}
	l.applyAlignment(ps.HorizontalAlign)
}

// isRTL reports whether the line reads right to left.
func (l *TextLine) isRTL() bool {
	switch l.para.style.WriteDirection {
	case style.DirectionRTL:
		return true
	case style.DirectionAuto:
		return l.para.paraLevel.IsRTL()
	}
	return false
}

// stripContentByWidth removes content from the visual end of the last
// range until space more is free. It reports whether that succeeded.
func (l *TextLine) stripContentByWidth(space float64) bool {
	rng := l.ranges[len(l.ranges)-1]
	if rng.Width() < space {
		return false
	}
	total := rng.xMin
	for _, pc := range l.pieces {
		if pc.rng == rng {
			total += pc.Width()
		}
	}
	space += total - rng.xMax
	for i := len(l.pieces) - 1; larger(space, 0) && i >= 0; i-- {
		pc := l.pieces[i]
		w := pc.Width()
		if space > w || pc.run.typ != RunText {
			space -= w
			l.pieces = l.pieces[:i]
			continue
		}
		if t := pc.trimTo(w - space); t != nil {
			l.pieces[i] = t
		} else {
			l.pieces = l.pieces[:i]
		}
		space = 0
	}
	return !larger(space, 0)
}

// BoundingRect returns the box covering paragraph characters [start, end)
// on the line in region coordinates. Ranges outside the line collapse to
// the nearest line edge.
func (l *TextLine) BoundingRect(start, end int) text.Rect {
	top, bottom := l.top, l.Bottom()
	lineStart, lineEnd := l.StartChar(), l.EndChar()
	if end <= lineStart || start >= lineEnd || start >= end {
		x := l.Left()
		if start >= lineEnd {
			x = l.Right()
			for i := len(l.pieces) - 1; i >= 0; i-- {
				if pc := l.pieces[i]; !pc.run.isGhost() {
					if pc.IsRTL() {
						x = pc.x
					} else {
						x = pc.x + pc.Width()
					}
					break
				}
			}
		}
		return text.Rect{MinX: x, MinY: top, MaxX: x, MaxY: bottom}
	}

	var rect text.Rect
	found := false
	for _, pc := range l.pieces {
		if pc.run.isGhost() {
			continue
		}
		s, e := max(start, pc.Start()), min(end, pc.End())
		if s >= e {
			continue
		}
		left, right := pc.span(s, e)
		m := pc.run.metrics
		r := text.Rect{
			MinX: pc.x + left,
			MinY: l.top + pc.y + m.Ascent,
			MaxX: pc.x + right,
			MaxY: l.top + pc.y + m.Descent,
		}
		if !found {
			rect, found = r, true
			continue
		}
		rect = rect.Union(r)
	}
	if !found {
		x := l.Left()
		return text.Rect{MinX: x, MinY: top, MaxX: x, MaxY: bottom}
	}
	return rect
}

// CharBoundingRect returns BoundingRect(c, c+1).
func (l *TextLine) CharBoundingRect(c int) text.Rect { return l.BoundingRect(c, c+1) }

// CharPosAtX returns the paragraph character under x. Points between
// pieces snap to the nearer edge; points past the content return the
// caret position at that edge.
func (l *TextLine) CharPosAtX(x float64) int {
	var prev *Piece
	var prevRight float64
	for _, pc := range l.pieces {
		if pc.run.isGhost() {
			continue
		}
		left, right := pc.x, pc.x+pc.Width()
		if largerOrEqual(x, left) && largerOrEqual(right, x) {
			return pc.charAtX(x - left)
		}
		if larger(left, x) {
			if prev == nil || larger(x-prevRight, left-x) {
				return pc.leftChar()
			}
			return prev.rightChar()
		}
		prev, prevRight = pc, right
	}
	if prev != nil {
		return prev.rightChar()
	}
	return l.EndChar()
}
