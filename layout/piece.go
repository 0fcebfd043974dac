package layout

import "github.com/gogpu/textlayout/text"

// Piece is the part of one run placed on a line. X is relative to the
// region, Y is the baseline relative to the line top.
type Piece struct {
	run   *Run
	rng   *LineRange
	start int // run relative
	end   int
	x, y  float64
}

// Run returns the run the piece belongs to.
func (pc *Piece) Run() *Run { return pc.run }

// Start returns the first paragraph character of the piece.
func (pc *Piece) Start() int { return pc.run.start + pc.start }

// End returns the paragraph character after the piece.
func (pc *Piece) End() int { return pc.run.start + pc.end }

// CharCount returns the number of paragraph characters in the piece.
func (pc *Piece) CharCount() int { return pc.end - pc.start }

// X returns the left edge of the piece.
func (pc *Piece) X() float64 { return pc.x }

// Y returns the baseline of the piece relative to the line top.
func (pc *Piece) Y() float64 { return pc.y }

// Width returns the advance of the piece.
func (pc *Piece) Width() float64 { return pc.run.width(pc.start, pc.end-pc.start) }

// Metrics returns the vertical extent of the piece around its baseline.
func (pc *Piece) Metrics() Metrics { return pc.run.metrics }

// IsRTL reports whether the piece runs right to left.
func (pc *Piece) IsRTL() bool { return pc.run.IsRTL() }

// Shape returns the glyphs of the piece.
func (pc *Piece) Shape() text.ShapePiece {
	if !pc.run.shape.Valid() || pc.run.isGhost() {
		return pc.run.shape
	}
	return pc.run.shape.Slice(pc.start, pc.end)
}

// Text returns the characters of the piece.
func (pc *Piece) Text() string {
	if pc.run.isGhost() {
		return string(pc.run.content)
	}
	return string(pc.run.para.content[pc.Start():pc.End()])
}

// sub returns a piece of the same run covering paragraph characters
// [start, end).
func (pc *Piece) sub(start, end int) *Piece {
	return &Piece{run: pc.run, rng: pc.rng, start: start - pc.run.start, end: end - pc.run.start, x: pc.x, y: pc.y}
}

// visualIndex orders pieces on a line.
func (pc *Piece) visualIndex() int {
	p := pc.run.para
	if pc.CharCount() == 0 {
		return p.visualIndex(pc.Start())
	}
	return min(p.visualIndex(pc.Start()), p.visualIndex(pc.End()-1))
}

// span returns the horizontal extent of paragraph characters [start, end)
// of the piece, relative to its left edge.
func (pc *Piece) span(start, end int) (left, right float64) {
	if pc.run.typ != RunText {
		return 0, pc.Width()
	}
	a := pc.run.width(pc.start, start-pc.Start())
	b := a + pc.run.width(start-pc.run.start, end-start)
	if pc.IsRTL() {
		w := pc.Width()
		return w - b, w - a
	}
	return a, b
}

// charAtX returns the paragraph character under x, relative to the left
// edge of the piece.
func (pc *Piece) charAtX(x float64) int {
	if pc.IsRTL() {
		x = pc.Width() - x
	}
	n := pc.CharCount()
	for k := 1; k < n; k++ {
		if larger(pc.run.width(pc.start, k), x) {
			return pc.Start() + k - 1
		}
	}
	return pc.Start() + max(n-1, 0)
}

// leftChar and rightChar are the caret positions at the piece edges.
func (pc *Piece) leftChar() int {
	if pc.IsRTL() {
		return pc.End()
	}
	return pc.Start()
}

func (pc *Piece) rightChar() int {
	if pc.IsRTL() {
		return pc.Start()
	}
	return pc.End()
}

// trimTo shortens a text piece to at most width, dropping characters from
// its visual right. It returns nil when nothing fits.
func (pc *Piece) trimTo(width float64) *Piece {
	n := pc.CharCount()
	if pc.IsRTL() {
		for k := 0; k < n; k++ {
			if largerOrEqual(width, pc.run.width(pc.start+k, n-k)) {
				return pc.sub(pc.Start()+k, pc.End())
			}
		}
		return nil
	}
	k := 0
	for k < n && largerOrEqual(width, pc.run.width(pc.start, k+1)) {
		k++
	}
	if k == 0 {
		return nil
	}
	return pc.sub(pc.Start(), pc.Start()+k)
}
