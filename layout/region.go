package layout

// SizeMode tells how a region dimension constrains layout.
type SizeMode uint8

const (
	// SizeDefinite is a fixed size.
	SizeDefinite SizeMode = iota
	// SizeIndefinite is unbounded; the size given is ignored.
	SizeIndefinite
	// SizeAtMost is an upper bound.
	SizeAtMost
)

var sizeModeNames = [...]string{"Definite", "Indefinite", "AtMost"}

func (m SizeMode) String() string {
	if int(m) < len(sizeModeNames) {
		return sizeModeNames[m]
	}
	return unknownStr
}

// LineListener observes lines as they are committed to a region. The
// returned Result replaces Normal as the outcome of adding the line, so a
// listener can stop layout or request a relayout.
type LineListener interface {
	OnLineLayouted(r *Region, line int, lastInParagraph bool, availableHeight float64) Result
}

// LineListenerFunc adapts a function to LineListener.
type LineListenerFunc func(r *Region, line int, lastInParagraph bool, availableHeight float64) Result

// OnLineLayouted calls f.
func (f LineListenerFunc) OnLineLayouted(r *Region, line int, lastInParagraph bool, availableHeight float64) Result {
	return f(r, line, lastInParagraph, availableHeight)
}

// RangeProvider supplies the horizontal ranges a line may use, so text can
// flow around floats and other obstacles placed in the region.
type RangeProvider interface {
	// LineRanges returns the [left, right] ranges free for a line of the
	// given height whose top is at top, indents applied, and the top to try
	// next when no range is wide enough. Ranges are in visual order.
	LineRanges(r *Region, top, height, startIndent, endIndent float64) (ranges [][2]float64, nextTop float64)
}

// RangeProviderFunc adapts a function to RangeProvider.
type RangeProviderFunc func(r *Region, top, height, startIndent, endIndent float64) ([][2]float64, float64)

// LineRanges calls f.
func (f RangeProviderFunc) LineRanges(r *Region, top, height, startIndent, endIndent float64) ([][2]float64, float64) {
	return f(r, top, height, startIndent, endIndent)
}

// RegionOption configures a Region.
type RegionOption func(*Region)

// WithLineListener registers l to observe committed lines.
func WithLineListener(l LineListener) RegionOption {
	return func(r *Region) {
		r.listener = l
	}
}

// WithRangeProvider makes lines take their ranges from p instead of the
// full width between the indents.
func WithRangeProvider(p RangeProvider) RegionOption {
	return func(r *Region) {
		r.provider = p
	}
}

// Region is the rectangle lines are placed in, such as a page or a
// column. One region can hold lines of several paragraphs.
type Region struct {
	width, height         float64
	widthMode, heightMode SizeMode
	listener              LineListener
	provider              RangeProvider

	lines          []*TextLine
	paragraphs     []*Paragraph
	layoutedWidth  float64
	layoutedBottom float64
	full           bool
	exceeded       bool
}

func clampUnits(v float64) float64 { return min(max(v, -MaxUnits), MaxUnits) }

// NewRegion returns an empty region. Sizes are clamped to MaxUnits;
// indefinite dimensions use MaxUnits.
func NewRegion(width, height float64, widthMode, heightMode SizeMode, opts ...RegionOption) *Region {
	r := &Region{
		width:      clampUnits(width),
		height:     clampUnits(height),
		widthMode:  widthMode,
		heightMode: heightMode,
	}
	if widthMode == SizeIndefinite {
		r.width = MaxUnits
	}
	if heightMode == SizeIndefinite {
		r.height = MaxUnits
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Width returns the width available to lines.
func (r *Region) Width() float64 { return r.width }

// Height returns the height available to lines.
func (r *Region) Height() float64 { return r.height }

// WidthMode returns the width constraint.
func (r *Region) WidthMode() SizeMode { return r.widthMode }

// HeightMode returns the height constraint.
func (r *Region) HeightMode() SizeMode { return r.heightMode }

// LineCount returns the number of committed lines.
func (r *Region) LineCount() int { return len(r.lines) }

// Line returns line i.
func (r *Region) Line(i int) *TextLine { return r.lines[i] }

// Lines returns the committed lines in order.
func (r *Region) Lines() []*TextLine { return r.lines }

// Paragraphs returns the paragraphs with lines in the region, in order.
func (r *Region) Paragraphs() []*Paragraph { return r.paragraphs }

// IsEmpty reports whether no line was committed.
func (r *Region) IsEmpty() bool { return len(r.lines) == 0 }

// IsFull reports whether layout stopped because the region has no room
// for another line.
func (r *Region) IsFull() bool { return r.full }

// ExceededMaxLines reports whether the line limit of a paragraph cut its
// content short in this region.
func (r *Region) ExceededMaxLines() bool { return r.exceeded }

// LayoutedWidth returns the width of the widest line, indents included.
func (r *Region) LayoutedWidth() float64 { return r.layoutedWidth }

// LayoutedHeight returns the bottom of the last line.
func (r *Region) LayoutedHeight() float64 { return r.layoutedBottom }

// Reset removes all lines so the region can be laid out again.
func (r *Region) Reset() {
	r.lines, r.paragraphs = nil, nil
	r.layoutedWidth, r.layoutedBottom = 0, 0
	r.full, r.exceeded = false, false
}

func (r *Region) lastLine() *TextLine {
	if len(r.lines) == 0 {
		return nil
	}
	return r.lines[len(r.lines)-1]
}

// paragraphLineCount returns how many trailing lines belong to p.
func (r *Region) paragraphLineCount(p *Paragraph) int {
	n := 0
	for i := len(r.lines) - 1; i >= 0 && r.lines[i].para == p; i-- {
		n++
	}
	return n
}

// rangesAt returns the horizontal ranges free for a line of height h at
// top, and the next top to try when they are too narrow. An empty range
// list from the provider leaves the line no room; the next top always
// moves down.
func (r *Region) rangesAt(top, h, startIndent, endIndent float64) ([][2]float64, float64) {
	if r.provider == nil {
		return [][2]float64{{startIndent, r.width - endIndent}}, top + 1
	}
	ranges, next := r.provider.LineRanges(r, top, h, startIndent, endIndent)
	if len(ranges) == 0 {
		ranges = [][2]float64{{startIndent, startIndent}}
	}
	if !larger(next, top) {
		next = top + 1
	}
	return ranges, next
}

func (r *Region) addLine(l *TextLine) Result {
	r.updateLayoutedSize(l)
	if n := len(r.paragraphs); n == 0 || r.paragraphs[n-1] != l.para {
		r.paragraphs = append(r.paragraphs, l.para)
	}
	r.lines = append(r.lines, l)
	if r.listener == nil {
		return Normal
	}
	return r.listener.OnLineLayouted(r, len(r.lines)-1, l.IsLastLineOfParagraph(), r.height-r.layoutedBottom)
}

func (r *Region) updateLayoutedSize(l *TextLine) {
	left := l.Left() - l.startIndent
	right := l.Right() + l.endIndent
	r.layoutedWidth = max(r.layoutedWidth, right-left)
	r.layoutedBottom = max(r.layoutedBottom, l.Bottom())
}
