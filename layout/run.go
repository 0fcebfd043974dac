package layout

import (
	"github.com/gogpu/textlayout/bidi"
	"github.com/gogpu/textlayout/style"
	"github.com/gogpu/textlayout/text"
)

// RunType classifies a run.
type RunType uint8

const (
	// RunText is shaped text.
	RunText RunType = iota
	// RunControl holds a hard break sequence. It never has width.
	RunControl
	// RunObject is an inline object measured by a style.RunDelegate. It
	// covers one object replacement character of the paragraph.
	RunObject
	// RunGhost carries its own text and covers no paragraph characters.
	RunGhost
)

var runTypeNames = [...]string{"Text", "Control", "Object", "Ghost"}

func (t RunType) String() string {
	if int(t) < len(runTypeNames) {
		return runTypeNames[t]
	}
	return unknownStr
}

// Run is a maximal range of characters sharing a style, a bidi level and a
// type. Runs are created by Paragraph.Format and stay valid until the
// paragraph changes.
type Run struct {
	para     *Paragraph
	typ      RunType
	start    int
	end      int
	style    style.Style
	level    bidi.Level
	boundary text.BoundaryType
	content  []rune
	delegate style.RunDelegate
	shape    text.ShapePiece
	metrics  Metrics
}

// Type returns the run type.
func (r *Run) Type() RunType { return r.typ }

// Start returns the first paragraph character of the run.
func (r *Run) Start() int { return r.start }

// End returns the paragraph character after the run.
func (r *Run) End() int { return r.end }

// CharCount returns the number of paragraph characters the run covers.
func (r *Run) CharCount() int { return r.end - r.start }

// Style returns the composed character style of the run.
func (r *Run) Style() style.Style { return r.style }

// Level returns the bidi embedding level.
func (r *Run) Level() bidi.Level { return r.level }

// IsRTL reports whether the run is laid out right to left.
func (r *Run) IsRTL() bool { return r.level.IsRTL() }

// Boundary returns the break opportunity after the run.
func (r *Run) Boundary() text.BoundaryType { return r.boundary }

// Shape returns the glyphs of the run. Object runs have no glyphs.
func (r *Run) Shape() text.ShapePiece { return r.shape }

// Delegate returns the object delegate, or nil.
func (r *Run) Delegate() style.RunDelegate { return r.delegate }

// Metrics returns the vertical extent of the run, before line spacing.
func (r *Run) Metrics() Metrics { return r.metrics }

// Text returns the characters of the run. Ghost runs return their own
// content.
func (r *Run) Text() string {
	if r.typ == RunGhost {
		return string(r.content)
	}
	return string(r.para.content[r.start:r.end])
}

func (r *Run) isObject() bool { return r.typ == RunObject }

// isGhost reports whether the run takes space without covering paragraph
// characters. An object without a replacement character counts too.
func (r *Run) isGhost() bool {
	return r.typ == RunGhost || (r.typ == RunObject && r.CharCount() == 0)
}

// width returns the advance of count characters from start, relative to
// the run. Objects and ghosts are measured whole.
func (r *Run) width(start, count int) float64 {
	switch r.typ {
	case RunObject:
		return r.delegate.Advance()
	case RunControl:
		return 0
	case RunGhost:
		return r.fullWidth()
	}
	if count == 0 || !r.shape.Valid() {
		return 0
	}
	return r.shape.MeasureWidth(start, count, r.style.LetterSpacing())
}

func (r *Run) fullWidth() float64 {
	switch r.typ {
	case RunObject:
		return r.delegate.Advance()
	case RunControl:
		return 0
	}
	if !r.shape.Valid() {
		return 0
	}
	return r.shape.MeasureWidth(0, r.shape.CharCount(), r.style.LetterSpacing())
}

// measureByWidth returns how many characters from start fit in maxWidth,
// as a run relative end, and their width.
func (r *Run) measureByWidth(start int, maxWidth float64) (int, float64) {
	n := r.CharCount()
	if r.typ == RunControl || !r.shape.Valid() {
		return n, 0
	}
	spacing := r.style.LetterSpacing()
	var width float64
	prev := -1
	k := start
	for ; k < n; k++ {
		g := r.shape.CharToGlyph(k)
		if g == prev {
			continue
		}
		var w float64
		if adv := r.shape.Advance(g)[0]; adv > 0 {
			w = adv + spacing
		}
		if larger(width+w, maxWidth) {
			break
		}
		width += w
		prev = g
	}
	return k, width
}

// baselineOffset returns the shift of the run baseline, including the
// offset computed for super and subscripts.
func (r *Run) baselineOffset() float64 {
	if r.CharCount() == 0 {
		return r.style.BaselineOffset()
	}
	return r.para.styles.ExtraFloat(style.AttrExtraBaselineOffset, r.start, r.style.BaselineOffset())
}

// layout computes the run metrics from its fonts.
func (r *Run) layout(sh *text.Shaper) {
	if r.typ == RunObject {
		r.metrics = Metrics{Ascent: r.delegate.Ascent(), Descent: r.delegate.Descent()}
		return
	}
	s := r.style
	va := s.VerticalAlignment()
	if va.IsScript() {
		base := r.fontInfo(sh, s.TextSize())
		info := r.fontInfo(sh, s.ScaledTextSize())
		shift := -0.33
		if va == style.AlignSubScript {
			shift = 0.33
		}
		mid := base.Height() * (0.5 + shift)
		offset := mid + (-info.Ascent - info.Height()/2) + base.Ascent
		if r.CharCount() > 0 {
			r.para.styles.SetExtraFloat(style.AttrExtraBaselineOffset, offset, r.start, r.end)
		}
		r.metrics = metricsOf(info)
	} else {
		r.metrics = metricsOf(r.fontInfo(sh, s.ScaledTextSize()))
	}

	if !r.para.style.LineHeightOverride {
		return
	}
	size := s.ScaledTextSize()
	h := r.metrics.Height()
	if floatsEqual(h, 0) {
		return
	}
	if r.para.style.HalfLeading {
		diff := h - size
		r.metrics.Ascent += diff / 2
		r.metrics.Descent -= diff / 2
		return
	}
	r.metrics.ApplyDesiredHeight(size)
}

// fontInfo returns the metrics of the typefaces used by the run at size:
// the first one sets the base, fallbacks can only enlarge it.
func (r *Run) fontInfo(sh *text.Shaper, size float64) text.FontInfo {
	var (
		info  text.FontInfo
		found bool
		last  uint64
	)
	for c := 0; c < r.shape.CharCount(); c++ {
		tf := r.shape.FontByChar(c)
		if tf == nil || (found && tf.ID() == last) {
			continue
		}
		fi := tf.FontInfo(size)
		if !found {
			info, found = fi, true
		} else {
			info.Ascent = min(info.Ascent, fi.Ascent)
			info.Descent = max(info.Descent, fi.Descent)
		}
		last = tf.ID()
	}
	if found {
		return info
	}
	ss := r.style.ShapeStyle()
	ss.Size = size
	return sh.Metrics(ss)
}
