package layout

import "github.com/gogpu/textlayout/text"

// epsilon is the tolerance of layout comparisons.
const epsilon = 1e-4

// MaxUnits bounds region sizes and stands in for unbounded sizes.
const MaxUnits = 1e6

func floatsEqual(a, b float64) bool {
	return a == b || (a-b < epsilon && b-a < epsilon)
}

// larger reports whether a exceeds b by at least epsilon.
func larger(a, b float64) bool { return a != b && a-b >= epsilon }

func largerOrEqual(a, b float64) bool { return floatsEqual(a, b) || larger(a, b) }

// Metrics is the vertical extent of a run or line around its baseline.
// Ascent is negative (above the baseline) and Descent positive.
type Metrics struct {
	Ascent  float64
	Descent float64
}

func metricsOf(info text.FontInfo) Metrics {
	return Metrics{Ascent: info.Ascent, Descent: info.Descent}
}

// Height returns Descent - Ascent.
func (m Metrics) Height() float64 { return m.Descent - m.Ascent }

// UpdateMax grows m to cover o.
func (m *Metrics) UpdateMax(o Metrics) {
	m.Ascent = min(m.Ascent, o.Ascent)
	m.Descent = max(m.Descent, o.Descent)
}

// ApplyBaselineOffset extends m by a baseline shift: positive offsets
// move the content down, negative ones up.
func (m *Metrics) ApplyBaselineOffset(offset float64) {
	if larger(offset, 0) {
		m.Descent += offset
	} else {
		m.Ascent += offset
	}
}

// ApplyDesiredHeight scales m to height h, keeping the ratio of ascent to
// descent. Empty metrics are left alone.
func (m *Metrics) ApplyDesiredHeight(h float64) {
	cur := m.Height()
	if floatsEqual(cur, 0) {
		return
	}
	ratio := h / cur
	m.Ascent *= ratio
	m.Descent *= ratio
}
