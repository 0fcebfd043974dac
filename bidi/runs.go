package bidi

import "fmt"

// run is one directional run in visual order.
type run struct {
	logicalStart int
	visualLimit  int // visual index one past the run
	level        Level
}

// Run describes a directional run.
type Run struct {
	LogicalStart int
	Length       int
	Level        Level
}

// Direction returns LTR or RTL depending on the run level.
func (r Run) Direction() Direction { return Direction(r.Level & 1) }

// computeRuns builds the visual run list on first use.
func (p *Paragraph) computeRuns() {
	if p.runCount >= 0 {
		return
	}
	if p.direction != Mixed {
		p.runs = append(p.runs[:0], run{logicalStart: 0, visualLimit: p.length, level: p.paraLevel})
		p.runCount = 1
		return
	}

	levels := p.levels
	var runs []run
	var maxLevel Level
	minLevel := MaxExplicitLevel + 1
	for i := 0; i < p.length; {
		start := i
		level := levels[i]
		for i++; i < p.length && levels[i] == level; i++ {
		}
		runs = append(runs, run{logicalStart: start, visualLimit: i - start, level: level})
		maxLevel = max(maxLevel, level)
		minLevel = min(minLevel, level)
	}

	reorderRuns(runs, minLevel, maxLevel)

	limit := 0
	for i := range runs {
		limit += runs[i].visualLimit
		runs[i].visualLimit = limit
	}
	p.runs = runs
	p.runCount = len(runs)
}

// reorderRuns applies L2 to runs in logical order.
func reorderRuns(runs []run, minLevel, maxLevel Level) {
	for level := maxLevel; level >= minLevel|1; level-- {
		reverseAtLeast(runs, level)
	}
}

// reverseAtLeast reverses every maximal sequence of runs at level or above.
func reverseAtLeast(runs []run, level Level) {
	for i := 0; i < len(runs); {
		if runs[i].level < level {
			i++
			continue
		}
		j := i + 1
		for j < len(runs) && runs[j].level >= level {
			j++
		}
		reverseRuns(runs[i:j])
		i = j
	}
}

func reverseRuns(runs []run) {
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
}

// CountRuns returns the number of directional runs.
func (p *Paragraph) CountRuns() int {
	p.computeRuns()
	return p.runCount
}

// VisualRun returns the i-th run in visual order.
func (p *Paragraph) VisualRun(i int) Run {
	p.computeRuns()
	if i < 0 || i >= p.runCount {
		panic(fmt.Sprintf("bidi: run index %d out of range [0, %d)", i, p.runCount))
	}
	r := p.runs[i]
	start := 0
	if i > 0 {
		start = p.runs[i-1].visualLimit
	}
	return Run{LogicalStart: r.logicalStart, Length: r.visualLimit - start, Level: r.level}
}

// LogicalRun returns the end of the level run containing logical position
// pos and its level.
func (p *Paragraph) LogicalRun(pos int) (limit int, level Level) {
	if pos < 0 || pos >= p.length {
		panic(fmt.Sprintf("bidi: index %d out of range [0, %d)", pos, p.length))
	}
	level = p.LevelAt(pos)
	for limit = pos + 1; limit < p.length && p.LevelAt(limit) == level; limit++ {
	}
	return limit, level
}

// VisualMap returns, for each visual index, the logical index shown there.
func (p *Paragraph) VisualMap() []int {
	p.computeRuns()
	if p.length == 0 {
		return nil
	}
	m := make([]int, 0, p.length)
	visualStart := 0
	for _, r := range p.runs {
		n := r.visualLimit - visualStart
		if r.level&1 == 0 {
			for k := 0; k < n; k++ {
				m = append(m, r.logicalStart+k)
			}
		} else {
			for k := n - 1; k >= 0; k-- {
				m = append(m, r.logicalStart+k)
			}
		}
		visualStart = r.visualLimit
	}
	return m
}

// LogicalMap returns, for each logical index, its visual index.
func (p *Paragraph) LogicalMap() []int {
	v := p.VisualMap()
	if v == nil {
		return nil
	}
	return invertMap(v)
}

// VisualIndex maps a logical index to its visual index.
func (p *Paragraph) VisualIndex(logical int) int {
	if logical < 0 || logical >= p.length {
		panic(fmt.Sprintf("bidi: index %d out of range [0, %d)", logical, p.length))
	}
	p.computeRuns()
	visualStart := 0
	for _, r := range p.runs {
		n := r.visualLimit - visualStart
		if off := logical - r.logicalStart; off >= 0 && off < n {
			if r.level&1 == 1 {
				return visualStart + n - 1 - off
			}
			return visualStart + off
		}
		visualStart = r.visualLimit
	}
	return -1
}

// LogicalIndex maps a visual index to its logical index.
func (p *Paragraph) LogicalIndex(visual int) int {
	if visual < 0 || visual >= p.length {
		panic(fmt.Sprintf("bidi: index %d out of range [0, %d)", visual, p.length))
	}
	p.computeRuns()
	visualStart := 0
	for _, r := range p.runs {
		if visual < r.visualLimit {
			off := visual - visualStart
			if r.level&1 == 1 {
				return r.logicalStart + (r.visualLimit - visualStart) - 1 - off
			}
			return r.logicalStart + off
		}
		visualStart = r.visualLimit
	}
	return -1
}

// ReorderVisual returns the visual-to-logical map for a sequence of
// levels, such as the levels of one line. It returns nil when a level
// exceeds MaxExplicitLevel+1.
func ReorderVisual(levels []Level) []int {
	if len(levels) == 0 {
		return nil
	}
	minLevel, maxLevel := MaxExplicitLevel+1, Level(0)
	for _, l := range levels {
		if l > MaxExplicitLevel+1 {
			return nil
		}
		minLevel = min(minLevel, l)
		maxLevel = max(maxLevel, l)
	}

	m := make([]int, len(levels))
	for i := range m {
		m[i] = i
	}
	if minLevel == maxLevel && minLevel&1 == 0 {
		return m
	}

	for level := maxLevel; level >= minLevel|1; level-- {
		for i := 0; i < len(m); {
			if levels[m[i]] < level {
				i++
				continue
			}
			j := i + 1
			for j < len(m) && levels[m[j]] >= level {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				m[a], m[b] = m[b], m[a]
			}
			i = j
		}
	}
	return m
}

// ReorderLogical returns the logical-to-visual map for a sequence of
// levels.
func ReorderLogical(levels []Level) []int {
	v := ReorderVisual(levels)
	if v == nil {
		return nil
	}
	return invertMap(v)
}

func invertMap(m []int) []int {
	inv := make([]int, len(m))
	for i, j := range m {
		inv[j] = i
	}
	return inv
}
