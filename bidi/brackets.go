package bidi

// Bracket pairing (N0) runs during explicit level resolution. Each isolating
// run keeps its own stack of candidate openings; a closing bracket scans it
// from the top and, on a match, assigns both brackets a strong direction.

const (
	foundL = uint32(1) << L
	foundR = uint32(1) << R
)

// opening is a candidate opening bracket.
type opening struct {
	position   int   // index of the opening bracket
	match      int32 // closing code point, or -position of an unstable closing match, 0 when neutralized
	contextPos int   // index of the last strong char before the opening
	flags      uint32
	contextDir Class // L or R from the last strong char before the opening
}

// isoRun tracks bracket state for one isolating run sequence.
type isoRun struct {
	contextPos int
	start      int // first openings entry of the run
	limit      int // one past the last openings entry
	level      Level
	lastStrong Class
	lastBase   Class
	contextDir Class
}

type bracketData struct {
	openings         []opening
	isoRuns          [MaxExplicitLevel + 2]isoRun
	isoRunLast       int
	isNumbersSpecial bool
}

func (p *Paragraph) bracketInit(bd *bracketData) {
	level := p.paraLevelAt(0)
	bd.isoRunLast = 0
	bd.isoRuns[0] = isoRun{
		level:      level,
		lastStrong: Class(level & 1),
		lastBase:   Class(level & 1),
		contextDir: Class(level & 1),
	}
	bd.openings = bd.openings[:0]
	bd.isNumbersSpecial = p.mode == ReorderNumbersSpecial
}

// bracketProcessB resets the state at a paragraph separator.
func (p *Paragraph) bracketProcessB(bd *bracketData, level Level) {
	bd.isoRunLast = 0
	bd.isoRuns[0].limit = 0
	bd.isoRuns[0].level = level
	bd.isoRuns[0].lastStrong = Class(level & 1)
	bd.isoRuns[0].lastBase = Class(level & 1)
	bd.isoRuns[0].contextDir = Class(level & 1)
	bd.isoRuns[0].contextPos = 0
}

// bracketProcessBoundary handles a level change caused by LRE, LRO, RLE,
// RLO or PDF.
func (p *Paragraph) bracketProcessBoundary(bd *bracketData, lastCcPos int, contextLevel, embeddingLevel Level) {
	run := &bd.isoRuns[bd.isoRunLast]
	if flag(p.dirProps[lastCcPos])&maskISO != 0 {
		return
	}
	if noOverride(embeddingLevel) > noOverride(contextLevel) {
		// not a PDF
		contextLevel = embeddingLevel
	}
	run.limit = run.start
	run.level = embeddingLevel
	run.lastStrong = Class(contextLevel & 1)
	run.lastBase = Class(contextLevel & 1)
	run.contextDir = Class(contextLevel & 1)
	run.contextPos = lastCcPos
}

func (p *Paragraph) bracketProcessLRIRLI(bd *bracketData, level Level) {
	run := &bd.isoRuns[bd.isoRunLast]
	run.lastBase = ON
	lastLimit := run.limit
	bd.isoRunLast++
	run = &bd.isoRuns[bd.isoRunLast]
	*run = isoRun{
		start:      lastLimit,
		limit:      lastLimit,
		level:      level,
		lastStrong: Class(level & 1),
		lastBase:   Class(level & 1),
		contextDir: Class(level & 1),
	}
}

func (p *Paragraph) bracketProcessPDI(bd *bracketData) {
	if bd.isoRunLast > 0 {
		bd.isoRunLast--
	}
	bd.isoRuns[bd.isoRunLast].lastBase = ON
}

// bracketAddOpening records a newly found opening bracket.
func (p *Paragraph) bracketAddOpening(bd *bracketData, match rune, position int) {
	run := &bd.isoRuns[bd.isoRunLast]
	o := opening{
		position:   position,
		match:      match,
		contextDir: run.contextDir,
		contextPos: run.contextPos,
	}
	if run.limit < len(bd.openings) {
		bd.openings[run.limit] = o
	} else {
		bd.openings = append(bd.openings, o)
	}
	run.limit++
}

// fixN0c turns N0c1 into N0c2 for nested pairs when an enclosing bracket
// was assigned the embedding direction.
func (p *Paragraph) fixN0c(bd *bracketData, openingIndex, newPropPosition int, newProp Class) {
	run := &bd.isoRuns[bd.isoRunLast]
	for k := openingIndex + 1; k < run.limit; k++ {
		q := &bd.openings[k]
		if q.match >= 0 {
			// not an N0c match
			continue
		}
		if newPropPosition < q.contextPos {
			break
		}
		if newPropPosition >= q.position {
			continue
		}
		if newProp == q.contextDir {
			break
		}
		openingPosition := q.position
		p.dirProps[openingPosition] = newProp
		closingPosition := int(-q.match)
		p.dirProps[closingPosition] = newProp
		q.match = 0
		p.fixN0c(bd, k, openingPosition, newProp)
		p.fixN0c(bd, k, closingPosition, newProp)
	}
}

// bracketProcessClosing resolves a matched pair. It returns L or R for
// N0b and N0c, and ON for N0d.
func (p *Paragraph) bracketProcessClosing(bd *bracketData, openIdx, position int) Class {
	run := &bd.isoRuns[bd.isoRunLast]
	o := &bd.openings[openIdx]
	direction := Class(run.level & 1)
	stable := true

	var newProp Class
	switch {
	case (direction == L && o.flags&foundL != 0) || (direction == R && o.flags&foundR != 0):
		// N0b
		newProp = direction
	case o.flags&(foundL|foundR) != 0:
		// N0c: the result is final only without an enclosing pair, since
		// later text may change the enclosing pair's direction.
		stable = openIdx == run.start
		if direction != o.contextDir {
			newProp = o.contextDir // N0c1
		} else {
			newProp = direction // N0c2
		}
	default:
		// N0d: forget this pair and anything nested in it
		run.limit = openIdx
		return ON
	}

	p.dirProps[o.position] = newProp
	p.dirProps[position] = newProp
	p.fixN0c(bd, openIdx, o.position, newProp)

	if stable {
		run.limit = openIdx
		// drop lower located synonyms
		for run.limit > run.start && bd.openings[run.limit-1].position == o.position {
			run.limit--
		}
		return newProp
	}

	o.match = int32(-position)
	// neutralize lower located synonyms
	for k := openIdx - 1; k >= run.start && bd.openings[k].position == o.position; k-- {
		bd.openings[k].match = 0
	}
	// neutralize unmatched openings inside the pair, higher synonyms included
	for k := openIdx + 1; k < run.limit; k++ {
		q := &bd.openings[k]
		if q.position >= position {
			break
		}
		if q.match > 0 {
			q.match = 0
		}
	}
	return newProp
}

// bracketProcessChar handles strong characters, digits and bracket
// candidates at position.
func (p *Paragraph) bracketProcessChar(bd *bracketData, position int) {
	run := &bd.isoRuns[bd.isoRunLast]
	dirProp := p.dirProps[position]
	var newProp Class

	if dirProp == ON {
		c := p.text[position]
		for idx := run.limit - 1; idx >= run.start; idx-- {
			if bd.openings[idx].match != c {
				continue
			}
			newProp = p.bracketProcessClosing(bd, idx, position)
			if newProp == ON {
				// N0d: not an opening either
				c = 0
				break
			}
			run.lastBase = ON
			run.contextDir = newProp
			run.contextPos = position
			level := p.levels[position]
			if level&levelOverride != 0 {
				newProp = Class(level & 1)
				run.lastStrong = newProp
				f := flag(newProp)
				for i := run.start; i < idx; i++ {
					bd.openings[i].flags |= f
				}
				// matching brackets are not overridden by LRO/RLO
				p.levels[position] &^= levelOverride
			}
			p.levels[bd.openings[idx].position] &^= levelOverride
			return
		}

		if c != 0 {
			if match, ok := openingBracketMatch(c); ok {
				// U+2329/U+232A and U+3008/U+3009 are canonical equivalents
				switch match {
				case 0x232a:
					p.bracketAddOpening(bd, 0x3009, position)
				case 0x3009:
					p.bracketAddOpening(bd, 0x232a, position)
				}
				p.bracketAddOpening(bd, match, position)
			}
		}
	}

	level := p.levels[position]
	switch {
	case level&levelOverride != 0:
		// X4, X5
		newProp = Class(level & 1)
		if dirProp != S && dirProp != WS && dirProp != ON {
			p.dirProps[position] = newProp
		}
		run.lastBase = newProp
		run.lastStrong = newProp
		run.contextDir = newProp
		run.contextPos = position
	case dirProp <= R || dirProp == AL:
		newProp = dirFromStrong(dirProp)
		run.lastBase = dirProp
		run.lastStrong = dirProp
		run.contextDir = newProp
		run.contextPos = position
	case dirProp == EN:
		run.lastBase = EN
		if run.lastStrong == L {
			newProp = L // W7
			if !bd.isNumbersSpecial {
				p.dirProps[position] = enl
			}
			run.contextDir = L
		} else {
			newProp = R // N0
			if run.lastStrong == AL {
				p.dirProps[position] = AN // W2
			} else {
				p.dirProps[position] = enr
			}
			run.contextDir = R
		}
		run.contextPos = position
	case dirProp == AN:
		newProp = R // N0
		run.lastBase = AN
		run.contextDir = R
		run.contextPos = position
	case dirProp == NSM:
		// an NSM after ON stays ON even if that ON is a bracket resolved
		// to L or R later
		newProp = run.lastBase
		if newProp == ON {
			p.dirProps[position] = newProp
		}
	default:
		newProp = dirProp
		run.lastBase = dirProp
	}

	if newProp <= R || newProp == AL {
		f := flag(dirFromStrong(newProp))
		for i := run.start; i < run.limit; i++ {
			if position > bd.openings[i].position {
				bd.openings[i].flags |= f
			}
		}
	}
}
