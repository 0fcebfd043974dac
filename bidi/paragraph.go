package bidi

import "fmt"

// Level is an embedding level. Even levels are left-to-right, odd levels
// right-to-left.
type Level uint8

// Paragraph levels and limits.
const (
	// DefaultLTR requests the paragraph level from the first strong
	// character, falling back to 0.
	DefaultLTR Level = 0x7e

	// DefaultRTL requests the paragraph level from the first strong
	// character, falling back to 1.
	DefaultRTL Level = 0x7f

	// MaxExplicitLevel is the deepest level embeddings and isolates reach.
	MaxExplicitLevel Level = 125

	levelOverride Level = 0x80
)

// IsRTL reports whether the level is odd.
func (l Level) IsRTL() bool { return l&1 == 1 }

func isDefaultLevel(l Level) bool { return l&DefaultLTR == DefaultLTR }

func noOverride(l Level) Level { return l &^ levelOverride }

// Direction summarizes the directionality of resolved text.
type Direction uint8

// Direction values.
const (
	LTR Direction = iota
	RTL
	Mixed
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Mixed:
		return "Mixed"
	default:
		return unknownStr
	}
}

// ReorderingMode selects the implicit levels tables.
type ReorderingMode uint8

// Reordering modes.
const (
	// ReorderDefault is the standard UAX#9 algorithm.
	ReorderDefault ReorderingMode = iota

	// ReorderNumbersSpecial keeps numbers adjacent to L text with it.
	ReorderNumbersSpecial

	// ReorderGroupNumbersWithR treats numbers with their R neighbours.
	ReorderGroupNumbersWithR
)

// Paragraph resolves embedding levels for one text buffer.
//
// A Paragraph is reusable: each SetPara call replaces the previous state.
// It is not safe for concurrent use.
type Paragraph struct {
	text   []rune
	length int

	mode               ReorderingMode
	orderParagraphsLTR bool

	paraLevel        Level
	defaultParaLevel Level
	direction        Direction

	dirProps []Class
	levels   []Level

	flags           uint32
	lastArabicPos   int
	trailingWSStart int

	paraLimits []int
	paraLevels []Level

	runs     []run
	runCount int // -1 until the runs are computed

	isolates     []isolate
	isolateCount int

	impTab impTabPair
}

// isolate saves the implicit state at an isolate initiator so the matching
// PDI can resume it.
type isolate struct {
	startON  int
	start1   int
	stateImp uint8
	state    uint8
}

// NewParagraph returns an empty resolver.
func NewParagraph() *Paragraph {
	return &Paragraph{runCount: -1}
}

// SetReorderingMode selects the implicit rule variant used by the next
// SetPara call.
func (p *Paragraph) SetReorderingMode(mode ReorderingMode) { p.mode = mode }

// SetOrderParagraphsLTR makes paragraph separators level 0 so that
// paragraphs are never reordered against each other.
func (p *Paragraph) SetOrderParagraphsLTR(v bool) { p.orderParagraphsLTR = v }

// SetPara resolves text at paragraph level paraLevel.
//
// paraLevel is an explicit level up to MaxExplicitLevel, or DefaultLTR or
// DefaultRTL to detect it from the first strong character. When
// embeddingLevels is non-nil it supplies the explicit levels (with the
// override bit 0x80 allowed) and must be as long as text.
//
// SetPara panics if paraLevel is out of range or embeddingLevels has the
// wrong length. Any text is accepted.
func (p *Paragraph) SetPara(text []rune, paraLevel Level, embeddingLevels []Level) {
	if paraLevel > MaxExplicitLevel && paraLevel != DefaultLTR && paraLevel != DefaultRTL {
		panic(fmt.Sprintf("bidi: paragraph level %d out of range", paraLevel))
	}
	if embeddingLevels != nil && len(embeddingLevels) != len(text) {
		panic(fmt.Sprintf("bidi: %d embedding levels for %d characters", len(embeddingLevels), len(text)))
	}

	p.text = text
	p.length = len(text)
	p.paraLevel = paraLevel
	p.direction = Direction(paraLevel & 1)
	p.dirProps = nil
	p.levels = nil
	p.runs = nil
	p.isolates = nil
	p.isolateCount = 0
	p.paraLimits = p.paraLimits[:0]
	p.paraLevels = p.paraLevels[:0]

	p.defaultParaLevel = 0
	if isDefaultLevel(paraLevel) {
		p.defaultParaLevel = paraLevel
	}

	if p.length == 0 {
		if isDefaultLevel(paraLevel) {
			p.paraLevel &= 1
			p.defaultParaLevel = 0
		}
		p.flags = flagLRFor(p.paraLevel)
		p.runCount = 0
		return
	}

	p.runCount = -1
	p.dirProps = make([]Class, p.length)
	p.getDirProps()
	p.trailingWSStart = p.length

	if embeddingLevels == nil {
		p.levels = make([]Level, p.length)
		p.direction = p.resolveExplicitLevels()
	} else {
		p.levels = append([]Level(nil), embeddingLevels...)
		p.direction = p.checkExplicitLevels()
	}

	if p.isolateCount > 0 {
		p.isolates = make([]isolate, p.isolateCount+3)
	}
	p.isolateCount = -1

	switch p.direction {
	case LTR, RTL:
		// every level is implicitly the paragraph level
		p.trailingWSStart = 0
	default:
		switch p.mode {
		case ReorderNumbersSpecial:
			p.impTab = impTabNumbersSpecial
		case ReorderGroupNumbersWithR:
			p.impTab = impTabGroupNumbersWithR
		default:
			p.impTab = impTabDefault
		}
		p.resolveLevelRuns(embeddingLevels != nil)
		p.adjustWSLevels()
	}
}

// resolveLevelRuns applies the implicit rules to each run of equal
// explicit level (X10).
func (p *Paragraph) resolveLevelRuns(explicit bool) {
	if !explicit && len(p.paraLevels) <= 1 && p.flags&flagMultiRuns == 0 {
		p.resolveImplicitLevels(0, p.length,
			Class(p.paraLevelAt(0)&1), Class(p.paraLevelAt(p.length-1)&1))
		return
	}

	limit := 0
	level := p.paraLevelAt(0)
	nextLevel := p.levels[0]
	var sor, eor Class
	if level < nextLevel {
		eor = Class(nextLevel & 1)
	} else {
		eor = Class(level & 1)
	}

	for {
		start := limit
		level = nextLevel
		if start > 0 && p.dirProps[start-1] == B {
			sor = Class(p.paraLevelAt(start) & 1)
		} else {
			sor = eor
		}

		for limit++; limit < p.length && (p.levels[limit] == level || flag(p.dirProps[limit])&maskBNExplicit != 0); limit++ {
		}

		if limit < p.length {
			nextLevel = p.levels[limit]
		} else {
			nextLevel = p.paraLevelAt(p.length - 1)
		}

		if noOverride(level) < noOverride(nextLevel) {
			eor = Class(nextLevel & 1)
		} else {
			eor = Class(level & 1)
		}

		if level&levelOverride == 0 {
			p.resolveImplicitLevels(start, limit, sor, eor)
		} else {
			for ; start < limit; start++ {
				p.levels[start] &^= levelOverride
			}
		}
		if limit >= p.length {
			break
		}
	}
}

// Scan states while collecting directional properties.
const (
	notSeekingStrong     = 0 // not contextual, not after FSI
	seekingStrongForPara = 1 // looking for the first strong char in the paragraph
	seekingStrongForFSI  = 2 // looking for the first strong char after FSI
	lookingForPDI        = 3 // strong char found after FSI, looking for PDI
)

// getDirProps classifies the text, splits it into paragraphs and resolves
// default paragraph levels and FSI initiators (P2, P3).
func (p *Paragraph) getDirProps() {
	p.flags = 0
	p.lastArabicPos = -1
	isDefault := isDefaultLevel(p.paraLevel)
	defaultParaLevel := p.paraLevel & 1

	var isolateStartStack [MaxExplicitLevel + 1]int
	var previousStateStack [MaxExplicitLevel + 1]uint8
	stackLast := -1

	var state uint8
	if isDefault {
		p.paraLevels = append(p.paraLevels, defaultParaLevel)
		state = seekingStrongForPara
	} else {
		p.paraLevels = append(p.paraLevels, p.paraLevel)
		state = notSeekingStrong
	}

	for i := 0; i < p.length; i++ {
		r := p.text[i]
		dirProp := ClassOf(r)
		p.flags |= flag(dirProp)
		p.dirProps[i] = dirProp
		cur := len(p.paraLevels) - 1

		switch {
		case dirProp == L:
			if state == seekingStrongForPara {
				p.paraLevels[cur] = 0
				state = notSeekingStrong
			} else if state == seekingStrongForFSI {
				if stackLast <= int(MaxExplicitLevel) {
					p.flags |= flag(LRI)
				}
				state = lookingForPDI
			}
		case dirProp == R || dirProp == AL:
			if state == seekingStrongForPara {
				p.paraLevels[cur] = 1
				state = notSeekingStrong
			} else if state == seekingStrongForFSI {
				if stackLast <= int(MaxExplicitLevel) {
					p.dirProps[isolateStartStack[stackLast]] = RLI
					p.flags |= flag(RLI)
				}
				state = lookingForPDI
			}
			if dirProp == AL {
				p.lastArabicPos = i
			}
		case dirProp >= FSI && dirProp <= RLI:
			stackLast++
			if stackLast <= int(MaxExplicitLevel) {
				isolateStartStack[stackLast] = i
				previousStateStack[stackLast] = state
			}
			if dirProp == FSI {
				p.dirProps[i] = LRI // until a strong R or AL shows up
				state = seekingStrongForFSI
			} else {
				state = lookingForPDI
			}
		case dirProp == PDI:
			if state == seekingStrongForFSI && stackLast <= int(MaxExplicitLevel) {
				p.flags |= flag(LRI)
			}
			if stackLast >= 0 {
				if stackLast <= int(MaxExplicitLevel) {
					state = previousStateStack[stackLast]
				}
				stackLast--
			}
		case dirProp == B:
			if i+1 < p.length && r == '\r' && p.text[i+1] == '\n' {
				continue
			}
			if i+1 < p.length {
				p.paraLimits = append(p.paraLimits, i+1)
				if isDefault {
					p.paraLevels = append(p.paraLevels, defaultParaLevel)
					state = seekingStrongForPara
				} else {
					p.paraLevels = append(p.paraLevels, p.paraLevel)
					state = notSeekingStrong
				}
				stackLast = -1
			}
		}
	}
	p.paraLimits = append(p.paraLimits, p.length)

	// ignore still open isolate sequences with overflow
	if stackLast > int(MaxExplicitLevel) {
		stackLast = int(MaxExplicitLevel)
		state = seekingStrongForFSI
	}
	// resolve the direction of still unresolved FSI sequences
	for stackLast >= 0 {
		if state == seekingStrongForFSI {
			p.flags |= flag(LRI)
			break
		}
		state = previousStateStack[stackLast]
		stackLast--
	}

	if isDefault {
		p.paraLevel = p.paraLevels[0]
	}
	// resolve the text direction of default paragraphs with no strong char
	for _, lvl := range p.paraLevels {
		p.flags |= flagLRFor(lvl)
	}
	if p.orderParagraphsLTR && p.flags&flag(B) != 0 {
		p.flags |= flag(L)
	}
}

// paraLevelAt returns the level of the paragraph containing index i.
func (p *Paragraph) paraLevelAt(i int) Level {
	if p.defaultParaLevel == 0 || len(p.paraLimits) == 0 || i < p.paraLimits[0] {
		return p.paraLevel
	}
	k := 1
	for ; k < len(p.paraLimits); k++ {
		if i < p.paraLimits[k] {
			break
		}
	}
	if k >= len(p.paraLimits) {
		k = len(p.paraLimits) - 1
	}
	return p.paraLevels[k]
}

// directionFromFlags determines whether the text can be mixed.
func (p *Paragraph) directionFromFlags() Direction {
	// text with AN and neutrals may turn some neutrals RTL
	if !(p.flags&maskRTL != 0 || (p.flags&flag(AN) != 0 && p.flags&maskPossibleN != 0)) {
		return LTR
	}
	if p.flags&maskLTR == 0 {
		return RTL
	}
	return Mixed
}

// resolveExplicitLevels applies rules X1 to X8 and pairs brackets (N0)
// along the way.
func (p *Paragraph) resolveExplicitLevels() Direction {
	level := p.paraLevelAt(0)
	p.isolateCount = 0

	dirct := p.directionFromFlags()
	if dirct != Mixed {
		return dirct
	}

	if p.flags&(maskExplicit|maskISO) == 0 {
		// no embeddings: every level is the paragraph level, but brackets
		// still need pairing
		var bd bracketData
		p.bracketInit(&bd)
		start := 0
		for k, limit := range p.paraLimits {
			level = p.paraLevels[k]
			for i := start; i < limit; i++ {
				p.levels[i] = level
				dirProp := p.dirProps[i]
				if dirProp == BN {
					continue
				}
				if dirProp == B {
					if i+1 < p.length {
						if p.text[i] == '\r' && p.text[i+1] == '\n' {
							continue
						}
						p.bracketProcessB(&bd, level)
					}
					continue
				}
				p.bracketProcessChar(&bd, i)
			}
			start = limit
		}
		return dirct
	}

	// X1: embeddingLevel and previousLevel may carry the override bit
	embeddingLevel := level
	previousLevel := level
	lastCcPos := 0

	// stack entries are levels, plus isolateFlag for isolate entries
	var stack [MaxExplicitLevel + 2]int
	stackLast := 0
	overflowIsolateCount := 0
	overflowEmbeddingCount := 0
	validIsolateCount := 0
	var bd bracketData
	p.bracketInit(&bd)
	stack[0] = int(level)

	p.flags = 0

	for i := 0; i < p.length; i++ {
		dirProp := p.dirProps[i]
		switch dirProp {
		case LRE, RLE, LRO, RLO:
			// X2 to X5
			p.flags |= flag(BN)
			p.levels[i] = previousLevel
			var newLevel Level
			if dirProp == LRE || dirProp == LRO {
				newLevel = Level((int(embeddingLevel) + 2) &^ int(levelOverride|1))
			} else {
				newLevel = (noOverride(embeddingLevel) + 1) | 1
			}
			if newLevel <= MaxExplicitLevel && overflowIsolateCount == 0 && overflowEmbeddingCount == 0 {
				lastCcPos = i
				embeddingLevel = newLevel
				if dirProp == LRO || dirProp == RLO {
					embeddingLevel |= levelOverride
				}
				stackLast++
				stack[stackLast] = int(embeddingLevel)
			} else if overflowIsolateCount == 0 {
				overflowEmbeddingCount++
			}

		case PDF:
			// X7
			p.flags |= flag(BN)
			p.levels[i] = previousLevel
			if overflowIsolateCount > 0 {
				break
			}
			if overflowEmbeddingCount > 0 {
				overflowEmbeddingCount--
				break
			}
			if stackLast > 0 && stack[stackLast] < isolateFlag {
				lastCcPos = i
				stackLast--
				embeddingLevel = Level(stack[stackLast])
			}

		case LRI, RLI:
			p.flags |= flag(ON) | flagLRFor(embeddingLevel)
			p.levels[i] = noOverride(embeddingLevel)
			if noOverride(embeddingLevel) != noOverride(previousLevel) {
				p.bracketProcessBoundary(&bd, lastCcPos, previousLevel, embeddingLevel)
				p.flags |= flagMultiRuns
			}
			previousLevel = embeddingLevel
			// X5a, X5b
			var newLevel Level
			if dirProp == LRI {
				newLevel = Level((int(embeddingLevel) + 2) &^ int(levelOverride|1))
			} else {
				newLevel = (noOverride(embeddingLevel) + 1) | 1
			}
			if newLevel <= MaxExplicitLevel && overflowIsolateCount == 0 && overflowEmbeddingCount == 0 {
				p.flags |= flag(dirProp)
				lastCcPos = i
				validIsolateCount++
				if validIsolateCount > p.isolateCount {
					p.isolateCount = validIsolateCount
				}
				embeddingLevel = newLevel
				stackLast++
				stack[stackLast] = int(embeddingLevel) + isolateFlag
				p.bracketProcessLRIRLI(&bd, embeddingLevel)
			} else {
				// handled by adjustWSLevels
				p.dirProps[i] = WS
				overflowIsolateCount++
			}

		case PDI:
			if noOverride(embeddingLevel) != noOverride(previousLevel) {
				p.bracketProcessBoundary(&bd, lastCcPos, previousLevel, embeddingLevel)
				p.flags |= flagMultiRuns
			}
			// X6a
			switch {
			case overflowIsolateCount > 0:
				overflowIsolateCount--
				p.dirProps[i] = WS
			case validIsolateCount > 0:
				p.flags |= flag(PDI)
				lastCcPos = i
				overflowEmbeddingCount = 0
				for stack[stackLast] < isolateFlag {
					stackLast--
				}
				stackLast--
				validIsolateCount--
				p.bracketProcessPDI(&bd)
			default:
				p.dirProps[i] = WS
			}
			embeddingLevel = Level(stack[stackLast] &^ isolateFlag)
			p.flags |= flag(ON) | flagLRFor(embeddingLevel)
			previousLevel = embeddingLevel
			p.levels[i] = noOverride(embeddingLevel)

		case B:
			p.flags |= flag(B)
			p.levels[i] = p.paraLevelAt(i)
			if i+1 < p.length {
				if p.text[i] == '\r' && p.text[i+1] == '\n' {
					break
				}
				overflowEmbeddingCount = 0
				overflowIsolateCount = 0
				validIsolateCount = 0
				stackLast = 0
				embeddingLevel = p.paraLevelAt(i + 1)
				previousLevel = embeddingLevel
				stack[0] = int(embeddingLevel)
				p.bracketProcessB(&bd, embeddingLevel)
			}

		case BN:
			// X9: levels are fixed up in adjustWSLevels
			p.levels[i] = previousLevel
			p.flags |= flag(BN)

		default:
			if noOverride(embeddingLevel) != noOverride(previousLevel) {
				p.bracketProcessBoundary(&bd, lastCcPos, previousLevel, embeddingLevel)
				p.flags |= flagMultiRuns
				if embeddingLevel&levelOverride != 0 {
					p.flags |= flagOFor(embeddingLevel)
				} else {
					p.flags |= flagEFor(embeddingLevel)
				}
			}
			previousLevel = embeddingLevel
			p.levels[i] = embeddingLevel
			p.bracketProcessChar(&bd, i)
			// bracket processing may have changed the class
			p.flags |= flag(p.dirProps[i])
		}
	}

	if p.flags&maskEmbedding != 0 {
		p.flags |= flagLRFor(p.paraLevel)
	}
	if p.orderParagraphsLTR && p.flags&flag(B) != 0 {
		p.flags |= flag(L)
	}
	return p.directionFromFlags()
}

// isolateFlag marks isolate entries on the explicit embedding stack.
const isolateFlag = 0x100

// checkExplicitLevels validates caller supplied levels. Level 0 acts as a
// wildcard for the paragraph level; other out of range levels are clamped
// to the paragraph level.
func (p *Paragraph) checkExplicitLevels() Direction {
	p.flags = 0
	p.isolateCount = 0
	isolateCount := 0

	currentParaIndex := 0
	currentParaLimit := p.paraLimits[0]
	currentParaLevel := p.paraLevel

	for i := 0; i < p.length; i++ {
		level := p.levels[i]
		dirProp := p.dirProps[i]
		switch dirProp {
		case LRI, RLI:
			isolateCount++
			if isolateCount > p.isolateCount {
				p.isolateCount = isolateCount
			}
		case PDI:
			isolateCount--
		case B:
			isolateCount = 0
		}

		if p.defaultParaLevel != 0 && i == currentParaLimit && currentParaIndex+1 < len(p.paraLimits) {
			currentParaIndex++
			currentParaLevel = p.paraLevels[currentParaIndex]
			currentParaLimit = p.paraLimits[currentParaIndex]
		}

		overrideFlag := level & levelOverride
		level = noOverride(level)
		if level < currentParaLevel || MaxExplicitLevel < level {
			if level == 0 && dirProp == B {
				continue
			}
			level = currentParaLevel
			p.levels[i] = level | overrideFlag
		}
		if overrideFlag != 0 {
			p.flags |= flagOFor(level)
		} else {
			p.flags |= flagEFor(level) | flag(dirProp)
		}
	}
	if p.flags&maskEmbedding != 0 {
		p.flags |= flagLRFor(p.paraLevel)
	}
	return p.directionFromFlags()
}

// adjustWSLevels resets trailing whitespace and separators to the
// paragraph level (L1) and gives removed controls a neighbouring level (X9).
func (p *Paragraph) adjustWSLevels() {
	if p.flags&maskWS == 0 {
		return
	}
	i := p.trailingWSStart
	for i > 0 {
		// WS/BN before end of paragraph and before B/S take the paragraph level
		for i > 0 {
			i--
			f := flag(p.dirProps[i])
			if f&maskWS == 0 {
				i++
				break
			}
			if p.orderParagraphsLTR && f&flag(B) != 0 {
				p.levels[i] = 0
			} else {
				p.levels[i] = p.paraLevelAt(i)
			}
		}

		// BN take the next character's level until a B/S restarts the loop
		for i > 0 {
			i--
			f := flag(p.dirProps[i])
			if f&maskBNExplicit != 0 {
				p.levels[i] = p.levels[i+1]
			} else if p.orderParagraphsLTR && f&flag(B) != 0 {
				p.levels[i] = 0
				break
			} else if f&maskBS != 0 {
				p.levels[i] = p.paraLevelAt(i)
				break
			}
		}
	}
}

// ParaLevel returns the resolved level of the first paragraph.
func (p *Paragraph) ParaLevel() Level { return p.paraLevel }

// Direction returns LTR or RTL when every character resolved to the same
// direction, Mixed otherwise.
func (p *Paragraph) Direction() Direction { return p.direction }

// Length returns the number of characters processed.
func (p *Paragraph) Length() int { return p.length }

// ParagraphCount returns the number of paragraphs separated by B characters.
func (p *Paragraph) ParagraphCount() int { return len(p.paraLimits) }

// LevelAt returns the resolved level of character i.
func (p *Paragraph) LevelAt(i int) Level {
	if i < 0 || i >= p.length {
		panic(fmt.Sprintf("bidi: index %d out of range [0, %d)", i, p.length))
	}
	if p.direction != Mixed || i >= p.trailingWSStart {
		return p.paraLevelAt(i)
	}
	return p.levels[i]
}

// Levels returns a copy of the resolved levels, one per character.
func (p *Paragraph) Levels() []Level {
	out := make([]Level, p.length)
	for i := range out {
		out[i] = p.LevelAt(i)
	}
	return out
}
