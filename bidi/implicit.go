package bidi

// levState is the implicit resolution state for one level run.
type levState struct {
	table    levelsTable
	startON  int // start of the pending ON sequence
	state    uint8
	runStart int
	runLevel Level
}

// setLevelsOutsideIsolates assigns level to [start, limit) skipping the
// content of nested isolates.
func (p *Paragraph) setLevelsOutsideIsolates(start, limit int, level Level) {
	isolateCount := 0
	for k := start; k < limit; k++ {
		dirProp := p.dirProps[k]
		if dirProp == PDI {
			isolateCount--
		}
		if isolateCount == 0 {
			p.levels[k] = level
		}
		if dirProp == LRI || dirProp == RLI {
			isolateCount++
		}
	}
}

// processPropertySeq feeds one reduced-class sequence [start, limit) to the
// levels state machine and applies the resulting action.
func (p *Paragraph) processPropertySeq(ls *levState, prop uint8, start, limit int) {
	start0 := start
	cell := ls.table[ls.state][prop]
	ls.state = levelsState(cell)
	addLevel := Level(ls.table[ls.state][levelsRes])

	switch levelsAction(cell) {
	case 1:
		ls.startON = start0
	case 2:
		start = ls.startON
	case 3:
		p.setLevelsOutsideIsolates(ls.startON, start0, ls.runLevel+1)
	case 4:
		p.setLevelsOutsideIsolates(ls.startON, start0, ls.runLevel+2)
	}

	if addLevel != 0 || start < start0 {
		level := ls.runLevel + addLevel
		if start >= ls.runStart {
			for k := start; k < limit; k++ {
				p.levels[k] = level
			}
		} else {
			p.setLevelsOutsideIsolates(start, limit, level)
		}
	}
}

// resolveImplicitLevels applies the weak, neutral and implicit rules
// (W1 to I2) to the level run [start, limit) with boundary classes sor and
// eor, each L or R.
func (p *Paragraph) resolveImplicitLevels(start, limit int, sor, eor Class) {
	ls := levState{
		runStart: start,
		runLevel: p.levels[start],
	}
	ls.table = p.impTab[ls.runLevel&1]

	var start1 int
	var stateImp uint8
	if p.dirProps[start] == PDI && p.isolateCount >= 0 && p.isolateCount < len(p.isolates) {
		// resume where the matching isolate initiator left off
		iso := p.isolates[p.isolateCount]
		ls.startON = iso.startON
		start1 = iso.start1
		stateImp = iso.stateImp
		ls.state = iso.state
		p.isolateCount--
	} else {
		ls.startON = -1
		start1 = start
		if p.dirProps[start] == NSM {
			stateImp = 1 + uint8(sor)
		}
		ls.state = 0
		p.processPropertySeq(&ls, uint8(sor), start, start)
	}
	start2 := start

	for i := start; i <= limit; i++ {
		var gprop uint8
		if i >= limit {
			k := limit - 1
			for k > start && flag(p.dirProps[k])&maskBNExplicit != 0 {
				k--
			}
			if dirProp := p.dirProps[k]; dirProp == LRI || dirProp == RLI {
				// no forced closing for a sequence ending with LRI/RLI
				break
			}
			gprop = uint8(eor)
		} else {
			prop := p.dirProps[i]
			if prop == B {
				p.isolateCount = -1
			}
			gprop = groupProp[prop]
		}

		oldStateImp := stateImp
		cell := impTabProps[oldStateImp][gprop]
		stateImp = propsState(cell)
		actionImp := propsAction(cell)
		if i == limit && actionImp == 0 {
			// flush the pending sequence
			actionImp = 1
		}
		if actionImp == 0 {
			continue
		}
		resProp := impTabProps[oldStateImp][propsRes]
		switch actionImp {
		case 1: // process seq1, init new seq1
			p.processPropertySeq(&ls, resProp, start1, i)
			start1 = i
		case 2: // init new seq2
			start2 = i
		case 3: // process seq1 and seq2, init new seq1
			p.processPropertySeq(&ls, resProp, start1, start2)
			p.processPropertySeq(&ls, resON, start2, i)
			start1 = i
		case 4: // process seq1, seq1 = seq2, init new seq2
			p.processPropertySeq(&ls, resProp, start1, start2)
			start1 = start2
			start2 = i
		}
	}

	i := limit - 1
	for i > start && flag(p.dirProps[i])&maskBNExplicit != 0 {
		i--
	}
	if dirProp := p.dirProps[i]; (dirProp == LRI || dirProp == RLI) && limit < p.length {
		// save the state for the matching PDI
		p.isolateCount++
		iso := isolate{
			startON:  ls.startON,
			start1:   start1,
			stateImp: stateImp,
			state:    ls.state,
		}
		if p.isolateCount < len(p.isolates) {
			p.isolates[p.isolateCount] = iso
		} else {
			p.isolates = append(p.isolates, iso)
		}
		return
	}
	p.processPropertySeq(&ls, uint8(eor), limit, limit)
}
