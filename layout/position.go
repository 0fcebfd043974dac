package layout

import "fmt"

// Position is a layout cursor: character Char of run Run. The position
// after the last run is {RunCount, 0}.
type Position struct {
	Run  int
	Char int
}

// NextRun returns the start of the following run.
func (p Position) NextRun() Position { return Position{Run: p.Run + 1} }

// Compare returns -1, 0 or 1 as p is before, equal to or after o.
func (p Position) Compare(o Position) int {
	switch {
	case p.Run < o.Run:
		return -1
	case p.Run > o.Run:
		return 1
	case p.Char < o.Char:
		return -1
	case p.Char > o.Char:
		return 1
	}
	return 0
}

// Less reports whether p is before o.
func (p Position) Less(o Position) bool { return p.Compare(o) < 0 }

// String returns "run:char".
func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Run, p.Char) }
