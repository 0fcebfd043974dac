package layout

const unknownStr = "Unknown"

// Result tells the caller how a Layout call ended.
type Result uint8

const (
	// Normal means the paragraph was laid out completely.
	Normal Result = iota
	// RelayoutPage asks for the whole region to be laid out again.
	RelayoutPage
	// RelayoutLine restarts the current line from its first position.
	RelayoutLine
	// BreakLine ends the current line.
	BreakLine
	// BreakColumn ends the current column.
	BreakColumn
	// BreakPage means the region is full. Call Layout again with a new
	// region to continue.
	BreakPage
)

var resultNames = [...]string{"Normal", "RelayoutPage", "RelayoutLine", "BreakLine", "BreakColumn", "BreakPage"}

// String returns the string representation of the result.
func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return unknownStr
}
