package scan

import "fmt"

// Position is a location in a source buffer. Offset is a byte offset;
// Line and Column are 1-based and maintained for diagnostics only.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// start is the position of the first byte of a buffer.
var start = Position{Offset: 0, Line: 1, Column: 1}

// advance returns the position after consuming s.
func (p Position) advance(s string) Position {
	for _, r := range s {
		if r == '\n' {
			p.Line++
			p.Column = 1
		} else {
			p.Column++
		}
	}
	p.Offset += len(s)
	return p
}
