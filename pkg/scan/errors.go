package scan

import "fmt"

// ParseError represents a parsing error with position information.
// Len is the byte length of the offending span; zero when the error
// points at a single position.
type ParseError struct {
	Message string
	Pos     Position
	Len     int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Errorf builds a ParseError at pos.
func Errorf(pos Position, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// ErrorSpanf builds a ParseError covering length bytes starting at pos.
func ErrorSpanf(pos Position, length int, format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...), Pos: pos, Len: length}
}
