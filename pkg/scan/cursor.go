// Package scan provides the cursor primitive shared by the configuration
// and QQL parsers: position tracking, single-rune and literal token
// matching, a configurable whitespace policy, and full backtracking
// through Atomic.
//
// Parsers built on a Cursor follow one discipline: a production that did
// not find its leading token reports soft absence (a typed nil or a false
// ok flag) so the caller can try an alternative; once a production has
// committed past its leading token, any miss is a hard *ParseError that
// propagates to the caller unchanged.
package scan

import "unicode/utf8"

// Cursor holds a source buffer and the current read position.
type Cursor struct {
	source string
	pos    Position

	skip   func(*Cursor)
	inSkip bool
}

// New creates a cursor at the start of source.
func New(source string) *Cursor {
	return &Cursor{source: source, pos: start}
}

// WithWhitespace installs a whitespace hook invoked before every Peek,
// Take, and Expect. The hook is not invoked by the raw rune methods
// (PeekRune, TakeRune), which parsers use inside whitespace-significant
// regions such as string literals.
func (c *Cursor) WithWhitespace(fn func(*Cursor)) *Cursor {
	c.skip = fn
	return c
}

// Source returns the full source buffer.
func (c *Cursor) Source() string {
	return c.source
}

// Pos returns the current position.
func (c *Cursor) Pos() Position {
	return c.pos
}

// Rest returns the unconsumed remainder of the source. Raw: the
// whitespace hook is not invoked.
func (c *Cursor) Rest() string {
	return c.source[c.pos.Offset:]
}

// AtEnd reports whether the cursor has consumed all input, skipping
// whitespace first.
func (c *Cursor) AtEnd() bool {
	c.skipWhitespace()
	return c.pos.Offset >= len(c.source)
}

// Peek reports whether the pattern is next, without consuming it.
func (c *Cursor) Peek(p Pattern) bool {
	c.skipWhitespace()
	return p.match(c.Rest()) >= 0
}

// Take consumes the pattern if it is next and reports whether it did.
// On a miss the position past the whitespace skip is kept but nothing
// else is consumed.
func (c *Cursor) Take(p Pattern) bool {
	c.skipWhitespace()
	n := p.match(c.Rest())
	if n < 0 {
		return false
	}
	c.pos = c.pos.advance(c.source[c.pos.Offset : c.pos.Offset+n])
	return true
}

// Expect consumes the pattern or returns a hard error at the current
// position.
func (c *Cursor) Expect(p Pattern) error {
	if c.Take(p) {
		return nil
	}
	return Errorf(c.pos, "expected %s", p)
}

// PeekRune returns the next rune without consuming it. Raw: no
// whitespace skip.
func (c *Cursor) PeekRune() (rune, bool) {
	if c.pos.Offset >= len(c.source) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.Rest())
	return r, true
}

// TakeRune consumes and returns the next rune. Raw: no whitespace skip.
func (c *Cursor) TakeRune() (rune, bool) {
	if c.pos.Offset >= len(c.source) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.Rest())
	c.pos = c.pos.advance(c.source[c.pos.Offset : c.pos.Offset+size])
	return r, true
}

func (c *Cursor) skipWhitespace() {
	if c.skip == nil || c.inSkip {
		return
	}
	c.inSkip = true
	c.skip(c)
	c.inSkip = false
}

// SkipSpaces is the standard whitespace hook: it consumes consecutive
// ASCII whitespace.
func SkipSpaces(c *Cursor) {
	for {
		r, ok := c.PeekRune()
		if !ok || !isSpace(r) {
			return
		}
		c.TakeRune()
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Atomic runs fn against the cursor; if fn returns an error the position
// is restored to where it was before the call, so the failure consumes
// nothing. This is the sole backtracking primitive: alternation is built
// by composing Atomic with soft-absence returns.
func Atomic[T any](c *Cursor, fn func(c *Cursor) (T, error)) (T, error) {
	saved := c.pos
	v, err := fn(c)
	if err != nil {
		c.pos = saved
	}
	return v, err
}

// SeparatedTerminated parses zero or more items until the terminal
// pattern is in sight, separated by sep with the trailing separator
// optional. The terminal is not consumed.
func SeparatedTerminated[T any](c *Cursor, terminal, sep Pattern, item func() (T, error)) ([]T, error) {
	var out []T
	for !c.AtEnd() && !c.Peek(terminal) {
		v, err := item()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if !c.Take(sep) {
			break
		}
	}
	return out, nil
}

// Separated parses one or more sep-separated items.
func Separated[T any](c *Cursor, sep Pattern, item func() (T, error)) ([]T, error) {
	first, err := item()
	if err != nil {
		return nil, err
	}
	out := []T{first}
	for c.Take(sep) {
		v, err := item()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
