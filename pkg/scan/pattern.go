package scan

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Pattern is a token matcher: a literal string, a single rune, or a
// character-class predicate. The set is closed; Cursor.Peek, Take, and
// Expect accept any of the three.
type Pattern interface {
	// match reports the byte length of the pattern at the start of s,
	// or -1 when s does not begin with the pattern.
	match(s string) int

	fmt.Stringer
}

// Lit matches a literal string.
type Lit string

func (l Lit) match(s string) int {
	if strings.HasPrefix(s, string(l)) {
		return len(l)
	}
	return -1
}

func (l Lit) String() string {
	return fmt.Sprintf("%q", string(l))
}

// Rune matches a single literal rune.
type Rune rune

func (r Rune) match(s string) int {
	got, size := utf8.DecodeRuneInString(s)
	if size == 0 || got != rune(r) {
		return -1
	}
	return size
}

func (r Rune) String() string {
	return fmt.Sprintf("%q", rune(r))
}

// Class matches any single rune satisfying the predicate.
type Class func(r rune) bool

func (c Class) match(s string) int {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError && size == 1 || !c(r) {
		return -1
	}
	return size
}

func (c Class) String() string {
	return "character class"
}
