package conf

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Molkars/aio/pkg/scan"
)

// Grammar:
//
//	file   → (ident value)*
//	value  → group | string | int | call | path
//	group  → "{" (ident value)* "}"
//	call   → ident "(" value ("," value)* ","? ")"
//	string → '"' char* '"' | "'" char* "'"   with \n \r \t \\ \' \" \uXXXX escapes
//	int    → [0-9][0-9_]*
//	path   → (".." | "." | "~")? ("/" component)*

// Parser parses configuration source into a value tree bound to a
// Context.
type Parser struct {
	cur *scan.Cursor
	ctx *Context
}

// NewParser creates a parser over source whose groups are bound to ctx.
func NewParser(ctx *Context, source string) *Parser {
	return &Parser{
		ctx: ctx,
		cur: scan.New(source).WithWhitespace(scan.SkipSpaces),
	}
}

// Parse parses a whole configuration file. The top level is an implicit
// group of ident/value pairs with no enclosing braces.
func Parse(ctx *Context, source string) (*Group, error) {
	return NewParser(ctx, source).Parse()
}

// Parse consumes the full input and returns the top-level group.
func (p *Parser) Parse() (*Group, error) {
	out := NewGroup(p.ctx)
	for !p.cur.AtEnd() {
		name, ok := p.parseIdent()
		if !ok {
			return nil, scan.Errorf(p.cur.Pos(), "expected field name")
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		out.set(name.Value, value)
	}
	return out, nil
}

// parseValue parses any value form. Alternatives are tried in order;
// each reports soft absence when its leading token is missing.
func (p *Parser) parseValue() (Value, error) {
	if group, ok, err := p.parseGroup(); err != nil {
		return nil, err
	} else if ok {
		return group, nil
	}
	if str, ok, err := p.parseString(); err != nil {
		return nil, err
	} else if ok {
		return str, nil
	}
	if n, ok, err := p.parseInt(); err != nil {
		return nil, err
	} else if ok {
		return n, nil
	}
	if call, ok, err := p.parseCall(); err != nil {
		return nil, err
	} else if ok {
		return call, nil
	}
	if path, ok, err := p.parsePath(); err != nil {
		return nil, err
	} else if ok {
		return path, nil
	}
	return nil, scan.Errorf(p.cur.Pos(), "expected value: group, string, integer, function, or path")
}

func (p *Parser) parseGroup() (*Group, bool, error) {
	if !p.cur.Take(scan.Rune('{')) {
		return nil, false, nil
	}

	out := NewGroup(p.ctx)
	for !p.cur.AtEnd() && !p.cur.Peek(scan.Rune('}')) {
		name, ok := p.parseIdent()
		if !ok {
			return nil, false, scan.Errorf(p.cur.Pos(), "expected field name")
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, false, err
		}
		out.set(name.Value, value)
	}
	if err := p.cur.Expect(scan.Rune('}')); err != nil {
		return nil, false, err
	}
	return out, true, nil
}

// parseCall parses name(args...). An identifier commits the production:
// a missing "(" is a hard error, since bare identifiers are not values
// in this language.
func (p *Parser) parseCall() (*Call, bool, error) {
	name, ok := p.parseIdent()
	if !ok {
		return nil, false, nil
	}
	if err := p.cur.Expect(scan.Rune('(')); err != nil {
		return nil, false, err
	}
	args, err := scan.SeparatedTerminated(p.cur, scan.Rune(')'), scan.Rune(','), p.parseValue)
	if err != nil {
		return nil, false, err
	}
	if err := p.cur.Expect(scan.Rune(')')); err != nil {
		return nil, false, err
	}
	return &Call{Name: name, Args: args}, true, nil
}

// parseString parses a single- or double-quoted string literal. The
// whitespace hook is suspended inside the literal: only the raw rune
// methods are used between the quotes.
func (p *Parser) parseString() (String, bool, error) {
	var quote rune
	switch {
	case p.cur.Take(scan.Rune('"')):
		quote = '"'
	case p.cur.Take(scan.Rune('\'')):
		quote = '\''
	default:
		return "", false, nil
	}

	var b strings.Builder
	for {
		pos := p.cur.Pos()
		r, ok := p.cur.TakeRune()
		if !ok {
			return "", false, scan.Errorf(pos, "unterminated string")
		}
		if r == quote {
			return String(b.String()), true, nil
		}
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		if err := p.parseEscape(&b, pos); err != nil {
			return "", false, err
		}
	}
}

// parseEscape handles one escape sequence; pos is the backslash
// position, used to span diagnostics over the whole sequence.
func (p *Parser) parseEscape(b *strings.Builder, pos scan.Position) error {
	esc, ok := p.cur.TakeRune()
	if !ok {
		return scan.Errorf(pos, `unterminated string, expected escape character after '\'`)
	}

	switch esc {
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case '\\', '\'', '"':
		b.WriteRune(esc)
	case 'u':
		rest := p.cur.Rest()
		if len(rest) < 4 {
			return scan.ErrorSpanf(pos, 2+len(rest), `expected 4 hex digits after \u`)
		}
		digits := rest[:4]
		code, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return scan.ErrorSpanf(pos, 6, `expected 4 hex digits after \u, instead found %q`, digits)
		}
		r := rune(code)
		if !utf8.ValidRune(r) {
			return scan.ErrorSpanf(pos, 6, "invalid unicode escape: %#04x is not a valid character", code)
		}
		for range 4 {
			p.cur.TakeRune()
		}
		b.WriteRune(r)
	default:
		return scan.ErrorSpanf(pos, 2, "invalid escape character %q", esc)
	}
	return nil
}

// parseInt parses [0-9][0-9_]* with the underscores stripped before the
// radix-10 conversion. Digits are consumed raw so whitespace cannot
// appear inside a literal.
func (p *Parser) parseInt() (Int, bool, error) {
	if !p.cur.Peek(scan.Class(isASCIIDigit)) {
		return 0, false, nil
	}

	begin := p.cur.Pos()
	for {
		r, ok := p.cur.PeekRune()
		if !ok || (!isASCIIDigit(r) && r != '_') {
			break
		}
		p.cur.TakeRune()
	}

	lex := p.cur.Source()[begin.Offset:p.cur.Pos().Offset]
	n, err := strconv.ParseInt(strings.ReplaceAll(lex, "_", ""), 10, 64)
	if err != nil {
		return 0, false, scan.ErrorSpanf(begin, len(lex), "unable to parse number: %v", err)
	}
	return Int(n), true, nil
}

// parseIdent parses a configuration identifier. The leading character
// may be a letter, underscore, or dash; the rest are letters, digits,
// and underscores.
func (p *Parser) parseIdent() (scan.Ident, bool) {
	leading := scan.Class(func(r rune) bool {
		return isASCIILetter(r) || r == '_' || r == '-'
	})
	if !p.cur.Peek(leading) {
		return scan.Ident{}, false
	}

	begin := p.cur.Pos()
	p.cur.TakeRune()
	for {
		r, ok := p.cur.PeekRune()
		if !ok || (!isASCIILetter(r) && !isASCIIDigit(r) && r != '_') {
			break
		}
		p.cur.TakeRune()
	}

	value := p.cur.Source()[begin.Offset:p.cur.Pos().Offset]
	return scan.Ident{Value: value, Pos: begin, Len: len(value)}, true
}

// parsePath parses a bare filesystem path: "..", ".", "~", or a leading
// "/", followed by "/"-separated components. Components are consumed
// raw; a component may contain spaces but may not start with one.
func (p *Parser) parsePath() (Path, bool, error) {
	if !p.cur.Peek(scan.Lit("..")) && !p.cur.Peek(scan.Rune('.')) &&
		!p.cur.Peek(scan.Rune('~')) && !p.cur.Peek(scan.Rune('/')) {
		return "", false, nil
	}

	begin := p.cur.Pos()
	switch {
	case p.cur.Take(scan.Lit("..")):
	case p.cur.Take(scan.Rune('.')):
	case p.cur.Take(scan.Rune('~')):
	}

	for {
		r, ok := p.cur.PeekRune()
		if !ok || r != '/' {
			break
		}
		p.cur.TakeRune()

		r, ok = p.cur.PeekRune()
		if !ok || !isPathStart(r) {
			break
		}
		p.cur.TakeRune()
		for {
			r, ok := p.cur.PeekRune()
			if !ok || !isPathPart(r) {
				break
			}
			p.cur.TakeRune()
		}
	}

	return Path(p.cur.Source()[begin.Offset:p.cur.Pos().Offset]), true, nil
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isPathStart(r rune) bool {
	return isASCIILetter(r) || isASCIIDigit(r) || r == '_' || r == '.'
}

func isPathPart(r rune) bool {
	return isPathStart(r) || r == ' '
}
