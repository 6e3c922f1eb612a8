// Package qql parses QQL schema and query files.
//
// Grammar (informal):
//
//	file       := (model | query)*
//	model      := 'model' ident '{' (ident ':' field-type),* '}'
//	field-type := ident ('(' number ')')? '?'?
//	query      := 'query' ident '(' ident,* ')' '{' statement '}'
//	statement  := action quantifier selector,+ where?
//	action     := 'select' | 'update' | 'delete'
//	quantifier := 'one' | 'all' | number | expression
//	selector   := ident '(' ident,* ')'
//	where      := 'where' expression
//
// The 'model' and 'query' keywords are case-sensitive; 'select',
// 'update', 'delete', 'one', 'all', 'where', 'and', and 'or' match
// case-insensitively.
package qql

import (
	"strconv"
	"strings"

	"github.com/Molkars/aio/pkg/scan"
)

// Parser is a single-use QQL parser over one source buffer.
type Parser struct {
	cur *scan.Cursor
}

// NewParser creates a parser over source.
func NewParser(source string) *Parser {
	return &Parser{
		cur: scan.New(source).WithWhitespace(scan.SkipSpaces),
	}
}

// Parse parses source as a complete QQL file.
func Parse(source string) (*File, error) {
	return NewParser(source).Parse()
}

// Parse consumes the entire source buffer and returns the parsed file.
// Redeclaring a model or query name overwrites the earlier entry.
func (p *Parser) Parse() (*File, error) {
	file := &File{
		Models:  make(map[string]*Model),
		Queries: make(map[string]*Query),
	}
	for !p.cur.AtEnd() {
		model, err := p.parseModel()
		if err != nil {
			return nil, err
		}
		if model != nil {
			file.Models[model.Name.Value] = model
			continue
		}

		query, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if query != nil {
			file.Queries[query.Name.Value] = query
			continue
		}

		return nil, scan.Errorf(p.cur.Pos(), "expected model or query")
	}
	return file, nil
}

func (p *Parser) parseModel() (*Model, error) {
	if !p.takeKeyword("model") {
		return nil, nil
	}

	name := p.parseIdent()
	if name == nil {
		return nil, scan.Errorf(p.cur.Pos(), "expected model name")
	}

	if err := p.cur.Expect(scan.Rune('{')); err != nil {
		return nil, err
	}
	fields, err := scan.SeparatedTerminated(p.cur, scan.Rune('}'), scan.Rune(','), p.parseModelField)
	if err != nil {
		return nil, err
	}
	if err := p.cur.Expect(scan.Rune('}')); err != nil {
		return nil, err
	}

	return &Model{Name: *name, Fields: fields}, nil
}

func (p *Parser) parseModelField() (ModelField, error) {
	name := p.parseIdent()
	if name == nil {
		return ModelField{}, scan.Errorf(p.cur.Pos(), "expected field name")
	}
	if err := p.cur.Expect(scan.Rune(':')); err != nil {
		return ModelField{}, err
	}
	typ, err := p.parseFieldType()
	if err != nil {
		return ModelField{}, err
	}
	return ModelField{Name: *name, Type: typ}, nil
}

func (p *Parser) parseFieldType() (FieldType, error) {
	name := p.parseIdent()
	if name == nil {
		return FieldType{}, scan.Errorf(p.cur.Pos(), "expected type name")
	}

	var arg *uint64
	if p.cur.Take(scan.Rune('(')) {
		value, err := p.parseNumber()
		if err != nil {
			return FieldType{}, err
		}
		if value == nil {
			return FieldType{}, scan.Errorf(p.cur.Pos(), "expected type argument")
		}
		if err := p.cur.Expect(scan.Rune(')')); err != nil {
			return FieldType{}, err
		}
		arg = value
	}

	optional := p.cur.Take(scan.Rune('?'))

	return FieldType{Name: *name, Arg: arg, Optional: optional}, nil
}

func (p *Parser) parseQuery() (*Query, error) {
	if !p.takeKeyword("query") {
		return nil, nil
	}

	name := p.parseIdent()
	if name == nil {
		return nil, scan.Errorf(p.cur.Pos(), "expected query name")
	}
	if err := p.cur.Expect(scan.Rune('(')); err != nil {
		return nil, err
	}
	args, err := scan.SeparatedTerminated(p.cur, scan.Rune(')'), scan.Rune(','), func() (scan.Ident, error) {
		arg := p.parseIdent()
		if arg == nil {
			return scan.Ident{}, scan.Errorf(p.cur.Pos(), "expected identifier")
		}
		return *arg, nil
	})
	if err != nil {
		return nil, err
	}
	if err := p.cur.Expect(scan.Rune(')')); err != nil {
		return nil, err
	}

	if err := p.cur.Expect(scan.Rune('{')); err != nil {
		return nil, err
	}
	statement, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.cur.Expect(scan.Rune('}')); err != nil {
		return nil, err
	}

	return &Query{Name: *name, Args: args, Statement: statement}, nil
}

func (p *Parser) parseStatement() (Statement, error) {
	action, err := p.parseAction()
	if err != nil {
		return Statement{}, err
	}
	quantifier, err := p.parseQuantifier()
	if err != nil {
		return Statement{}, err
	}
	selectors, err := scan.Separated(p.cur, scan.Rune(','), p.parseSelector)
	if err != nil {
		return Statement{}, err
	}
	where, err := p.parseWhereClause()
	if err != nil {
		return Statement{}, err
	}

	return Statement{
		Action:     action,
		Quantifier: quantifier,
		Selectors:  selectors,
		Where:      where,
	}, nil
}

func (p *Parser) parseAction() (Action, error) {
	ident := p.parseIdent()
	if ident == nil {
		return "", scan.Errorf(p.cur.Pos(), "expected 'select', 'update', or 'delete'")
	}
	switch {
	case strings.EqualFold(ident.Value, "select"):
		return ActionSelect, nil
	case strings.EqualFold(ident.Value, "update"):
		return ActionUpdate, nil
	case strings.EqualFold(ident.Value, "delete"):
		return ActionDelete, nil
	default:
		return "", scan.ErrorSpanf(ident.Pos, ident.Len, "expected 'select', 'update', or 'delete'")
	}
}

func (p *Parser) parseQuantifier() (Quantifier, error) {
	const want = "expected 'ONE', 'ALL', a number, or an expression"

	if ident := p.parseIdent(); ident != nil {
		switch {
		case strings.EqualFold(ident.Value, "one"):
			return &QuantifierOne{}, nil
		case strings.EqualFold(ident.Value, "all"):
			return &QuantifierAll{}, nil
		default:
			return nil, scan.ErrorSpanf(ident.Pos, ident.Len, want)
		}
	}

	number, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	if number != nil {
		return &QuantifierNumber{Value: *number}, nil
	}

	expr, err := p.tryExpression()
	if err != nil {
		return nil, err
	}
	if expr != nil {
		return &QuantifierExpr{Expr: expr}, nil
	}

	return nil, scan.Errorf(p.cur.Pos(), want)
}

func (p *Parser) parseSelector() (Selector, error) {
	name := p.parseIdent()
	if name == nil {
		return Selector{}, scan.Errorf(p.cur.Pos(), "expected model name")
	}

	if err := p.cur.Expect(scan.Rune('(')); err != nil {
		return Selector{}, err
	}
	fields, err := scan.SeparatedTerminated(p.cur, scan.Rune(')'), scan.Rune(','), func() (scan.Ident, error) {
		field := p.parseIdent()
		if field == nil {
			return scan.Ident{}, scan.Errorf(p.cur.Pos(), "expected field name")
		}
		return *field, nil
	})
	if err != nil {
		return Selector{}, err
	}
	if err := p.cur.Expect(scan.Rune(')')); err != nil {
		return Selector{}, err
	}

	return Selector{Model: *name, Fields: fields}, nil
}

func (p *Parser) parseWhereClause() (*WhereClause, error) {
	if !p.takeKeywordFold("where") {
		return nil, nil
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &WhereClause{Expr: expr}, nil
}

// parseNumber parses an unsigned integer literal. Returns nil without
// error when no digit is next.
func (p *Parser) parseNumber() (*uint64, error) {
	if !p.cur.Peek(scan.Class(isASCIIDigit)) {
		return nil, nil
	}
	pos := p.cur.Pos()
	for {
		r, ok := p.cur.PeekRune()
		if !ok || (!isASCIIDigit(r) && r != '_') {
			break
		}
		p.cur.TakeRune()
	}
	end := p.cur.Pos().Offset

	lexeme := strings.ReplaceAll(p.cur.Source()[pos.Offset:end], "_", "")
	value, err := strconv.ParseUint(lexeme, 10, 64)
	if err != nil {
		return nil, scan.ErrorSpanf(pos, end-pos.Offset, "unable to parse number: %v", err)
	}
	return &value, nil
}

// parseIdent parses an identifier, or returns nil when none is next.
// QQL identifiers start with an ASCII letter or underscore.
func (p *Parser) parseIdent() *scan.Ident {
	if !p.cur.Peek(scan.Class(isIdentStart)) {
		return nil
	}
	pos := p.cur.Pos()
	for {
		r, ok := p.cur.PeekRune()
		if !ok || !isIdentPart(r) {
			break
		}
		p.cur.TakeRune()
	}
	end := p.cur.Pos().Offset
	return &scan.Ident{
		Value: p.cur.Source()[pos.Offset:end],
		Pos:   pos,
		Len:   end - pos.Offset,
	}
}

// takeKeyword consumes the identifier word if it is next, matching
// exactly. On a miss nothing is consumed.
func (p *Parser) takeKeyword(word string) bool {
	ok, _ := scan.Atomic(p.cur, func(c *scan.Cursor) (bool, error) {
		ident := p.parseIdent()
		if ident == nil || ident.Value != word {
			return false, scan.Errorf(c.Pos(), "expected keyword %q", word)
		}
		return true, nil
	})
	return ok
}

// takeKeywordFold is takeKeyword with case-insensitive matching.
func (p *Parser) takeKeywordFold(word string) bool {
	ok, _ := scan.Atomic(p.cur, func(c *scan.Cursor) (bool, error) {
		ident := p.parseIdent()
		if ident == nil || !strings.EqualFold(ident.Value, word) {
			return false, scan.Errorf(c.Pos(), "expected keyword %q", word)
		}
		return true, nil
	})
	return ok
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isASCIIDigit(r)
}
