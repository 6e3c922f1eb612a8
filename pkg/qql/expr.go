package qql

import "github.com/Molkars/aio/pkg/scan"

// Expression parsing is precedence climbing with descending binding
// strength: or > and > equality > ordering > additive > multiplicative
// > unary > primary.
//
// Each level returns a nil expression without error when the construct
// is simply absent, which can only happen before anything is consumed.
// Once an operator has been taken, a missing right-hand operand is a
// hard error.

// tryExpression parses an expression, or returns nil without error when
// none is next.
func (p *Parser) tryExpression() (Expr, error) {
	return p.parseOr()
}

// parseExpression parses an expression or fails with a hard error.
func (p *Parser) parseExpression() (Expr, error) {
	return p.operand(p.tryExpression())
}

// operand converts the soft absence of a sub-expression into a hard
// error. Used for every position where an expression is required.
func (p *Parser) operand(expr Expr, err error) (Expr, error) {
	if err != nil {
		return nil, err
	}
	if expr == nil {
		return nil, scan.Errorf(p.cur.Pos(), "expected expression")
	}
	return expr, nil
}

func (p *Parser) parseOr() (Expr, error) {
	expr, err := p.parseAnd()
	if err != nil || expr == nil {
		return expr, err
	}
	for p.takeKeywordFold("or") {
		rhs, err := p.operand(p.parseAnd())
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: OpOr, Right: rhs}
	}
	return expr, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	expr, err := p.parseEquality()
	if err != nil || expr == nil {
		return expr, err
	}
	for p.takeKeywordFold("and") {
		rhs, err := p.operand(p.parseEquality())
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: OpAnd, Right: rhs}
	}
	return expr, nil
}

func (p *Parser) parseEquality() (Expr, error) {
	expr, err := p.parseOrdering()
	if err != nil || expr == nil {
		return expr, err
	}
	for {
		var op BinaryOp
		switch {
		case p.cur.Take(scan.Lit("==")):
			op = OpEq
		case p.cur.Take(scan.Lit("!=")):
			op = OpNe
		default:
			return expr, nil
		}
		rhs, err := p.operand(p.parseOrdering())
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: rhs}
	}
}

func (p *Parser) parseOrdering() (Expr, error) {
	expr, err := p.parseAdditive()
	if err != nil || expr == nil {
		return expr, err
	}
	for {
		// Two-rune operators before their one-rune prefixes.
		var op BinaryOp
		switch {
		case p.cur.Take(scan.Lit(">=")):
			op = OpGe
		case p.cur.Take(scan.Rune('>')):
			op = OpGt
		case p.cur.Take(scan.Lit("<=")):
			op = OpLe
		case p.cur.Take(scan.Rune('<')):
			op = OpLt
		default:
			return expr, nil
		}
		rhs, err := p.operand(p.parseAdditive())
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: rhs}
	}
}

func (p *Parser) parseAdditive() (Expr, error) {
	expr, err := p.parseMultiplicative()
	if err != nil || expr == nil {
		return expr, err
	}
	for {
		var op BinaryOp
		switch {
		case p.cur.Take(scan.Rune('+')):
			op = OpAdd
		case p.cur.Take(scan.Rune('-')):
			op = OpSub
		default:
			return expr, nil
		}
		rhs, err := p.operand(p.parseMultiplicative())
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: rhs}
	}
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	expr, err := p.parseUnary()
	if err != nil || expr == nil {
		return expr, err
	}
	for {
		var op BinaryOp
		switch {
		case p.cur.Take(scan.Rune('*')):
			op = OpMul
		case p.cur.Take(scan.Rune('/')):
			op = OpDiv
		case p.cur.Take(scan.Rune('%')):
			op = OpRem
		default:
			return expr, nil
		}
		rhs, err := p.operand(p.parseUnary())
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: rhs}
	}
}

func (p *Parser) parseUnary() (Expr, error) {
	var op UnaryOp
	switch {
	case p.takeKeyword("not"):
		op = OpNot
	case p.cur.Take(scan.Rune('-')):
		op = OpNeg
	default:
		return p.parsePrimary()
	}
	expr, err := p.operand(p.parsePrimary())
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Op: op, Expr: expr}, nil
}

// parsePrimary parses a number literal, a field reference, or an
// argument interpolation. Returns nil without error when none of the
// three is next; callers that have already committed convert that into
// a hard error through operand.
func (p *Parser) parsePrimary() (Expr, error) {
	number, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	if number != nil {
		return &NumberExpr{Value: *number}, nil
	}

	if ident := p.parseIdent(); ident != nil {
		if !p.cur.Take(scan.Rune('.')) {
			return &FieldExpr{Field: *ident}, nil
		}
		field := p.parseIdent()
		if field == nil {
			return nil, scan.Errorf(p.cur.Pos(), "expected field name after model name")
		}
		return &FieldExpr{Model: ident, Field: *field}, nil
	}

	if p.cur.Take(scan.Rune('#')) {
		name := p.parseIdent()
		if name == nil {
			return nil, scan.Errorf(p.cur.Pos(), "expected argument name")
		}
		return &InterpExpr{Name: *name}, nil
	}

	return nil, nil
}
