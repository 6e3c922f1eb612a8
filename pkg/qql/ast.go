package qql

import "github.com/Molkars/aio/pkg/scan"

// File is the result of parsing one QQL source file. Models and queries
// are keyed by name text only; a redeclared name overwrites the earlier
// entry.
type File struct {
	Models  map[string]*Model
	Queries map[string]*Query
}

// Model declares a data model and its fields.
type Model struct {
	Name   scan.Ident
	Fields []ModelField
}

// ModelField is one field declaration inside a model.
type ModelField struct {
	Name scan.Ident
	Type FieldType
}

// FieldType names a field's type with an optional integer parameter
// (such as a string length bound) and a nullability marker.
type FieldType struct {
	Name     scan.Ident
	Arg      *uint64
	Optional bool
}

// Query declares a named query with interpolation arguments and a
// single statement.
type Query struct {
	Name      scan.Ident
	Args      []scan.Ident
	Statement Statement
}

// Statement is the body of a query.
type Statement struct {
	Action     Action
	Quantifier Quantifier
	Selectors  []Selector
	Where      *WhereClause
}

// Action is the statement verb.
type Action string

// Statement actions.
const (
	ActionSelect Action = "select"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Quantifier bounds how many rows a statement affects: *QuantifierOne,
// *QuantifierAll, *QuantifierNumber, or *QuantifierExpr.
type Quantifier interface {
	quantifierNode()
}

// QuantifierOne is the literal quantifier "one".
type QuantifierOne struct{}

// QuantifierAll is the literal quantifier "all".
type QuantifierAll struct{}

// QuantifierNumber is a fixed row-count quantifier.
type QuantifierNumber struct {
	Value uint64
}

// QuantifierExpr is a computed quantifier.
type QuantifierExpr struct {
	Expr Expr
}

func (*QuantifierOne) quantifierNode()    {}
func (*QuantifierAll) quantifierNode()    {}
func (*QuantifierNumber) quantifierNode() {}
func (*QuantifierExpr) quantifierNode()   {}

// Selector projects a set of fields out of a model.
type Selector struct {
	Model  scan.Ident
	Fields []scan.Ident
}

// WhereClause is the optional filter expression of a statement.
type WhereClause struct {
	Expr Expr
}

// Expr is a QQL expression node: *BinaryExpr, *UnaryExpr, *NumberExpr,
// *InterpExpr, or *FieldExpr.
type Expr interface {
	exprNode()
}

// BinaryExpr applies an infix operator to two operands.
type BinaryExpr struct {
	Left  Expr
	Op    BinaryOp
	Right Expr
}

// UnaryExpr applies a prefix operator to one operand.
type UnaryExpr struct {
	Op   UnaryOp
	Expr Expr
}

// NumberExpr is an unsigned integer literal.
type NumberExpr struct {
	Value uint64
}

// InterpExpr references a query argument, written #name.
type InterpExpr struct {
	Name scan.Ident
}

// FieldExpr references a model field, optionally qualified by a model
// name. An unqualified reference resolves against the query's principal
// model during validation.
type FieldExpr struct {
	Model *scan.Ident
	Field scan.Ident
}

func (*BinaryExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*NumberExpr) exprNode() {}
func (*InterpExpr) exprNode() {}
func (*FieldExpr) exprNode()  {}

// BinaryOp is an infix operator.
type BinaryOp string

// Binary operators, strongest-binding last.
const (
	OpOr  BinaryOp = "or"
	OpAnd BinaryOp = "and"
	OpEq  BinaryOp = "=="
	OpNe  BinaryOp = "!="
	OpLt  BinaryOp = "<"
	OpLe  BinaryOp = "<="
	OpGt  BinaryOp = ">"
	OpGe  BinaryOp = ">="
	OpAdd BinaryOp = "+"
	OpSub BinaryOp = "-"
	OpMul BinaryOp = "*"
	OpDiv BinaryOp = "/"
	OpRem BinaryOp = "%"
)

// UnaryOp is a prefix operator.
type UnaryOp string

// Unary operators.
const (
	OpNot UnaryOp = "not"
	OpNeg UnaryOp = "-"
)
