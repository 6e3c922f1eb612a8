package validate

import (
	"fmt"

	"github.com/Molkars/aio/pkg/qql"
)

// ValidateQuery checks a parsed query against a complete model
// registry. The registry must already hold every model the project
// declares; queries validated against a partial registry can fail
// spuriously with unknown-model errors.
func ValidateQuery(registry *Registry, query *qql.Query) error {
	args := make(map[string]struct{}, len(query.Args))
	for _, arg := range query.Args {
		if _, ok := args[arg.Value]; ok {
			return &DuplicateQueryArgumentError{Query: query.Name.Value, Argument: arg.Value}
		}
		args[arg.Value] = struct{}{}
	}

	qc := &queryChecker{
		registry: registry,
		query:    query,
		args:     args,
	}
	// The principal model exists only when the statement has exactly
	// one selector.
	if len(query.Statement.Selectors) == 1 {
		name := query.Statement.Selectors[0].Model.Value
		qc.principal = &name
	}

	if quant, ok := query.Statement.Quantifier.(*qql.QuantifierExpr); ok {
		if err := qc.checkExpr(quant.Expr); err != nil {
			return err
		}
	}
	if query.Statement.Where != nil {
		if err := qc.checkExpr(query.Statement.Where.Expr); err != nil {
			return err
		}
	}
	return nil
}

type queryChecker struct {
	registry  *Registry
	query     *qql.Query
	args      map[string]struct{}
	principal *string
}

func (qc *queryChecker) checkExpr(expr qql.Expr) error {
	switch expr := expr.(type) {
	case *qql.BinaryExpr:
		if err := qc.checkExpr(expr.Left); err != nil {
			return err
		}
		return qc.checkExpr(expr.Right)
	case *qql.UnaryExpr:
		return qc.checkExpr(expr.Expr)
	case *qql.NumberExpr:
		return nil
	case *qql.InterpExpr:
		if _, ok := qc.args[expr.Name.Value]; !ok {
			return &UnknownQueryVariableError{Query: qc.query.Name.Value, Variable: expr.Name.Value}
		}
		return nil
	case *qql.FieldExpr:
		return qc.checkField(expr)
	default:
		return fmt.Errorf("query %s has an unsupported expression node %T", qc.query.Name.Value, expr)
	}
}

func (qc *queryChecker) checkField(expr *qql.FieldExpr) error {
	var model string
	switch {
	case expr.Model != nil:
		model = expr.Model.Value
	case qc.principal != nil:
		model = *qc.principal
	default:
		return &AmbiguousQueryFieldError{Query: qc.query.Name.Value, Field: expr.Field.Value}
	}

	resolved, ok := qc.registry.Get(model)
	if !ok {
		return &UnknownModelError{Query: qc.query.Name.Value, Model: model, Field: expr.Field.Value}
	}
	if !resolved.HasField(expr.Field.Value) {
		return &UnknownFieldError{Query: qc.query.Name.Value, Model: model, Field: expr.Field.Value}
	}
	return nil
}
