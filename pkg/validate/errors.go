package validate

import "fmt"

// DuplicateFieldError reports a model declaring the same field twice.
type DuplicateFieldError struct {
	Model string
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("model %s has a duplicated field %q", e.Model, e.Field)
}

// UnknownFieldTypeError reports a field whose type name is not in the
// type store.
type UnknownFieldTypeError struct {
	Model    string
	Field    string
	TypeName string
}

func (e *UnknownFieldTypeError) Error() string {
	return fmt.Sprintf("%s.%s has unknown type %q", e.Model, e.Field, e.TypeName)
}

// DuplicateQueryArgumentError reports a query declaring the same
// argument name twice.
type DuplicateQueryArgumentError struct {
	Query    string
	Argument string
}

func (e *DuplicateQueryArgumentError) Error() string {
	return fmt.Sprintf("query %s has a duplicate argument %q", e.Query, e.Argument)
}

// UnknownQueryVariableError reports an interpolation referencing a
// variable the query does not declare.
type UnknownQueryVariableError struct {
	Query    string
	Variable string
}

func (e *UnknownQueryVariableError) Error() string {
	return fmt.Sprintf("query %s uses unknown variable %q", e.Query, e.Variable)
}

// AmbiguousQueryFieldError reports an unqualified field reference in a
// query with no principal model.
type AmbiguousQueryFieldError struct {
	Query string
	Field string
}

func (e *AmbiguousQueryFieldError) Error() string {
	return fmt.Sprintf("query %s uses an ambiguous field %s", e.Query, e.Field)
}

// UnknownModelError reports a field reference against a model that is
// not in the registry.
type UnknownModelError struct {
	Query string
	Model string
	Field string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("query %s uses %s.%s, however %q is not a model", e.Query, e.Model, e.Field, e.Model)
}

// UnknownFieldError reports a field reference against a model that has
// no such field.
type UnknownFieldError struct {
	Query string
	Model string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("query %s uses %s.%s, however %s has no field %q", e.Query, e.Model, e.Field, e.Model, e.Field)
}
