package conf

import "fmt"

// ExpectedValueError reports a key that is missing or holds a value of
// the wrong type.
type ExpectedValueError struct {
	Key  string
	Type string
}

func (e *ExpectedValueError) Error() string {
	return fmt.Sprintf("expected %s for key %q", e.Type, e.Key)
}

// UnknownFunctionError reports a call to a function that is not
// registered in the Context.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %q", e.Name)
}

// ArgumentError reports a call with the wrong number of arguments.
type ArgumentError struct {
	Function string
	Issue    string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Function, e.Issue)
}

// ArgumentTypeError reports an argument of the wrong type.
type ArgumentTypeError struct {
	Function string
	Argument string
	Type     string
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("%s: argument %q must be a %s", e.Function, e.Argument, e.Type)
}

// FunctionError reports a failure inside a function handler, carrying
// the underlying message.
type FunctionError struct {
	Function string
	Message  string
}

func (e *FunctionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Function, e.Message)
}
