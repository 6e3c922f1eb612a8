package conf

import "fmt"

// Function is a built-in callable registered in a Context. Arguments
// arrive eagerly evaluated: nested calls have already been resolved to
// plain values.
type Function interface {
	Call(ctx *Context, args []Value) (Value, error)
}

// FunctionFunc adapts a plain function to the Function interface.
type FunctionFunc func(ctx *Context, args []Value) (Value, error)

func (f FunctionFunc) Call(ctx *Context, args []Value) (Value, error) {
	return f(ctx, args)
}

// Context is the registry of named built-in functions available to a
// parse session. Build it once, register any host functions, then treat
// it as read-only: it is shared by every Group produced from the parse
// and is only safe for concurrent use while immutable.
type Context struct {
	functions map[string]Function
}

// NewContext creates a context with the standard built-ins (Env).
func NewContext() *Context {
	ctx := NewEmptyContext()
	registerBuiltins(ctx)
	return ctx
}

// NewEmptyContext creates a context with no functions registered.
func NewEmptyContext() *Context {
	return &Context{functions: make(map[string]Function)}
}

// AddFunction registers fn under name. Registering the same name twice
// is an error.
func (c *Context) AddFunction(name string, fn Function) error {
	if _, ok := c.functions[name]; ok {
		return fmt.Errorf("function %q already exists", name)
	}
	c.functions[name] = fn
	return nil
}

// Function returns the registered function for name.
func (c *Context) Function(name string) (Function, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}
