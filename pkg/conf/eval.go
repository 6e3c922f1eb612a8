package conf

import (
	"fmt"
	"os"
)

// Eval returns the value for key, resolving a deferred call through the
// owning Context. Non-call values are returned as-is.
func (g *Group) Eval(key string) (Value, error) {
	v, ok := g.entries[key]
	if !ok {
		return nil, &ExpectedValueError{Key: key, Type: "value"}
	}
	if call, ok := v.(*Call); ok {
		return g.ctx.eval(call)
	}
	return v, nil
}

// GetGroup returns the nested group at key. Groups are never the result
// of a call, so no evaluation happens.
func (g *Group) GetGroup(key string) (*Group, error) {
	if sub, ok := g.entries[key].(*Group); ok {
		return sub, nil
	}
	return nil, &ExpectedValueError{Key: key, Type: "group"}
}

// GetString evaluates key and returns it as a string.
func (g *Group) GetString(key string) (string, error) {
	v, err := g.Eval(key)
	if err != nil {
		return "", err
	}
	if s, ok := v.(String); ok {
		return string(s), nil
	}
	return "", &ExpectedValueError{Key: key, Type: "string"}
}

// GetInt evaluates key and returns it as an int64.
func (g *Group) GetInt(key string) (int64, error) {
	v, err := g.Eval(key)
	if err != nil {
		return 0, err
	}
	if n, ok := v.(Int); ok {
		return int64(n), nil
	}
	return 0, &ExpectedValueError{Key: key, Type: "integer"}
}

// GetPath evaluates key and returns it as a path.
func (g *Group) GetPath(key string) (string, error) {
	v, err := g.Eval(key)
	if err != nil {
		return "", err
	}
	if p, ok := v.(Path); ok {
		return string(p), nil
	}
	return "", &ExpectedValueError{Key: key, Type: "path"}
}

// eval resolves a call. Arguments are evaluated eagerly; a handler that
// returns another call is re-dispatched in a loop rather than by
// recursion, so tail chains of any length use constant stack.
func (c *Context) eval(call *Call) (Value, error) {
	for {
		fn, ok := c.functions[call.Name.Value]
		if !ok {
			return nil, &UnknownFunctionError{Name: call.Name.Value}
		}

		args := make([]Value, len(call.Args))
		for i, arg := range call.Args {
			if nested, ok := arg.(*Call); ok {
				v, err := c.eval(nested)
				if err != nil {
					return nil, err
				}
				args[i] = v
			} else {
				args[i] = arg
			}
		}

		v, err := fn.Call(c, args)
		if err != nil {
			return nil, err
		}

		next, ok := v.(*Call)
		if !ok {
			return v, nil
		}
		call = next
	}
}

// envDescriptor names the builtin in error messages.
const envDescriptor = `Env(key, [default-value])`

func registerBuiltins(ctx *Context) {
	// NewContext owns ctx; the name cannot collide.
	_ = ctx.AddFunction("Env", FunctionFunc(envCall))
}

// envCall reads an environment variable. With one argument the variable
// must be set; with two, the second argument is returned when the
// variable is absent.
func envCall(_ *Context, args []Value) (Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, &ArgumentError{
			Function: envDescriptor,
			Issue:    fmt.Sprintf("expected 1 or 2 arguments, instead found %d arguments", len(args)),
		}
	}

	key, ok := args[0].(String)
	if !ok {
		return nil, &ArgumentTypeError{
			Function: envDescriptor,
			Argument: "key",
			Type:     "string",
		}
	}

	value, found := os.LookupEnv(string(key))
	switch {
	case found:
		return String(value), nil
	case len(args) == 2:
		return args[1], nil
	default:
		return nil, &FunctionError{
			Function: envDescriptor,
			Message:  fmt.Sprintf("environment variable %q is not set", string(key)),
		}
	}
}
