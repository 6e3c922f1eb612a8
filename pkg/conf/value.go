// Package conf implements the project configuration language: nested
// key/value groups whose values may be strings, integers, filesystem
// paths, nested groups, or deferred function calls such as Env("HOME").
// Calls are kept unevaluated in the value tree and resolved on demand
// through a Context (see eval.go).
package conf

import (
	"sort"

	"github.com/Molkars/aio/pkg/scan"
)

// Value is a configuration value: *Group, *Call, String, Int, or Path.
type Value interface {
	valueNode()
}

// String is a quoted string literal after escape processing.
type String string

func (String) valueNode() {}

// Int is a decimal integer literal.
type Int int64

func (Int) valueNode() {}

// Path is a filesystem path literal such as ./models or /var/data.
type Path string

func (Path) valueNode() {}

// Call is a deferred function call. It is not evaluated at parse time;
// Group.Eval resolves it against the owning Context.
type Call struct {
	Name scan.Ident
	Args []Value
}

func (*Call) valueNode() {}

// Group is a mapping from key to Value. Duplicate keys within a group
// overwrite: the last entry wins. The group keeps a plain reference to
// the Context it was parsed with so contained calls can be evaluated;
// the Context must be treated as read-only once parsing begins.
type Group struct {
	ctx     *Context
	entries map[string]Value
}

func (*Group) valueNode() {}

// NewGroup creates an empty group bound to ctx.
func NewGroup(ctx *Context) *Group {
	return &Group{ctx: ctx, entries: make(map[string]Value)}
}

// Len returns the number of entries.
func (g *Group) Len() int {
	return len(g.entries)
}

// Keys returns the group's keys in sorted order.
func (g *Group) Keys() []string {
	keys := make([]string, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the raw, unevaluated value for key.
func (g *Group) Get(key string) (Value, bool) {
	v, ok := g.entries[key]
	return v, ok
}

func (g *Group) set(key string, v Value) {
	g.entries[key] = v
}
