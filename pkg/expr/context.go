package expr

import "github.com/lattixdb/cyphercore/pkg/value"

// Context is the immutable per-row evaluation environment. WithVars returns
// a fresh Context layering additional bindings on top of the current ones,
// rather than mutating vars in place, so a Context can be captured by a
// closure (e.g. inside a list comprehension or an aggregation bucket)
// without aliasing surprises.
type Context struct {
	params map[string]value.Value
	vars   map[string]value.Value
}

// NewContext builds the root Context for a query, seeded with its bound
// parameters and no variable bindings.
func NewContext(params map[string]value.Value) *Context {
	if params == nil {
		params = map[string]value.Value{}
	}
	return &Context{params: params, vars: map[string]value.Value{}}
}

// WithVars returns a new Context whose vars is ctx's vars overlaid with
// bindings. Existing bindings with the same name are shadowed.
func (ctx *Context) WithVars(bindings map[string]value.Value) *Context {
	merged := make(map[string]value.Value, len(ctx.vars)+len(bindings))
	for k, v := range ctx.vars {
		merged[k] = v
	}
	for k, v := range bindings {
		merged[k] = v
	}
	return &Context{params: ctx.params, vars: merged}
}

// Var looks up a bound variable.
func (ctx *Context) Var(name string) (value.Value, bool) {
	v, ok := ctx.vars[name]
	return v, ok
}

// Param looks up a bound parameter.
func (ctx *Context) Param(name string) (value.Value, bool) {
	v, ok := ctx.params[name]
	return v, ok
}
