package plan

import (
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
)

// Unwind evaluates Expr to a list for each input row and emits one output
// row per element, extending the schema with (Alias, elementType). A
// non-list value (including Null) unwinds to zero rows, matching Cypher's
// UNWIND semantics for scalars.
type Unwind struct {
	buffered
	Child Operator
	Expr  expr.Expr
	Alias string
}

func NewUnwind(child Operator, e expr.Expr, alias string) *Unwind {
	u := &Unwind{Child: child, Expr: e, Alias: alias}
	elemType := expr.TypeOf(e, schemaEnvOf(child.Schema())).Elem()
	u.schema = child.Schema().Append(frame.Column{Name: alias, Type: elemType})
	return u
}

func (u *Unwind) Open(ctx *Context) error {
	if err := u.Child.Open(ctx); err != nil {
		return err
	}
	childRows, err := drainAll(u.Child)
	if err != nil {
		return err
	}
	rowCtx := ctx.exprContext()

	var rows []frame.Row
	for _, in := range childRows {
		bound := rowCtx.WithVars(rowBindings(u.Child.Schema(), in))
		v, err := expr.Eval(u.Expr, bound, ctx.Procs)
		if err != nil {
			return err
		}
		items, ok := v.AsList()
		if !ok {
			continue
		}
		for _, item := range items {
			rows = append(rows, frame.NewRow(append(in.Values(), item)...))
		}
	}
	u.fill(frame.New(u.schema, rows))
	return nil
}
