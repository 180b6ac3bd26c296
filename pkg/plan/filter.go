package plan

import (
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
)

// Filter is a three-valued filter: only Bool(true) rows pass.
type Filter struct {
	buffered
	Child     Operator
	Predicate expr.Expr
}

func NewFilter(child Operator, predicate expr.Expr) *Filter {
	f := &Filter{Child: child, Predicate: predicate}
	f.schema = child.Schema()
	return f
}

func (f *Filter) Open(ctx *Context) error {
	if err := f.Child.Open(ctx); err != nil {
		return err
	}
	rows, err := drainAll(f.Child)
	if err != nil {
		return err
	}
	df, err := frame.New(f.schema, rows).Filter(f.Predicate, ctx.exprContext(), ctx.Procs)
	if err != nil {
		return err
	}
	f.fill(df)
	return nil
}
