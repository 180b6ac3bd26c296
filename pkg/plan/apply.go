package plan

import "github.com/lattixdb/cyphercore/pkg/frame"

// Apply is a correlated subquery operator. For each outer row,
// InnerFactory builds a fresh inner operator rebound with that row as its
// initial variable context, and Apply concatenates the inner output
// columns onto the outer row.
//
// InnerFactory constructs a new Operator per outer row rather than reusing
// one, because Open may only be called once per Operator's lifecycle
// state machine and each outer row needs its own correlated run.
type Apply struct {
	buffered
	Outer        Operator
	InnerFactory func() Operator
}

func NewApply(outer Operator, innerFactory func() Operator) *Apply {
	return &Apply{Outer: outer, InnerFactory: innerFactory}
}

func (a *Apply) Open(ctx *Context) error {
	if err := a.Outer.Open(ctx); err != nil {
		return err
	}
	outerRows, err := drainAll(a.Outer)
	if err != nil {
		return err
	}
	outerSchema := a.Outer.Schema()

	var rows []frame.Row
	var innerSchema frame.Schema
	haveInnerSchema := false

	for _, outerRow := range outerRows {
		inner := a.InnerFactory()
		innerCtx := &Context{
			Write:  ctx.Write,
			Procs:  ctx.Procs,
			Params: ctx.Params,
			Outer:  rowBindings(outerSchema, outerRow),
		}
		if err := inner.Open(innerCtx); err != nil {
			return err
		}
		if !haveInnerSchema {
			innerSchema = inner.Schema()
			haveInnerSchema = true
		}
		innerRows, err := drainAll(inner)
		if err != nil {
			inner.Close()
			return err
		}
		inner.Close()
		for _, innerRow := range innerRows {
			rows = append(rows, frame.NewRow(append(outerRow.Values(), innerRow.Values()...)...))
		}
	}

	if !haveInnerSchema {
		probe := a.InnerFactory()
		innerSchema = probe.Schema()
	}
	a.schema = outerSchema.Append(innerSchema.Columns()...)
	a.fill(frame.New(a.schema, rows))
	return nil
}
