package plan

import (
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// OuterApply implements OPTIONAL MATCH's left-outer-join semantics: like
// Apply, InnerFactory builds a fresh correlated inner operator per outer
// row, but an outer row with zero inner matches still survives, its inner
// columns filled with Null rather than being dropped. This is the one
// place OPTIONAL MATCH needs beyond what Apply's inner join already gives
// plain MATCH-MATCH composition.
type OuterApply struct {
	buffered
	Outer        Operator
	InnerFactory func() Operator
}

func NewOuterApply(outer Operator, innerFactory func() Operator) *OuterApply {
	return &OuterApply{Outer: outer, InnerFactory: innerFactory}
}

func (a *OuterApply) Open(ctx *Context) error {
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
		if len(innerRows) == 0 {
			rows = append(rows, frame.NewRow(append(outerRow.Values(), nullRow(inner.Schema().Len())...)...))
			continue
		}
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

func nullRow(n int) []value.Value {
	vals := make([]value.Value, n)
	for i := range vals {
		vals[i] = value.Null
	}
	return vals
}
