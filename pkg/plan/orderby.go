package plan

import "github.com/lattixdb/cyphercore/pkg/frame"

// OrderBy buffers input then emits in order. Transitions to Draining once
// Child is fully consumed, before any output row is available.
type OrderBy struct {
	buffered
	Child Operator
	Keys  []frame.OrderKey
}

func NewOrderBy(child Operator, keys []frame.OrderKey) *OrderBy {
	o := &OrderBy{Child: child, Keys: keys}
	o.drains = true
	o.schema = child.Schema()
	return o
}

func (o *OrderBy) Open(ctx *Context) error {
	if err := o.Child.Open(ctx); err != nil {
		return err
	}
	rows, err := drainAll(o.Child)
	if err != nil {
		return err
	}
	df, err := frame.New(o.schema, rows).OrderBy(o.Keys, ctx.exprContext(), ctx.Procs)
	if err != nil {
		return err
	}
	o.fill(df)
	return nil
}
