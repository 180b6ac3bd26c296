package plan

import "github.com/lattixdb/cyphercore/pkg/frame"

// Distinct deduplicates by row value-equality, preserving first-occurrence
// order.
type Distinct struct {
	buffered
	Child Operator
}

func NewDistinct(child Operator) *Distinct {
	d := &Distinct{Child: child}
	d.drains = true
	d.schema = child.Schema()
	return d
}

func (d *Distinct) Open(ctx *Context) error {
	if err := d.Child.Open(ctx); err != nil {
		return err
	}
	rows, err := drainAll(d.Child)
	if err != nil {
		return err
	}
	df := frame.New(d.schema, rows).Distinct()
	d.fill(df)
	return nil
}
