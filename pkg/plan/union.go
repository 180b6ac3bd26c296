package plan

import (
	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/frame"
)

// Union requires schemas to match positionally by name and type;
// all=false deduplicates. Union all emits left rows before right,
// preserving each side's own row order.
type Union struct {
	buffered
	Lhs, Rhs Operator
	All      bool
}

func NewUnion(lhs, rhs Operator, all bool) (*Union, error) {
	if !lhs.Schema().EqualNames(rhs.Schema()) {
		return nil, cerr.New("plan.Union", cerr.KindTypeMismatch, "UNION branches must have matching column names and types")
	}
	u := &Union{Lhs: lhs, Rhs: rhs, All: all}
	u.drains = !all
	u.schema = lhs.Schema()
	return u, nil
}

func (u *Union) Open(ctx *Context) error {
	if err := u.Lhs.Open(ctx); err != nil {
		return err
	}
	left, err := drainAll(u.Lhs)
	if err != nil {
		return err
	}
	if err := u.Rhs.Open(ctx); err != nil {
		return err
	}
	right, err := drainAll(u.Rhs)
	if err != nil {
		return err
	}

	rows := make([]frame.Row, 0, len(left)+len(right))
	rows = append(rows, left...)
	rows = append(rows, right...)
	df := frame.New(u.schema, rows)
	if !u.All {
		df = df.Distinct()
	}
	u.fill(df)
	return nil
}
