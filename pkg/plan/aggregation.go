package plan

import (
	"github.com/lattixdb/cyphercore/pkg/frame"
)

// Aggregation groups and aggregates its child's rows via frame's groupBy.
// With an empty Groupings list and empty input it still emits a single
// row holding each aggregate's empty-input value (e.g. count(*) over
// empty input is Int(0)). Transitions to Draining only once Child has been
// fully consumed, which Open always does since aggregation requires
// seeing every row before any group can be finalized.
type Aggregation struct {
	buffered
	Child        Operator
	Groupings    []frame.ProjectItem
	Aggregations []frame.ProjectItem
}

func NewAggregation(child Operator, groupings, aggregations []frame.ProjectItem) *Aggregation {
	a := &Aggregation{Child: child, Groupings: groupings, Aggregations: aggregations}
	a.drains = true
	cols := make([]frame.ProjectItem, 0, len(groupings)+len(aggregations))
	cols = append(cols, groupings...)
	cols = append(cols, aggregations...)
	a.schema = frame.ProjectSchema(child.Schema(), cols)
	return a
}

func (a *Aggregation) Open(ctx *Context) error {
	if err := a.Child.Open(ctx); err != nil {
		return err
	}
	rows, err := drainAll(a.Child)
	if err != nil {
		return err
	}
	df, err := frame.New(a.Child.Schema(), rows).GroupBy(a.Groupings, a.Aggregations, ctx.exprContext(), ctx.Procs)
	if err != nil {
		return err
	}
	a.schema = df.Schema()
	a.fill(df)
	return nil
}
