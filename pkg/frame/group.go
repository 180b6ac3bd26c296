package frame

import (
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// partition accumulates the per-row contexts and grouping values of one
// GROUP BY bucket, in first-seen order.
type partition struct {
	keyValues []value.Value
	contexts  []*expr.Context
}

// GroupBy partitions rows by the tuple of grouping-expression values using
// value-equality, then for each partition emits one row [grouping
// values..., aggregated values...]. Aggregations
// are evaluated via expr.AggregateEval over the partition's contexts.
//
// An empty groupings list collapses the whole frame into a single
// partition — including when the frame has zero rows, so `count(*)` over
// an empty input still yields Int(0) rather than no rows at all.
func (df *DataFrame) GroupBy(groupings, aggregations []ProjectItem, ctx *expr.Context, procs expr.AggregatingRegistry) (*DataFrame, error) {
	env := schemaEnv{schema: df.schema}
	cols := make([]Column, 0, len(groupings)+len(aggregations))
	for _, g := range groupings {
		cols = append(cols, Column{Name: g.Alias, Type: expr.TypeOf(g.Expr, env)})
	}
	for _, a := range aggregations {
		cols = append(cols, Column{Name: a.Alias, Type: expr.TypeOf(a.Expr, env)})
	}
	out := NewSchema(cols...)

	if len(groupings) == 0 {
		part := &partition{}
		for _, row := range df.rows {
			part.contexts = append(part.contexts, ctx.WithVars(bindings(df.schema, row)))
		}
		row, err := aggregateRow(nil, aggregations, part, procs)
		if err != nil {
			return nil, err
		}
		return New(out, []Row{row}), nil
	}

	order := make([]string, 0)
	partitions := make(map[string]*partition)
	for _, row := range df.rows {
		rowCtx := ctx.WithVars(bindings(df.schema, row))
		keyValues := make([]value.Value, len(groupings))
		for i, g := range groupings {
			v, err := expr.Eval(g.Expr, rowCtx, procs)
			if err != nil {
				return nil, err
			}
			keyValues[i] = v
		}
		k := rowKey(keyValues)
		p, ok := partitions[k]
		if !ok {
			p = &partition{keyValues: keyValues}
			partitions[k] = p
			order = append(order, k)
		}
		p.contexts = append(p.contexts, rowCtx)
	}

	rows := make([]Row, 0, len(order))
	for _, k := range order {
		p := partitions[k]
		row, err := aggregateRow(p.keyValues, aggregations, p, procs)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return New(out, rows), nil
}

func aggregateRow(keyValues []value.Value, aggregations []ProjectItem, part *partition, procs expr.AggregatingRegistry) (Row, error) {
	values := make([]value.Value, 0, len(keyValues)+len(aggregations))
	values = append(values, keyValues...)
	for _, a := range aggregations {
		v, err := expr.AggregateEval(a.Expr, part.contexts, procs)
		if err != nil {
			return Row{}, err
		}
		values = append(values, v)
	}
	return NewRow(values...), nil
}
