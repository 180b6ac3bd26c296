package frame

import (
	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// DataFrame bundles a Schema with a materialized row set. pkg/plan's
// operators are the pull-based iterators exposed to callers; DataFrame is
// the algebra layer underneath them, and is materialized because every
// operation here (grouping, ordering, distinct, join) needs random access
// or a full scan
// of its input regardless, so nothing is lost by not streaming at this
// layer.
type DataFrame struct {
	schema Schema
	rows   []Row
}

// New builds a DataFrame from a schema and rows. Rows are not
// validated against the schema's arity — callers (pkg/plan operators)
// are expected to produce well-formed rows.
func New(schema Schema, rows []Row) *DataFrame {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return &DataFrame{schema: schema, rows: cp}
}

// Schema returns the frame's schema.
func (df *DataFrame) Schema() Schema { return df.schema }

// Rows returns a copy of the frame's rows.
func (df *DataFrame) Rows() []Row {
	cp := make([]Row, len(df.rows))
	copy(cp, df.rows)
	return cp
}

// Len returns the number of rows.
func (df *DataFrame) Len() int { return len(df.rows) }

// ProjectItem is one output column of a Project/GroupBy: an expression
// evaluated per row (or per group), bound to an output name.
type ProjectItem struct {
	Alias string
	Expr  expr.Expr
}

// ProjectSchema computes the output schema of a Project over childSchema
// without evaluating any rows, so a planner can know an operator's schema
// before Open runs.
func ProjectSchema(childSchema Schema, items []ProjectItem) Schema {
	env := schemaEnv{schema: childSchema}
	cols := make([]Column, len(items))
	for i, item := range items {
		cols[i] = Column{Name: item.Alias, Type: expr.TypeOf(item.Expr, env)}
	}
	return NewSchema(cols...)
}

// Project builds a new schema from the declared aliases and inferred
// types, and one output row per input row with each column evaluated via
// expr.Eval.
func (df *DataFrame) Project(items []ProjectItem, ctx *expr.Context, procs expr.Registry) (*DataFrame, error) {
	out := ProjectSchema(df.schema, items)

	rows := make([]Row, 0, len(df.rows))
	for _, row := range df.rows {
		rowCtx := ctx.WithVars(bindings(df.schema, row))
		values := make([]value.Value, len(items))
		for i, item := range items {
			v, err := expr.Eval(item.Expr, rowCtx, procs)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		rows = append(rows, NewRow(values...))
	}
	return New(out, rows), nil
}

// Filter keeps rows where eval(pred) is Bool(true); Null and Bool(false)
// are both dropped.
func (df *DataFrame) Filter(pred expr.Expr, ctx *expr.Context, procs expr.Registry) (*DataFrame, error) {
	rows := make([]Row, 0, len(df.rows))
	for _, row := range df.rows {
		rowCtx := ctx.WithVars(bindings(df.schema, row))
		v, err := expr.Eval(pred, rowCtx, procs)
		if err != nil {
			return nil, err
		}
		if b, ok := v.AsBool(); ok && b {
			rows = append(rows, row)
		}
	}
	return New(df.schema, rows), nil
}

// Skip drops the first n rows. Negative n fails with InvalidArgument.
func (df *DataFrame) Skip(n int) (*DataFrame, error) {
	if n < 0 {
		return nil, cerr.New("frame.skip", cerr.KindInvalidArgument, "skip count must not be negative")
	}
	if n >= len(df.rows) {
		return New(df.schema, nil), nil
	}
	return New(df.schema, df.rows[n:]), nil
}

// Take keeps at most n rows. Negative n fails with InvalidArgument.
func (df *DataFrame) Take(n int) (*DataFrame, error) {
	if n < 0 {
		return nil, cerr.New("frame.take", cerr.KindInvalidArgument, "take count must not be negative")
	}
	if n >= len(df.rows) {
		return New(df.schema, df.rows), nil
	}
	return New(df.schema, df.rows[:n]), nil
}

// Distinct deduplicates by row value-equality, preserving first-occurrence
// order.
func (df *DataFrame) Distinct() *DataFrame {
	seen := make(map[string]bool, len(df.rows))
	rows := make([]Row, 0, len(df.rows))
	for _, row := range df.rows {
		k := rowKey(row.Values())
		if seen[k] {
			continue
		}
		seen[k] = true
		rows = append(rows, row)
	}
	return New(df.schema, rows)
}
