package frame

import "github.com/lattixdb/cyphercore/pkg/value"

// Row is one tuple of values, positionally aligned with a Schema. Rows are
// immutable; every frame operation produces new rows rather than mutating
// existing ones, so a Row can be safely shared across a cached Result and
// whatever produced it.
type Row struct {
	values []value.Value
}

// NewRow builds a Row from values, in schema-column order.
func NewRow(values ...value.Value) Row {
	cp := make([]value.Value, len(values))
	copy(cp, values)
	return Row{values: cp}
}

// At returns the value at a column position.
func (r Row) At(i int) value.Value {
	if i < 0 || i >= len(r.values) {
		return value.Null
	}
	return r.values[i]
}

// Len returns the number of values in the row.
func (r Row) Len() int { return len(r.values) }

// Values returns a copy of the row's values in order.
func (r Row) Values() []value.Value {
	cp := make([]value.Value, len(r.values))
	copy(cp, r.values)
	return cp
}

// bindings turns a Row into a name→value map under a Schema, the shape
// pkg/expr.Context.WithVars expects. Column names double as bound
// variable names — a schema column "n" makes `n` available to Eval the
// same way a MATCH binding would.
func bindings(schema Schema, row Row) map[string]value.Value {
	cols := schema.Columns()
	out := make(map[string]value.Value, len(cols))
	for i, c := range cols {
		out[c.Name] = row.At(i)
	}
	return out
}

// record turns a Row into the name→value map a Result's records()
// iterator yields.
func record(schema Schema, row Row) map[string]value.Value {
	return bindings(schema, row)
}
