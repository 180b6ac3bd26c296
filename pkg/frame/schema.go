// Package frame implements the data frame algebra: a schema paired with a
// row set, and the project/filter/groupBy/orderBy/skip/take/distinct/join
// operations pkg/plan's operators are built on top
// of.
package frame

import "github.com/lattixdb/cyphercore/pkg/types"

// Column is one named, typed slot in a Schema.
type Column struct {
	Name string
	Type types.Type
}

// Schema is an ordered, immutable list of columns. Two data frames with
// the same Schema (by name and type, positionally) carry directly
// comparable rows — this is what Union and the join equality columns rely
// on.
type Schema struct {
	columns []Column
}

// NewSchema builds a Schema from its columns, in the given order.
func NewSchema(columns ...Column) Schema {
	cp := make([]Column, len(columns))
	copy(cp, columns)
	return Schema{columns: cp}
}

// Columns returns the schema's columns in order. The returned slice is a
// copy; mutating it does not affect the Schema.
func (s Schema) Columns() []Column {
	cp := make([]Column, len(s.columns))
	copy(cp, s.columns)
	return cp
}

// Len returns the number of columns.
func (s Schema) Len() int { return len(s.columns) }

// IndexOf returns the position of a column by name, or -1 if absent.
func (s Schema) IndexOf(name string) int {
	for i, c := range s.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the column names in order, matching a Result's
// columns() contract.
func (s Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Append returns a new Schema with additional columns appended. Used by
// operators like Unwind that extend an input schema rather than replacing
// it.
func (s Schema) Append(columns ...Column) Schema {
	merged := make([]Column, 0, len(s.columns)+len(columns))
	merged = append(merged, s.columns...)
	merged = append(merged, columns...)
	return Schema{columns: merged}
}

// EqualNames reports whether two schemas have the same column names and
// types in the same order — the compatibility check Union requires.
func (s Schema) EqualNames(other Schema) bool {
	if len(s.columns) != len(other.columns) {
		return false
	}
	for i, c := range s.columns {
		o := other.columns[i]
		if c.Name != o.Name || !c.Type.Equal(o.Type) {
			return false
		}
	}
	return true
}
