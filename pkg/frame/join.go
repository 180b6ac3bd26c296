package frame

import "github.com/lattixdb/cyphercore/pkg/value"

// JoinKind selects Join's matching discipline.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftOuterJoin
)

// Join performs an inner or left-outer equality join on named columns
// present in both frames.
func (df *DataFrame) Join(other *DataFrame, joinColumns []string, kind JoinKind) *DataFrame {
	leftIdx := make([]int, len(joinColumns))
	rightIdx := make([]int, len(joinColumns))
	for i, name := range joinColumns {
		leftIdx[i] = df.schema.IndexOf(name)
		rightIdx[i] = other.schema.IndexOf(name)
	}

	rightByKey := make(map[string][]Row)
	for _, row := range other.rows {
		key := joinKeyOf(row, rightIdx)
		rightByKey[key] = append(rightByKey[key], row)
	}

	outSchema := df.schema.Append(other.schema.Columns()...)
	rightWidth := other.schema.Len()
	nullPad := make([]value.Value, rightWidth)
	for i := range nullPad {
		nullPad[i] = value.Null
	}

	var rows []Row
	for _, lrow := range df.rows {
		key := joinKeyOf(lrow, leftIdx)
		matches := rightByKey[key]
		if len(matches) == 0 {
			if kind == LeftOuterJoin {
				rows = append(rows, NewRow(append(lrow.Values(), nullPad...)...))
			}
			continue
		}
		for _, rrow := range matches {
			rows = append(rows, NewRow(append(lrow.Values(), rrow.Values()...)...))
		}
	}
	return New(outSchema, rows)
}

func joinKeyOf(row Row, idx []int) string {
	values := make([]value.Value, len(idx))
	for i, col := range idx {
		values[i] = row.At(col)
	}
	return rowKey(values)
}
