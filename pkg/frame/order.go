package frame

import (
	"sort"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// OrderKey is one ORDER BY sort term.
type OrderKey struct {
	Expr       expr.Expr
	Descending bool
}

// OrderBy sorts rows under the value type's total order, ties keeping
// prior order (stable). Null sorts last for ASC and first for DESC, and
// mixed-family comparisons (which Compare also reports as "not ok") are
// treated as ties rather than reordered, since only Null has a defined
// rank relative to every other type.
func (df *DataFrame) OrderBy(keys []OrderKey, ctx *expr.Context, procs expr.Registry) (*DataFrame, error) {
	type sortRow struct {
		row  Row
		vals []value.Value
	}

	sorted := make([]sortRow, len(df.rows))
	for i, row := range df.rows {
		rowCtx := ctx.WithVars(bindings(df.schema, row))
		vals := make([]value.Value, len(keys))
		for j, k := range keys {
			v, err := expr.Eval(k.Expr, rowCtx, procs)
			if err != nil {
				return nil, err
			}
			vals[j] = v
		}
		sorted[i] = sortRow{row: row, vals: vals}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		for k := range keys {
			a, b := sorted[i].vals[k], sorted[j].vals[k]
			switch cmp := orderRank(a, b, keys[k].Descending); {
			case cmp < 0:
				return true
			case cmp > 0:
				return false
			}
		}
		return false
	})

	rows := make([]Row, len(sorted))
	for i, sr := range sorted {
		rows[i] = sr.row
	}
	return New(df.schema, rows), nil
}

// orderRank compares a and b for sort purposes, honoring the Null
// placement rule: -1 if a sorts before b, 1 if after, 0 if tied or
// incomparable (kept in prior order by SliceStable).
func orderRank(a, b value.Value, desc bool) int {
	aNull, bNull := a.IsNull(), b.IsNull()
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		if desc {
			return -1
		}
		return 1
	case bNull:
		if desc {
			return 1
		}
		return -1
	}
	ord, ok := value.Compare(a, b)
	if !ok {
		return 0
	}
	if desc {
		ord = -ord
	}
	return int(ord)
}
