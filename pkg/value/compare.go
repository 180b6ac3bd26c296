package value

import "cmp"

// Ordering is the result of comparing two values within a comparable
// family. Values from different families have no Ordering: Compare
// reports ok=false for them, and mixed-family comparisons yield Null.
type Ordering int

const (
	OrderLess Ordering = -1
	OrderEqual Ordering = 0
	OrderGreater Ordering = 1
)

// Equal compares two values: numeric cross-comparisons compare by numeric
// value, strings/booleans compare structurally, lists/maps compare
// elementwise, nodes/relationships compare by id, and any
// comparison touching Null returns (false, false) — ok=false signals "the
// answer is Null", not "not equal".
func Equal(a, b Value) (result bool, ok bool) {
	if a.IsNull() || b.IsNull() {
		return false, false
	}

	switch {
	case a.IsNumeric() && b.IsNumeric():
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return af == bf, true

	case a.kind == KindBool && b.kind == KindBool:
		return a.b == b.b, true

	case a.kind == KindString && b.kind == KindString:
		return a.s == b.s, true

	case a.kind == KindList && b.kind == KindList:
		if len(a.list) != len(b.list) {
			return false, true
		}
		anyNull := false
		for i := range a.list {
			eq, eok := Equal(a.list[i], b.list[i])
			if !eok {
				anyNull = true
				continue
			}
			if !eq {
				return false, true
			}
		}
		if anyNull {
			return false, false
		}
		return true, true

	case a.kind == KindMap && b.kind == KindMap:
		if a.m.Len() != b.m.Len() {
			return false, true
		}
		anyNull := false
		for _, k := range a.m.Keys() {
			bv, exists := b.m.Get(k)
			if !exists {
				return false, true
			}
			av, _ := a.m.Get(k)
			eq, eok := Equal(av, bv)
			if !eok {
				anyNull = true
				continue
			}
			if !eq {
				return false, true
			}
		}
		if anyNull {
			return false, false
		}
		return true, true

	case a.kind == KindNode && b.kind == KindNode:
		return a.node.ID == b.node.ID, true

	case a.kind == KindRel && b.kind == KindRel:
		return a.rel.ID == b.rel.ID, true

	case a.kind == KindTemporal && b.kind == KindTemporal:
		if a.temp.Kind != b.temp.Kind {
			return false, true
		}
		if a.temp.Kind == TemporalDuration {
			return CompareDuration(a.temp, b.temp) == 0, true
		}
		return CompareInstant(a.temp, b.temp) == 0, true

	default:
		// Different, non-numeric families: Cypher treats this as a
		// definite false rather than Null (e.g. "x" = true is false, not
		// null); only Null propagation and mixed-family *ordering*
		// collapse to Null.
		return false, true
	}
}

// Compare orders two values within a comparable family. ok is false for
// mixed-family comparisons or when either operand is Null;
// the caller must treat that as the three-valued Null result.
func Compare(a, b Value) (result Ordering, ok bool) {
	if a.IsNull() || b.IsNull() {
		return OrderEqual, false
	}

	switch {
	case a.IsNumeric() && b.IsNumeric():
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return orderFloat(af, bf), true

	case a.kind == KindString && b.kind == KindString:
		return orderString(a.s, b.s), true

	case a.kind == KindBool && b.kind == KindBool:
		if a.b == b.b {
			return OrderEqual, true
		}
		if !a.b && b.b {
			return OrderLess, true
		}
		return OrderGreater, true

	case a.kind == KindTemporal && b.kind == KindTemporal:
		if a.temp.Kind == TemporalDuration && b.temp.Kind == TemporalDuration {
			return Ordering(CompareDuration(a.temp, b.temp)), true
		}
		if a.temp.Kind != TemporalDuration && b.temp.Kind != TemporalDuration {
			return Ordering(CompareInstant(a.temp, b.temp)), true
		}
		return OrderEqual, false

	default:
		return OrderEqual, false
	}
}

// orderOrdered is the single generic comparison helper shared by every
// ordered family in this package (float64 and string here, and int64 in
// temporal.go's instant/duration ordering) so the less/equal/greater
// switch is written once instead of once per underlying type.
func orderOrdered[T cmp.Ordered](a, b T) Ordering {
	switch {
	case a < b:
		return OrderLess
	case a > b:
		return OrderGreater
	default:
		return OrderEqual
	}
}

func orderFloat(a, b float64) Ordering { return orderOrdered(a, b) }

func orderString(a, b string) Ordering { return orderOrdered(a, b) }
