package frame

import (
	"strconv"
	"strings"

	"github.com/lattixdb/cyphercore/pkg/value"
)

// valueKey canonicalizes a Value into a string usable as a map key for
// Distinct/GroupBy/Join, honoring numeric equality across representations:
// Int(3) and Float(3.0) must land in the same bucket. This is deliberately
// a stronger equivalence than Equal (which returns "Null" rather than a
// bucketable answer whenever Null is involved) — GroupBy and DISTINCT
// group Nulls with Nulls, they don't propagate Null the way `=` does.
func valueKey(v value.Value) string {
	if v.IsNull() {
		return "null"
	}
	if v.IsNumeric() {
		f, _ := v.AsFloat64()
		return "num:" + strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.Itoa(int(v.Kind())) + ":" + v.String()
}

// rowKey canonicalizes a tuple of values into a single map key.
func rowKey(values []value.Value) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		b.WriteString(valueKey(v))
	}
	return b.String()
}
