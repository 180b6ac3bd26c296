package procedure

import (
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// seenSet tracks argument keys already stepped, for DISTINCT-qualified
// aggregates; every aggregator embeds one, and count, sum, avg and
// collect check it in Step (min and max do not consult it).
type seenSet struct {
	distinct bool
	seen     map[string]bool
}

func newSeenSet(distinct bool) seenSet {
	if !distinct {
		return seenSet{}
	}
	return seenSet{distinct: true, seen: make(map[string]bool)}
}

// admit reports whether v should be folded in: always true when the
// aggregate isn't DISTINCT-qualified, otherwise true only the first time
// this key is seen.
func (s *seenSet) admit(v value.Value) bool {
	if !s.distinct {
		return true
	}
	k := v.String()
	if s.seen[k] {
		return false
	}
	s.seen[k] = true
	return true
}

type countAggregator struct {
	seenSet
	n int64
}

func (a *countAggregator) Step(args []value.Value, distinct bool) {
	if len(args) == 0 || args[0].IsNull() {
		return
	}
	a.distinct = a.distinct || distinct
	if a.seen == nil && distinct {
		a.seen = make(map[string]bool)
	}
	if !a.admit(args[0]) {
		return
	}
	a.n++
}
func (a *countAggregator) Result() (value.Value, error) { return value.Int(a.n), nil }

type sumAggregator struct {
	seenSet
	total   float64
	allInt  bool
	sawAny  bool
	intOnly int64
}

func newSumAggregator() *sumAggregator { return &sumAggregator{allInt: true} }

func (a *sumAggregator) Step(args []value.Value, distinct bool) {
	if len(args) == 0 || args[0].IsNull() {
		return
	}
	a.distinct = a.distinct || distinct
	if a.seen == nil && distinct {
		a.seen = make(map[string]bool)
	}
	if !a.admit(args[0]) {
		return
	}
	a.sawAny = true
	if i, ok := args[0].AsInt(); ok {
		a.intOnly += i
	} else {
		a.allInt = false
	}
	if f, ok := args[0].AsFloat64(); ok {
		a.total += f
	}
}

func (a *sumAggregator) Result() (value.Value, error) {
	if !a.sawAny {
		return value.Int(0), nil
	}
	if a.allInt {
		return value.Int(a.intOnly), nil
	}
	return value.Float(a.total), nil
}

type avgAggregator struct {
	seenSet
	total float64
	count int64
}

func (a *avgAggregator) Step(args []value.Value, distinct bool) {
	if len(args) == 0 || args[0].IsNull() {
		return
	}
	a.distinct = a.distinct || distinct
	if a.seen == nil && distinct {
		a.seen = make(map[string]bool)
	}
	if !a.admit(args[0]) {
		return
	}
	f, ok := args[0].AsFloat64()
	if !ok {
		return
	}
	a.total += f
	a.count++
}

func (a *avgAggregator) Result() (value.Value, error) {
	if a.count == 0 {
		return value.Null, nil
	}
	return value.Float(a.total / float64(a.count)), nil
}

// minMaxAggregator folds via value.Compare, which already implements the
// type-family ordering rules; Null and incomparable values are skipped
// rather than poisoning the running extreme.
type minMaxAggregator struct {
	seenSet
	want value.Ordering
	best value.Value
	has  bool
}

func (a *minMaxAggregator) Step(args []value.Value, distinct bool) {
	if len(args) == 0 || args[0].IsNull() {
		return
	}
	if !a.has {
		a.best = args[0]
		a.has = true
		return
	}
	ord, ok := value.Compare(args[0], a.best)
	if ok && ord == a.want {
		a.best = args[0]
	}
}

func (a *minMaxAggregator) Result() (value.Value, error) {
	if !a.has {
		return value.Null, nil
	}
	return a.best, nil
}

type collectAggregator struct {
	seenSet
	items []value.Value
}

func (a *collectAggregator) Step(args []value.Value, distinct bool) {
	if len(args) == 0 || args[0].IsNull() {
		return
	}
	a.distinct = a.distinct || distinct
	if a.seen == nil && distinct {
		a.seen = make(map[string]bool)
	}
	if !a.admit(args[0]) {
		return
	}
	a.items = append(a.items, args[0])
}

func (a *collectAggregator) Result() (value.Value, error) {
	return value.List(append([]value.Value(nil), a.items...)), nil
}

func registerAggregates(r *Registry) {
	must(r.Register(&Func{Name: "count", MinArgs: 0, MaxArgs: 1, Aggregating: true,
		NewAggregator: func() expr.Aggregator { return &countAggregator{} }}))
	must(r.Register(&Func{Name: "sum", MinArgs: 1, MaxArgs: 1, Aggregating: true,
		NewAggregator: func() expr.Aggregator { return newSumAggregator() }}))
	must(r.Register(&Func{Name: "avg", MinArgs: 1, MaxArgs: 1, Aggregating: true,
		NewAggregator: func() expr.Aggregator { return &avgAggregator{} }}))
	must(r.Register(&Func{Name: "min", MinArgs: 1, MaxArgs: 1, Aggregating: true,
		NewAggregator: func() expr.Aggregator { return &minMaxAggregator{want: value.OrderLess} }}))
	must(r.Register(&Func{Name: "max", MinArgs: 1, MaxArgs: 1, Aggregating: true,
		NewAggregator: func() expr.Aggregator { return &minMaxAggregator{want: value.OrderGreater} }}))
	must(r.Register(&Func{Name: "collect", MinArgs: 1, MaxArgs: 1, Aggregating: true,
		NewAggregator: func() expr.Aggregator { return &collectAggregator{} }}))
}
