package procedure

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

func TestCallUnknownProcedure(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call("", "nope", nil, false)
	if kind, ok := cerr.KindOf(err); !ok || kind != cerr.KindUnknownProcedure {
		t.Fatalf("expected UnknownProcedure, got %v", err)
	}
}

func TestCallArityMismatch(t *testing.T) {
	r := NewRegistry()
	_, err := r.Call("", "abs", nil, false)
	if kind, ok := cerr.KindOf(err); !ok || kind != cerr.KindProcedureArity {
		t.Fatalf("expected ProcedureArity, got %v", err)
	}
}

func TestScalarFunctions(t *testing.T) {
	r := NewRegistry()

	v, err := r.Call("", "abs", []value.Value{value.Int(-5)}, false)
	if err != nil || mustInt(t, v) != 5 {
		t.Fatalf("abs(-5) = %v, %v", v, err)
	}

	v, err = r.Call("", "toUpper", []value.Value{value.Str("hi")}, false)
	if err != nil {
		t.Fatalf("toUpper failed: %v", err)
	}
	if s, _ := v.AsString(); s != "HI" {
		t.Fatalf("toUpper(hi) = %v", v)
	}

	v, err = r.Call("", "range", []value.Value{value.Int(1), value.Int(5)}, false)
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	items, _ := v.AsList()
	if len(items) != 5 {
		t.Fatalf("range(1,5) = %v items, want 5", len(items))
	}
}

func TestCoalesce(t *testing.T) {
	r := NewRegistry()
	v, err := r.Call("", "coalesce", []value.Value{value.Null, value.Null, value.Str("x")}, false)
	if err != nil {
		t.Fatalf("coalesce failed: %v", err)
	}
	if s, _ := v.AsString(); s != "x" {
		t.Fatalf("coalesce = %v, want x", v)
	}
}

func TestAggregatorCountDistinct(t *testing.T) {
	r := NewRegistry()
	acc, ok := r.NewAggregator("", "count")
	if !ok {
		t.Fatalf("count is not registered as aggregating")
	}
	acc.Step([]value.Value{value.Int(1)}, true)
	acc.Step([]value.Value{value.Int(1)}, true)
	acc.Step([]value.Value{value.Int(2)}, true)
	v, err := acc.Result()
	if err != nil {
		t.Fatalf("Result failed: %v", err)
	}
	if mustInt(t, v) != 2 {
		t.Fatalf("count(DISTINCT) = %v, want 2", v)
	}
}

func TestAggregatorSumMixedIntFloat(t *testing.T) {
	r := NewRegistry()
	acc, _ := r.NewAggregator("", "sum")
	acc.Step([]value.Value{value.Int(1)}, false)
	acc.Step([]value.Value{value.Float(2.5)}, false)
	v, _ := acc.Result()
	f, ok := v.AsFloat()
	if !ok || f != 3.5 {
		t.Fatalf("sum(1, 2.5) = %v, want 3.5", v)
	}
}

func TestAggregatorMinMax(t *testing.T) {
	r := NewRegistry()
	minAcc, _ := r.NewAggregator("", "min")
	maxAcc, _ := r.NewAggregator("", "max")
	for _, v := range []value.Value{value.Int(5), value.Int(1), value.Int(3)} {
		minAcc.Step([]value.Value{v}, false)
		maxAcc.Step([]value.Value{v}, false)
	}
	minV, _ := minAcc.Result()
	maxV, _ := maxAcc.Result()
	if mustInt(t, minV) != 1 || mustInt(t, maxV) != 5 {
		t.Fatalf("min=%v max=%v", minV, maxV)
	}
}

func mustInt(t *testing.T, v value.Value) int64 {
	t.Helper()
	i, ok := v.AsInt()
	if !ok {
		t.Fatalf("expected Int, got %v", v)
	}
	return i
}
