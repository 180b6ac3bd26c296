package expr

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/value"
)

type sumAggregator struct{ total float64 }

func (s *sumAggregator) Step(args []value.Value, distinct bool) {
	f, _ := args[0].AsFloat64()
	s.total += f
}
func (s *sumAggregator) Result() (value.Value, error) { return value.Float(s.total), nil }

type stubAggRegistry struct{ stubRegistry }

func (stubAggRegistry) IsAggregating(namespace, name string) bool { return name == "sum" }

func (stubAggRegistry) NewAggregator(namespace, name string) (Aggregator, bool) {
	if name == "sum" {
		return &sumAggregator{}, true
	}
	return nil, false
}

func rowsOf(t *testing.T, values ...int64) []*Context {
	t.Helper()
	ctxs := make([]*Context, len(values))
	for i, v := range values {
		ctxs[i] = NewContext(nil).WithVars(map[string]value.Value{"x": value.Int(v)})
	}
	return ctxs
}

func TestAggregateEvalSum(t *testing.T) {
	ctxs := rowsOf(t, 1, 2, 3)
	e := ProcedureExpression{Invocation: ProcedureInvocation{Name: "sum", Args: []Expr{Variable{"x"}}}}
	v, err := AggregateEval(e, ctxs, stubAggRegistry{})
	if err != nil {
		t.Fatalf("AggregateEval failed: %v", err)
	}
	f, ok := v.AsFloat()
	if !ok || f != 6 {
		t.Fatalf("sum = %v, want Float(6)", v)
	}
}

func TestAggregateEvalCountStar(t *testing.T) {
	ctxs := rowsOf(t, 1, 2, 3, 4)
	v, err := AggregateEval(CountStar{}, ctxs, stubAggRegistry{})
	if err != nil {
		t.Fatalf("AggregateEval failed: %v", err)
	}
	i, ok := v.AsInt()
	if !ok || i != 4 {
		t.Fatalf("count(*) = %v, want Int(4)", v)
	}
}

func TestAggregateEvalCombinedWithArithmetic(t *testing.T) {
	ctxs := rowsOf(t, 1, 2, 3)
	e := Arithmetic{
		Op:   OpAdd,
		Left: ProcedureExpression{Invocation: ProcedureInvocation{Name: "sum", Args: []Expr{Variable{"x"}}}},
		Right: IntegerLiteral{1},
	}
	v, err := AggregateEval(e, ctxs, stubAggRegistry{})
	if err != nil {
		t.Fatalf("AggregateEval failed: %v", err)
	}
	f, ok := v.AsFloat64()
	if !ok || f != 7 {
		t.Fatalf("sum(x)+1 = %v, want 7", v)
	}
}

func TestAggregateEvalNoAggregateLeaves(t *testing.T) {
	ctxs := rowsOf(t, 1)
	v, err := AggregateEval(IntegerLiteral{42}, ctxs, stubAggRegistry{})
	if err != nil {
		t.Fatalf("AggregateEval failed: %v", err)
	}
	i, _ := v.AsInt()
	if i != 42 {
		t.Fatalf("expected literal passthrough, got %v", v)
	}
}
