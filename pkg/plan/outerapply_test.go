package plan_test

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/plan"
)

func TestOuterApplyNullPadsUnmatchedOuterRows(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	outer := plan.NewNodeScan("a", []string{"Person"}, nil)
	apply := plan.NewOuterApply(outer, func() plan.Operator {
		inner := plan.NewNodeScan("b", []string{"Person"}, nil)
		return plan.NewFilter(inner, expr.Comparison{
			Op:    expr.OpEquals,
			Left:  expr.Property{Source: varExpr("b"), Key: "name"},
			Right: expr.StringLiteral{Value: "nobody"},
		})
	})
	rows, schema := drainOp(t, apply, ctx)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (every outer row survives with null inner columns)", len(rows))
	}
	bIdx := schema.IndexOf("b")
	for _, r := range rows {
		if !r.At(bIdx).IsNull() {
			t.Fatalf("expected null 'b' for unmatched outer row, got %+v", r.At(bIdx))
		}
	}
}

func TestOuterApplyKeepsMatchesWhenPresent(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	outer := plan.NewNodeScan("a", []string{"Person"}, nil)
	apply := plan.NewOuterApply(outer, func() plan.Operator {
		inner := plan.NewNodeScan("b", []string{"Person"}, nil)
		return plan.NewFilter(inner, expr.Comparison{
			Op:    expr.OpEquals,
			Left:  expr.Property{Source: varExpr("a"), Key: "name"},
			Right: expr.Property{Source: varExpr("b"), Key: "name"},
		})
	})
	rows, schema := drainOp(t, apply, ctx)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	bIdx := schema.IndexOf("b")
	for _, r := range rows {
		if r.At(bIdx).IsNull() {
			t.Fatalf("expected a self-match, got null 'b'")
		}
	}
}
