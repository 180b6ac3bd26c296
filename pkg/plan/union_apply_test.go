package plan_test

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/plan"
)

func TestUnionRejectsMismatchedSchemas(t *testing.T) {
	lhs := plan.NewNodeScan("n", []string{"Person"}, nil)
	rhs := plan.NewRelationshipScan("r", nil)
	if _, err := plan.NewUnion(lhs, rhs, true); err == nil {
		t.Fatalf("expected schema-mismatch error")
	}
}

func TestUnionAllPreservesDuplicatesAndOrder(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	lhs, err := plan.NewProject(plan.NewNodeScan("a", []string{"Person"}, nil),
		[]frame.ProjectItem{{Alias: "name", Expr: expr.Property{Source: varExpr("a"), Key: "name"}}})
	if err != nil {
		t.Fatalf("NewProject lhs: %v", err)
	}
	rhs, err := plan.NewProject(plan.NewNodeScan("b", []string{"Person"}, nil),
		[]frame.ProjectItem{{Alias: "name", Expr: expr.Property{Source: varExpr("b"), Key: "name"}}})
	if err != nil {
		t.Fatalf("NewProject rhs: %v", err)
	}
	u, err := plan.NewUnion(lhs, rhs, true)
	if err != nil {
		t.Fatalf("NewUnion: %v", err)
	}
	rows, _ := drainOp(t, u, ctx)
	if len(rows) != 4 {
		t.Fatalf("UNION ALL of two 2-row branches = %d rows, want 4", len(rows))
	}
}

func TestUnionDedupesAndDrains(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	lhs, err := plan.NewProject(plan.NewNodeScan("a", []string{"Person"}, nil),
		[]frame.ProjectItem{{Alias: "label", Expr: expr.StringLiteral{Value: "Person"}}})
	if err != nil {
		t.Fatalf("NewProject lhs: %v", err)
	}
	rhs, err := plan.NewProject(plan.NewNodeScan("b", []string{"Person"}, nil),
		[]frame.ProjectItem{{Alias: "label", Expr: expr.StringLiteral{Value: "Person"}}})
	if err != nil {
		t.Fatalf("NewProject rhs: %v", err)
	}
	u, err := plan.NewUnion(lhs, rhs, false)
	if err != nil {
		t.Fatalf("NewUnion: %v", err)
	}
	rows, _ := drainOp(t, u, ctx)
	if len(rows) != 1 {
		t.Fatalf("UNION of two identical single-column branches = %d rows, want 1 after dedup", len(rows))
	}
	if u.State() != plan.Closed {
		t.Fatalf("state after drain+close = %v, want Closed", u.State())
	}
}

func TestApplyCorrelatesInnerPerOuterRow(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	outer := plan.NewNodeScan("a", []string{"Person"}, nil)
	apply := plan.NewApply(outer, func() plan.Operator {
		inner := plan.NewNodeScan("b", []string{"Person"}, nil)
		pred := expr.Comparison{
			Op:   expr.OpEquals,
			Left: expr.Property{Source: varExpr("a"), Key: "name"},
			Right: expr.Property{Source: varExpr("b"), Key: "name"},
		}
		return plan.NewFilter(inner, pred)
	})
	rows, schema := drainOp(t, apply, ctx)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (one self-match per outer Person)", len(rows))
	}
	if schema.Names()[0] != "a" || schema.Names()[1] != "b" {
		t.Fatalf("unexpected schema names: %v", schema.Names())
	}
}

func TestApplyWithZeroOuterRowsStillDeterminesInnerSchema(t *testing.T) {
	model := graphmodel.NewMemoryModel()
	ctx := newContext(model.Begin())

	outer := plan.NewNodeScan("a", []string{"NoSuchLabel"}, nil)
	apply := plan.NewApply(outer, func() plan.Operator {
		return plan.NewNodeScan("b", []string{"Person"}, nil)
	})
	rows, schema := drainOp(t, apply, ctx)
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(rows))
	}
	if schema.Len() != 2 {
		t.Fatalf("schema should still carry both columns, got %+v", schema)
	}
}
