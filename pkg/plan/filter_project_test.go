package plan_test

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/plan"
)

func TestFilterKeepsOnlyMatchingRows(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	pred := expr.Comparison{
		Op:    expr.OpGreaterThan,
		Left:  expr.Property{Source: varExpr("n"), Key: "age"},
		Right: expr.IntegerLiteral{Value: 38},
	}
	f := plan.NewFilter(scan, pred)
	rows, schema := drainOp(t, f, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	idx := schema.IndexOf("n")
	node, _ := rows[0].At(idx).AsNode()
	name, _ := node.Properties.Get("name")
	if s, _ := name.AsString(); s != "Bob" {
		t.Fatalf("got %s, want Bob", s)
	}
}

func TestProjectRejectsBareCountStar(t *testing.T) {
	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	_, err := plan.NewProject(scan, []frame.ProjectItem{{Alias: "c", Expr: expr.CountStar{}}})
	if err == nil {
		t.Fatalf("expected error for bare count(*) in Project")
	}
}

func TestProjectComputesAliasedColumn(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	items := []frame.ProjectItem{
		{Alias: "name", Expr: expr.Property{Source: varExpr("n"), Key: "name"}},
	}
	p, err := plan.NewProject(scan, items)
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	rows, schema := drainOp(t, p, ctx)
	if schema.Len() != 1 || schema.Names()[0] != "name" {
		t.Fatalf("unexpected schema %+v", schema)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
}

func TestWithSupportsDistinctOrderLimit(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	items := []frame.ProjectItem{
		{Alias: "age", Expr: expr.Property{Source: varExpr("n"), Key: "age"}},
	}
	w, err := plan.NewWith(scan, items)
	if err != nil {
		t.Fatalf("NewWith: %v", err)
	}
	w.Distinct = true
	w.OrderKeys = []frame.OrderKey{{Expr: varExpr("age"), Descending: true}}
	limit := 1
	w.Limit = &limit

	rows, schema := drainOp(t, w, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	idx := schema.IndexOf("age")
	age, _ := rows[0].At(idx).AsInt()
	if age != 40 {
		t.Fatalf("got age %d, want 40 (Bob, descending first)", age)
	}
}
