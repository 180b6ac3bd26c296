package plan_test

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/plan"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// seedWithNullAge adds a third Person with no age property alongside the
// two seeded by seedPeople, to exercise Null ordering.
func seedWithNullAge(t *testing.T) *graphmodel.MemoryModel {
	t.Helper()
	model := seedPeople(t)
	w := model.Begin()
	props := value.NewOrderedMap()
	props.Set("name", value.Str("Cy"))
	if _, err := w.CreateElements([]graphmodel.NodeSpec{{Labels: []string{"Person"}, Properties: props}}, nil); err != nil {
		t.Fatalf("CreateElements: %v", err)
	}
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return model
}

func TestOrderByPlacesNullLastAscending(t *testing.T) {
	model := seedWithNullAge(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	proj, err := plan.NewProject(scan, []frame.ProjectItem{
		{Alias: "age", Expr: expr.Property{Source: varExpr("n"), Key: "age"}},
	})
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	ob := plan.NewOrderBy(proj, []frame.OrderKey{{Expr: varExpr("age")}})
	rows, schema := drainOp(t, ob, ctx)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	idx := schema.IndexOf("age")
	if !rows[len(rows)-1].At(idx).IsNull() {
		t.Fatalf("last row should be Null age, got %v", rows[len(rows)-1].At(idx))
	}
}

func TestSkipAndLimitPaginate(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	proj, err := plan.NewProject(scan, []frame.ProjectItem{
		{Alias: "age", Expr: expr.Property{Source: varExpr("n"), Key: "age"}},
	})
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	ob := plan.NewOrderBy(proj, []frame.OrderKey{{Expr: varExpr("age")}})
	skip := plan.NewSkip(ob, 1)
	limit := plan.NewLimit(skip, 1)

	rows, schema := drainOp(t, limit, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	idx := schema.IndexOf("age")
	age, _ := rows[0].At(idx).AsInt()
	if age != 40 {
		t.Fatalf("skip(1).limit(1) over [36,40] = %d, want 40", age)
	}
}

func TestSkipNegativeIsInvalidArgument(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())
	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	skip := plan.NewSkip(scan, -1)
	if err := skip.Open(ctx); err == nil {
		t.Fatalf("expected error for negative Skip")
	}
}

func TestDistinctDropsDuplicateRows(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	proj, err := plan.NewProject(scan, []frame.ProjectItem{
		{Alias: "label", Expr: expr.StringLiteral{Value: "Person"}},
	})
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	dist := plan.NewDistinct(proj)
	rows, _ := drainOp(t, dist, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 after distinct", len(rows))
	}
}
