package plan_test

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/plan"
)

func TestAggregationCountStarOverEmptyInputIsZero(t *testing.T) {
	model := graphmodel.NewMemoryModel()
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	agg := plan.NewAggregation(scan, nil, []frame.ProjectItem{
		{Alias: "c", Expr: expr.CountStar{}},
	})
	rows, schema := drainOp(t, agg, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	idx := schema.IndexOf("c")
	c, _ := rows[0].At(idx).AsInt()
	if c != 0 {
		t.Fatalf("count(*) over empty input = %d, want 0", c)
	}
}

func TestAggregationTransitionsToDrainingOnOpen(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	agg := plan.NewAggregation(scan, nil, []frame.ProjectItem{
		{Alias: "c", Expr: expr.CountStar{}},
	})
	if err := agg.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if agg.State() != plan.Draining {
		t.Fatalf("state after Open = %v, want Draining", agg.State())
	}
}

func TestAggregationGroupsByNameCount(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	agg := plan.NewAggregation(scan,
		[]frame.ProjectItem{{Alias: "name", Expr: expr.Property{Source: varExpr("n"), Key: "name"}}},
		[]frame.ProjectItem{{Alias: "c", Expr: expr.CountStar{}}},
	)
	rows, schema := drainOp(t, agg, ctx)
	if len(rows) != 2 {
		t.Fatalf("got %d groups, want 2", len(rows))
	}
	cIdx := schema.IndexOf("c")
	for _, r := range rows {
		if c, _ := r.At(cIdx).AsInt(); c != 1 {
			t.Fatalf("each name group should count 1, got %d", c)
		}
	}
}
