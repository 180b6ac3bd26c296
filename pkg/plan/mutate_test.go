package plan_test

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/plan"
)

func TestCreateStagesNodesAndRelationshipInvisibleUntilCommit(t *testing.T) {
	model := graphmodel.NewMemoryModel()
	w := model.Begin()
	ctx := &plan.Context{Write: w}

	nodes := []plan.NodeCreateSpec{
		{Variable: "a", Labels: []string{"Person"}, Properties: map[string]expr.Expr{"name": expr.StringLiteral{Value: "Ada"}}},
		{Variable: "b", Labels: []string{"Person"}, Properties: map[string]expr.Expr{"name": expr.StringLiteral{Value: "Bob"}}},
	}
	rels := []plan.RelCreateSpec{
		{Variable: "r", Type: "KNOWS", StartIndex: 0, EndIndex: 1},
	}
	create := plan.NewCreate(plan.NewUnit(), nodes, rels)
	rows, schema := drainOp(t, create, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (Unit emits one row)", len(rows))
	}
	if schema.Len() != 3 {
		t.Fatalf("schema should have a,b,r columns, got %+v", schema.Names())
	}

	aIdx, bIdx, rIdx := schema.IndexOf("a"), schema.IndexOf("b"), schema.IndexOf("r")
	aNode, ok := rows[0].At(aIdx).AsNode()
	if !ok {
		t.Fatalf("expected node at a")
	}
	bNode, ok := rows[0].At(bIdx).AsNode()
	if !ok {
		t.Fatalf("expected node at b")
	}
	rel, ok := rows[0].At(rIdx).AsRel()
	if !ok {
		t.Fatalf("expected relationship at r")
	}
	if rel.StartID != aNode.ID || rel.EndID != bNode.ID {
		t.Fatalf("relationship endpoints don't match created nodes")
	}

	if _, ok, _ := model.NodeByID(aNode.ID); ok {
		t.Fatalf("node should not be visible on the underlying model before Commit")
	}
	if err := w.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if _, ok, _ := model.NodeByID(aNode.ID); !ok {
		t.Fatalf("node should be visible after Commit")
	}
}

func TestMergeMatchesExistingNodeAndAppliesOnMatch(t *testing.T) {
	model := graphmodel.NewMemoryModel()
	seed := model.Begin()
	props := valueOrderedMap(t, "name", "Ada")
	created, err := seed.CreateElements([]graphmodel.NodeSpec{{Labels: []string{"Person"}, Properties: props}}, nil)
	if err != nil {
		t.Fatalf("seed CreateElements: %v", err)
	}
	if err := seed.Commit(); err != nil {
		t.Fatalf("seed commit: %v", err)
	}

	w := model.Begin()
	ctx := &plan.Context{Write: w}
	merge := plan.NewMerge(plan.NewUnit(), "n", []string{"Person"},
		map[string]expr.Expr{"name": expr.StringLiteral{Value: "Ada"}},
		map[string]expr.Expr{"visits": expr.IntegerLiteral{Value: 1}},
		map[string]expr.Expr{"visits": expr.IntegerLiteral{Value: 99}},
	)
	rows, schema := drainOp(t, merge, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	idx := schema.IndexOf("n")
	node, ok := rows[0].At(idx).AsNode()
	if !ok {
		t.Fatalf("expected node at n")
	}
	if node.ID != created.NodeIDs[0] {
		t.Fatalf("merge should have matched the existing node, got a different id")
	}
	visits, ok := node.Properties.Get("visits")
	if !ok {
		t.Fatalf("expected ON MATCH property to be staged")
	}
	if v, _ := visits.AsInt(); v != 99 {
		t.Fatalf("ON MATCH should set visits=99, got %v", v)
	}
}

func TestMergeCreatesWhenNoMatch(t *testing.T) {
	model := graphmodel.NewMemoryModel()
	w := model.Begin()
	ctx := &plan.Context{Write: w}
	merge := plan.NewMerge(plan.NewUnit(), "n", []string{"Person"},
		map[string]expr.Expr{"name": expr.StringLiteral{Value: "Cy"}},
		map[string]expr.Expr{"visits": expr.IntegerLiteral{Value: 1}},
		map[string]expr.Expr{"visits": expr.IntegerLiteral{Value: 99}},
	)
	rows, schema := drainOp(t, merge, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	idx := schema.IndexOf("n")
	node, _ := rows[0].At(idx).AsNode()
	visits, ok := node.Properties.Get("visits")
	if !ok {
		t.Fatalf("expected ON CREATE property to be staged")
	}
	if v, _ := visits.AsInt(); v != 1 {
		t.Fatalf("ON CREATE should set visits=1, got %v", v)
	}
}

func TestSetPropertyAndDeleteMutateThroughVariableBinding(t *testing.T) {
	model := seedPeople(t)
	w := model.Begin()
	ctx := &plan.Context{Write: w}

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	set := plan.NewSetProperty(scan, "n", false, "age", expr.IntegerLiteral{Value: 100})
	rows, schema := drainOp(t, set, ctx)
	if len(rows) != 2 {
		t.Fatalf("SetProperty should pass through all input rows, got %d", len(rows))
	}
	idx := schema.IndexOf("n")
	for _, r := range rows {
		node, _ := r.At(idx).AsNode()
		staged, _, _ := w.NodeByID(node.ID)
		age, _ := staged.Properties.Get("age")
		if v, _ := age.AsInt(); v != 100 {
			t.Fatalf("expected staged age=100, got %v", v)
		}
	}

	w2 := model.Begin()
	ctx2 := &plan.Context{Write: w2}
	scan2 := plan.NewNodeScan("n", []string{"Person"}, nil)
	del := plan.NewDelete(scan2, "n", false, true)
	_, _ = drainOp(t, del, ctx2)
	if err := w2.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	remaining, err := model.Nodes([]string{"Person"}, nil)
	if err != nil {
		t.Fatalf("Nodes: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected all Person nodes deleted, got %d remaining", len(remaining))
	}
}
