package plan_test

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/plan"
)

func TestNodeScanStateMachine(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	if scan.State() != plan.Unopened {
		t.Fatalf("new scan state = %v, want Unopened", scan.State())
	}
	rows, schema := drainOp(t, scan, ctx)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if schema.Len() != 1 || schema.Names()[0] != "n" {
		t.Fatalf("unexpected schema %+v", schema)
	}
	if scan.State() != plan.Closed {
		t.Fatalf("state after Close = %v, want Closed", scan.State())
	}
}

func TestNodeScanEmitsNodesWithProperties(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("n", []string{"Person"}, nil)
	rows, schema := drainOp(t, scan, ctx)
	idx := schema.IndexOf("n")
	var names []string
	for _, r := range rows {
		node, ok := r.At(idx).AsNode()
		if !ok {
			t.Fatalf("expected node value")
		}
		name, _ := node.Properties.Get("name")
		s, _ := name.AsString()
		names = append(names, s)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}
}

func TestRelationshipScanByType(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewRelationshipScan("r", []string{"KNOWS"})
	rows, _ := drainOp(t, scan, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	none := plan.NewRelationshipScan("r", []string{"NOPE"})
	rows, _ = drainOp(t, none, newContext(model.Begin()))
	if len(rows) != 0 {
		t.Fatalf("got %d rows, want 0", len(rows))
	}
}

func TestExpandSingleHopBindsNodeAndRelationship(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("a", []string{"Person"}, nil)
	expand := plan.NewExpand(scan, "a", "r", "b", graphmodel.Outgoing, []string{"KNOWS"}, 1, 1)
	rows, schema := drainOp(t, expand, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (only Ada has an outgoing KNOWS)", len(rows))
	}
	if schema.Names()[1] != "r" || schema.Names()[2] != "b" {
		t.Fatalf("unexpected schema names: %v", schema.Names())
	}
	rIdx, bIdx := schema.IndexOf("r"), schema.IndexOf("b")
	if _, ok := rows[0].At(rIdx).AsRel(); !ok {
		t.Fatalf("expected relationship at r")
	}
	if _, ok := rows[0].At(bIdx).AsNode(); !ok {
		t.Fatalf("expected node at b")
	}
}

func TestExpandVariableLengthBindsRelationshipList(t *testing.T) {
	model := seedPeople(t)
	ctx := newContext(model.Begin())

	scan := plan.NewNodeScan("a", []string{"Person"}, nil)
	expand := plan.NewExpand(scan, "a", "path", "b", graphmodel.Outgoing, nil, 1, 3)
	rows, schema := drainOp(t, expand, ctx)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	pathIdx := schema.IndexOf("path")
	list, ok := rows[0].At(pathIdx).AsList()
	if !ok {
		t.Fatalf("expected a list at path")
	}
	if len(list) != 1 {
		t.Fatalf("expected a 1-hop path segment, got %d elements", len(list))
	}
}
