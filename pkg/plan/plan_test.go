package plan_test

import (
	"io"
	"testing"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/plan"
	"github.com/lattixdb/cyphercore/pkg/procedure"
	"github.com/lattixdb/cyphercore/pkg/value"
)

func newContext(w graphmodel.Write) *plan.Context {
	return &plan.Context{Write: w, Procs: procedure.NewRegistry(), Params: map[string]value.Value{}}
}

// seedPeople builds two Person nodes ("Ada", 36) and ("Bob", 40) connected
// by a single KNOWS relationship, committed so scans see them.
func seedPeople(t *testing.T) *graphmodel.MemoryModel {
	t.Helper()
	model := graphmodel.NewMemoryModel()
	w := model.Begin()
	props := func(name string, age int64) *value.OrderedMap {
		m := value.NewOrderedMap()
		m.Set("name", value.Str(name))
		m.Set("age", value.Int(age))
		return m
	}
	created, err := w.CreateElements([]graphmodel.NodeSpec{
		{Labels: []string{"Person"}, Properties: props("Ada", 36)},
		{Labels: []string{"Person"}, Properties: props("Bob", 40)},
	}, []graphmodel.RelSpec{
		{Type: "KNOWS", StartIndex: 0, EndIndex: 1, ExistingStart: 0, ExistingEnd: 0},
	})
	if err != nil {
		t.Fatalf("seed CreateElements: %v", err)
	}
	if err := w.Commit(); err != nil {
		t.Fatalf("seed commit: %v", err)
	}
	_ = created
	return model
}

// drainOp opens op, pulls every row via Next until io.EOF, and returns them
// along with the operator's final schema.
func drainOp(t *testing.T, op plan.Operator, ctx *plan.Context) ([]frame.Row, frame.Schema) {
	t.Helper()
	if err := op.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	var rows []frame.Row
	for {
		batch, err := op.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		rows = append(rows, batch...)
	}
	if err := op.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return rows, op.Schema()
}

func varExpr(name string) expr.Expr { return expr.Variable{Name: name} }

func valueOrderedMap(t *testing.T, key, val string) *value.OrderedMap {
	t.Helper()
	m := value.NewOrderedMap()
	m.Set(key, value.Str(val))
	return m
}
