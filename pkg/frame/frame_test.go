package frame_test

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/procedure"
	"github.com/lattixdb/cyphercore/pkg/types"
	"github.com/lattixdb/cyphercore/pkg/value"
)

func namesSchema() frame.Schema {
	return frame.NewSchema(
		frame.Column{Name: "name", Type: types.String},
		frame.Column{Name: "age", Type: types.Integer},
	)
}

func personRows() []frame.Row {
	return []frame.Row{
		frame.NewRow(value.Str("Alex"), value.Null),
		frame.NewRow(value.Str("Alex"), value.Int(10)),
		frame.NewRow(value.Str("Cat"), value.Int(10)),
		frame.NewRow(value.Str("Cat"), value.Int(15)),
	}
}

func TestFilterDropsFalseAndNull(t *testing.T) {
	df := frame.New(namesSchema(), personRows())
	procs := procedure.NewRegistry()
	pred := expr.Comparison{Op: expr.OpGreaterThan, Left: expr.Variable{Name: "age"}, Right: expr.IntegerLiteral{Value: 10}}
	out, err := df.Filter(pred, expr.NewContext(nil), procs)
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("expected 1 row (age=15), got %d", out.Len())
	}
}

func TestProjectInfersTypesAndValues(t *testing.T) {
	df := frame.New(namesSchema(), personRows())
	procs := procedure.NewRegistry()
	items := []frame.ProjectItem{{Alias: "who", Expr: expr.Variable{Name: "name"}}}
	out, err := df.Project(items, expr.NewContext(nil), procs)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if out.Schema().Names()[0] != "who" {
		t.Fatalf("expected column 'who', got %v", out.Schema().Names())
	}
	if s, _ := out.Rows()[0].At(0).AsString(); s != "Alex" {
		t.Fatalf("first row = %v, want Alex", out.Rows()[0].At(0))
	}
}

func TestGroupByCountPerName(t *testing.T) {
	df := frame.New(namesSchema(), personRows())
	procs := procedure.NewRegistry()
	groupings := []frame.ProjectItem{{Alias: "name", Expr: expr.Variable{Name: "name"}}}
	aggregations := []frame.ProjectItem{{Alias: "n", Expr: expr.CountStar{}}}
	out, err := df.GroupBy(groupings, aggregations, expr.NewContext(nil), procs)
	if err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("expected 2 groups, got %d", out.Len())
	}
	for _, row := range out.Rows() {
		if n, _ := row.At(1).AsInt(); n != 2 {
			t.Fatalf("expected count 2 per name, got %d", n)
		}
	}
}

func TestGroupByEmptyInputStillEmitsOneRow(t *testing.T) {
	df := frame.New(namesSchema(), nil)
	procs := procedure.NewRegistry()
	aggregations := []frame.ProjectItem{{Alias: "n", Expr: expr.CountStar{}}}
	out, err := df.GroupBy(nil, aggregations, expr.NewContext(nil), procs)
	if err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("expected 1 identity row, got %d", out.Len())
	}
	if n, _ := out.Rows()[0].At(0).AsInt(); n != 0 {
		t.Fatalf("count(*) over empty input = %d, want 0", n)
	}
}

func TestOrderByNullsLastAscending(t *testing.T) {
	df := frame.New(namesSchema(), personRows())
	procs := procedure.NewRegistry()
	keys := []frame.OrderKey{{Expr: expr.Variable{Name: "age"}}}
	out, err := df.OrderBy(keys, expr.NewContext(nil), procs)
	if err != nil {
		t.Fatalf("OrderBy failed: %v", err)
	}
	last := out.Rows()[out.Len()-1]
	if !last.At(1).IsNull() {
		t.Fatalf("expected Null last, got %v", last.At(1))
	}
}

func TestSkipTakeNegativeIsInvalidArgument(t *testing.T) {
	df := frame.New(namesSchema(), personRows())
	if _, err := df.Skip(-1); err == nil {
		t.Fatalf("expected error for negative skip")
	}
	if _, err := df.Take(-1); err == nil {
		t.Fatalf("expected error for negative take")
	}
}

func TestDistinctPreservesFirstOccurrence(t *testing.T) {
	schema := frame.NewSchema(frame.Column{Name: "x", Type: types.Integer})
	df := frame.New(schema, []frame.Row{
		frame.NewRow(value.Int(1)),
		frame.NewRow(value.Int(2)),
		frame.NewRow(value.Int(1)),
	})
	out := df.Distinct()
	if out.Len() != 2 {
		t.Fatalf("expected 2 distinct rows, got %d", out.Len())
	}
	if i, _ := out.Rows()[0].At(0).AsInt(); i != 1 {
		t.Fatalf("expected first row to stay 1, got %d", i)
	}
}

func TestInnerJoinOnNamedColumn(t *testing.T) {
	leftSchema := frame.NewSchema(frame.Column{Name: "id", Type: types.Integer}, frame.Column{Name: "name", Type: types.String})
	left := frame.New(leftSchema, []frame.Row{
		frame.NewRow(value.Int(1), value.Str("Alex")),
		frame.NewRow(value.Int(2), value.Str("Cat")),
	})
	rightSchema := frame.NewSchema(frame.Column{Name: "id", Type: types.Integer}, frame.Column{Name: "city", Type: types.String})
	right := frame.New(rightSchema, []frame.Row{
		frame.NewRow(value.Int(1), value.Str("NYC")),
	})
	out := left.Join(right, []string{"id"}, frame.InnerJoin)
	if out.Len() != 1 {
		t.Fatalf("expected 1 matched row, got %d", out.Len())
	}
}

func TestLeftOuterJoinPadsUnmatchedWithNull(t *testing.T) {
	leftSchema := frame.NewSchema(frame.Column{Name: "id", Type: types.Integer})
	left := frame.New(leftSchema, []frame.Row{frame.NewRow(value.Int(1)), frame.NewRow(value.Int(2))})
	rightSchema := frame.NewSchema(frame.Column{Name: "id", Type: types.Integer}, frame.Column{Name: "city", Type: types.String})
	right := frame.New(rightSchema, []frame.Row{frame.NewRow(value.Int(1), value.Str("NYC"))})
	out := left.Join(right, []string{"id"}, frame.LeftOuterJoin)
	if out.Len() != 2 {
		t.Fatalf("expected 2 rows (one padded), got %d", out.Len())
	}
	var sawNullCity bool
	cityIdx := out.Schema().IndexOf("city")
	for _, row := range out.Rows() {
		if row.At(cityIdx).IsNull() {
			sawNullCity = true
		}
	}
	if !sawNullCity {
		t.Fatalf("expected an unmatched left row padded with Null")
	}
}
