package plan

import (
	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
)

// Project computes a new schema by type-inferring each item's expression
// and produces rows by evaluating those expressions against the child.
type Project struct {
	buffered
	Child Operator
	Items []frame.ProjectItem
}

// NewProject validates that no item contains a bare CountStar: outside an
// Aggregation partner, count(*) has no group to count over, so it is
// rejected here rather than silently returning a row count. It returns an
// error instead of an Operator when it does.
func NewProject(child Operator, items []frame.ProjectItem) (*Project, error) {
	if err := rejectBareCountStar(items); err != nil {
		return nil, err
	}
	p := &Project{Child: child, Items: items}
	p.schema = frame.ProjectSchema(child.Schema(), items)
	return p, nil
}

func (p *Project) Open(ctx *Context) error {
	if err := p.Child.Open(ctx); err != nil {
		return err
	}
	rows, err := drainAll(p.Child)
	if err != nil {
		return err
	}
	df, err := frame.New(p.Child.Schema(), rows).Project(p.Items, ctx.exprContext(), ctx.Procs)
	if err != nil {
		return err
	}
	p.schema = df.Schema()
	p.fill(df)
	return nil
}

// rejectBareCountStar walks each item's top-level expression for a
// CountStar node not wrapped in anything an Aggregation operator would
// already have folded away by the time it reaches Project.
func rejectBareCountStar(items []frame.ProjectItem) error {
	var contains func(expr.Expr) bool
	contains = func(e expr.Expr) bool {
		switch t := e.(type) {
		case expr.CountStar:
			return true
		case expr.Arithmetic:
			return contains(t.Left) || contains(t.Right)
		case expr.Comparison:
			return contains(t.Left) || contains(t.Right)
		case expr.Not:
			return contains(t.Operand)
		default:
			return false
		}
	}
	for _, item := range items {
		if contains(item.Expr) {
			return cerr.New("plan.Project", cerr.KindNonAggregatingInAggregateContext,
				"count(*) is only valid as an aggregation, not a plain projection item")
		}
	}
	return nil
}

// With is identical to Project plus optional Distinct, OrderBy, Skip,
// Limit; it acts as a pipeline boundary hiding
// upstream variables not carried forward. Since Project already produces
// a schema containing only the declared items, hiding upstream variables
// falls out for free — With's schema never mentions anything the child
// had that wasn't re-declared as an item.
type With struct {
	buffered
	Child     Operator
	Items     []frame.ProjectItem
	Distinct  bool
	OrderKeys []frame.OrderKey
	Skip      *int
	Limit     *int
}

func NewWith(child Operator, items []frame.ProjectItem) (*With, error) {
	if err := rejectBareCountStar(items); err != nil {
		return nil, err
	}
	w := &With{Child: child, Items: items}
	w.schema = frame.ProjectSchema(child.Schema(), items)
	return w, nil
}

func (w *With) Open(ctx *Context) error {
	if err := w.Child.Open(ctx); err != nil {
		return err
	}
	rows, err := drainAll(w.Child)
	if err != nil {
		return err
	}
	df, err := frame.New(w.Child.Schema(), rows).Project(w.Items, ctx.exprContext(), ctx.Procs)
	if err != nil {
		return err
	}
	if len(w.OrderKeys) > 0 {
		df, err = df.OrderBy(w.OrderKeys, ctx.exprContext(), ctx.Procs)
		if err != nil {
			return err
		}
	}
	if w.Distinct {
		df = df.Distinct()
	}
	if w.Skip != nil {
		df, err = df.Skip(*w.Skip)
		if err != nil {
			return err
		}
	}
	if w.Limit != nil {
		df, err = df.Take(*w.Limit)
		if err != nil {
			return err
		}
	}
	w.schema = df.Schema()
	w.fill(df)
	return nil
}
