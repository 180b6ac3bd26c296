package plan

import "github.com/lattixdb/cyphercore/pkg/expr"

// Optimize applies rewrite rules to a physical operator tree before it is
// run, chaining each rule in sequence the way a larger optimizer would
// chain index selection, filter pushdown, and join reordering passes.
// This one implements a single rewrite: pushing a Filter below a
// Project/With that doesn't consume any variable the filter needs, so
// downstream operators (and any future index-aware scan) see fewer rows
// sooner. Index selection, join reordering, and cost-based cardinality
// estimation are out of scope; Optimize is a single rewrite, not a
// framework, and is safe to run on any tree — trees with nothing to push
// pass through unchanged.
func Optimize(op Operator) Operator {
	switch o := op.(type) {
	case *Filter:
		child := Optimize(o.Child)
		if pushed, ok := pushFilterBelow(o.Predicate, child); ok {
			return pushed
		}
		o.Child = child
		return o
	case *Project:
		o.Child = Optimize(o.Child)
		return o
	case *With:
		o.Child = Optimize(o.Child)
		return o
	case *Aggregation:
		o.Child = Optimize(o.Child)
		return o
	case *OrderBy:
		o.Child = Optimize(o.Child)
		return o
	case *Skip:
		o.Child = Optimize(o.Child)
		return o
	case *Limit:
		o.Child = Optimize(o.Child)
		return o
	case *Distinct:
		o.Child = Optimize(o.Child)
		return o
	case *Unwind:
		o.Child = Optimize(o.Child)
		return o
	case *Expand:
		o.Child = Optimize(o.Child)
		return o
	case *Union:
		o.Lhs = Optimize(o.Lhs)
		o.Rhs = Optimize(o.Rhs)
		return o
	case *Create:
		o.Child = Optimize(o.Child)
		return o
	case *Merge:
		o.Child = Optimize(o.Child)
		return o
	case *SetProperty:
		o.Child = Optimize(o.Child)
		return o
	case *Delete:
		o.Child = Optimize(o.Child)
		return o
	default:
		// NodeScan, RelationshipScan, Unit: no child to recurse into.
		// Apply, OuterApply: neither the Outer side nor the inner side
		// (built per outer row at Open time, not present in the static
		// tree) is rewritten.
		return op
	}
}

// pushFilterBelow rewrites Filter(pred, Project/With(items, child)) into
// Project/With(items, Filter(pred, child)) when pred's free variables are
// all already present in child's schema — i.e. the filter doesn't need any
// column the projection computes. ok is false when the rewrite doesn't
// apply, in which case the caller keeps Filter where it is.
func pushFilterBelow(pred expr.Expr, child Operator) (Operator, bool) {
	vars := freeVars(pred)

	switch c := child.(type) {
	case *Project:
		if !subsetOfSchema(vars, c.Child.Schema()) {
			return nil, false
		}
		pushed := NewFilter(c.Child, pred)
		np, err := NewProject(pushed, c.Items)
		if err != nil {
			return nil, false
		}
		return np, true
	case *With:
		if c.Distinct || len(c.OrderKeys) > 0 || c.Skip != nil || c.Limit != nil {
			// Pushing below a With that also sorts/dedupes/paginates would
			// change which rows those stages see; leave it alone.
			return nil, false
		}
		if !subsetOfSchema(vars, c.Child.Schema()) {
			return nil, false
		}
		pushed := NewFilter(c.Child, pred)
		nw, err := NewWith(pushed, c.Items)
		if err != nil {
			return nil, false
		}
		return nw, true
	default:
		return nil, false
	}
}

func subsetOfSchema(vars map[string]bool, schema interface{ IndexOf(string) int }) bool {
	for v := range vars {
		if schema.IndexOf(v) < 0 {
			return false
		}
	}
	return true
}

// freeVars collects every Variable name referenced anywhere in e.
func freeVars(e expr.Expr) map[string]bool {
	out := map[string]bool{}
	collectFreeVars(e, out)
	return out
}

func collectFreeVars(e expr.Expr, out map[string]bool) {
	switch n := e.(type) {
	case expr.Variable:
		out[n.Name] = true
	case expr.Property:
		collectFreeVars(n.Source, out)
	case expr.ContainerIndex:
		collectFreeVars(n.Container, out)
		collectFreeVars(n.Index, out)
	case expr.Arithmetic:
		collectFreeVars(n.Left, out)
		collectFreeVars(n.Right, out)
	case expr.Comparison:
		collectFreeVars(n.Left, out)
		collectFreeVars(n.Right, out)
	case expr.And:
		collectFreeVars(n.Left, out)
		collectFreeVars(n.Right, out)
	case expr.Or:
		collectFreeVars(n.Left, out)
		collectFreeVars(n.Right, out)
	case expr.Not:
		collectFreeVars(n.Operand, out)
	case expr.Ands:
		for _, x := range n.Operands {
			collectFreeVars(x, out)
		}
	case expr.Ors:
		for _, x := range n.Operands {
			collectFreeVars(x, out)
		}
	case expr.IsNull:
		collectFreeVars(n.Operand, out)
	case expr.IsNotNull:
		collectFreeVars(n.Operand, out)
	case expr.StringPredicate:
		collectFreeVars(n.Left, out)
		collectFreeVars(n.Right, out)
	case expr.In:
		collectFreeVars(n.Left, out)
		collectFreeVars(n.Right, out)
	case expr.HasLabels:
		collectFreeVars(n.Operand, out)
	case expr.ListLiteral:
		for _, x := range n.Items {
			collectFreeVars(x, out)
		}
	case expr.MapExpression:
		for _, entry := range n.Entries {
			collectFreeVars(entry.Value, out)
		}
	case expr.ProcedureExpression:
		for _, a := range n.Invocation.Args {
			collectFreeVars(a, out)
		}
	case expr.CaseExpression:
		if n.Subject != nil {
			collectFreeVars(n.Subject, out)
		}
		for _, alt := range n.Alternatives {
			collectFreeVars(alt.Predicate, out)
			collectFreeVars(alt.Result, out)
		}
		if n.Default != nil {
			collectFreeVars(n.Default, out)
		}
	case expr.PathExpression:
		collectPathStepVars(n.Step, out)
	default:
		// IntegerLiteral, DoubleLiteral, StringLiteral, BooleanLiteral,
		// NullLiteral, Parameter, CountStar: no row variables.
	}
}

func collectPathStepVars(step expr.PathStep, out map[string]bool) {
	switch s := step.(type) {
	case expr.NodePathStep:
		collectFreeVars(s.Node, out)
		collectPathStepVars(s.Next, out)
	case expr.SingleRelationshipPathStep:
		collectFreeVars(s.Rel, out)
		collectFreeVars(s.Node, out)
		collectPathStepVars(s.Next, out)
	case expr.MultiRelationshipPathStep:
		collectFreeVars(s.Rels, out)
		collectFreeVars(s.Nodes, out)
		collectPathStepVars(s.Next, out)
	default:
		// NilPathStep
	}
}
