package expr

import "github.com/lattixdb/cyphercore/pkg/value"

// Aggregator accumulates one row at a time and produces a final value once
// every row in the group has been stepped. Implementations live in
// pkg/procedure (count, sum, avg, min, max, collect); expr only knows the
// interface, which keeps aggregation-vs-evaluation a one-way dependency
// (procedure depends on expr for arguments, not the reverse).
type Aggregator interface {
	Step(args []value.Value, distinct bool)
	Result() (value.Value, error)
}

// AggregatingRegistry extends Registry with the ability to hand back a
// fresh Aggregator for a named aggregating procedure, and to report
// whether a call is aggregating at all (a non-aggregating call nested
// inside an aggregate expression, e.g. `count(n) + abs(m)`, is evaluated
// per-row via the ordinary Registry.Call, not accumulated).
type AggregatingRegistry interface {
	Registry
	IsAggregating(namespace, name string) bool
	NewAggregator(namespace, name string) (Aggregator, bool)
}

// countStarAggregator implements Aggregator for the built-in count(*),
// which unlike every other aggregate takes no arguments and never
// dispatches through the procedure registry.
type countStarAggregator struct{ n int64 }

func (c *countStarAggregator) Step(args []value.Value, distinct bool) { c.n++ }
func (c *countStarAggregator) Result() (value.Value, error)           { return value.Int(c.n), nil }

// precomputedValue is a synthetic leaf substituted into an expression tree
// in place of an aggregate call once its final value is known, so the
// surrounding non-aggregating structure (e.g. `count(n) + 1`) can be
// evaluated with the ordinary Eval.
type precomputedValue struct{ v value.Value }

func (precomputedValue) exprKind() string { return "precomputedValue" }

// AggregateEval evaluates an expression that contains zero or more
// aggregate leaves (aggregating ProcedureExpression calls, or CountStar)
// by stepping an accumulator per leaf across every row Context in ctxs,
// then substituting the accumulated results back into the tree and
// evaluating what remains with an ordinary Eval. The representative
// Context used for that final Eval is ctxs[0] (the grouping key bindings
// are the same across every row in a group by construction of the
// Aggregation operator), or an empty Context if ctxs is empty.
func AggregateEval(e Expr, ctxs []*Context, procs AggregatingRegistry) (value.Value, error) {
	leaves := collectAggregateLeaves(e, procs)
	if len(leaves) == 0 {
		rep := NewContext(nil)
		if len(ctxs) > 0 {
			rep = ctxs[0]
		}
		return Eval(e, rep, procs)
	}

	accumulators := make([]Aggregator, len(leaves))
	for i, leaf := range leaves {
		if leaf.isCountStar {
			accumulators[i] = &countStarAggregator{}
			continue
		}
		acc, ok := procs.NewAggregator(leaf.inv.Namespace, leaf.inv.Name)
		if !ok {
			return value.Null, &unknownAggregateError{name: leaf.inv.Name}
		}
		accumulators[i] = acc
	}

	for _, ctx := range ctxs {
		for i, leaf := range leaves {
			if leaf.isCountStar {
				accumulators[i].Step(nil, false)
				continue
			}
			args := make([]value.Value, len(leaf.inv.Args))
			for j, a := range leaf.inv.Args {
				v, err := Eval(a, ctx, procs)
				if err != nil {
					return value.Null, err
				}
				args[j] = v
			}
			accumulators[i].Step(args, leaf.inv.Distinct)
		}
	}

	results := make([]value.Value, len(leaves))
	for i, acc := range accumulators {
		v, err := acc.Result()
		if err != nil {
			return value.Null, err
		}
		results[i] = v
	}

	rewritten := substituteAggregateLeaves(e, results, procs)
	rep := NewContext(nil)
	if len(ctxs) > 0 {
		rep = ctxs[0]
	}
	return Eval(rewritten, rep, procs)
}

type unknownAggregateError struct{ name string }

func (e *unknownAggregateError) Error() string { return "expr: unknown aggregating procedure " + e.name }

type aggregateLeaf struct {
	isCountStar bool
	inv         *ProcedureInvocation
}

// collectAggregateLeaves walks e in a fixed, deterministic order (the same
// order substituteAggregateLeaves rewrites in) collecting every aggregate
// leaf. It does not descend into PathExpression steps: an aggregate call
// inside a path pattern is not meaningful Cypher and the planner rejects
// it before AggregateEval ever sees it.
func collectAggregateLeaves(e Expr, procs AggregatingRegistry) []aggregateLeaf {
	var out []aggregateLeaf
	var visit func(Expr)
	visit = func(n Expr) {
		switch t := n.(type) {
		case CountStar:
			out = append(out, aggregateLeaf{isCountStar: true})
		case ProcedureExpression:
			if procs != nil && procs.IsAggregating(t.Invocation.Namespace, t.Invocation.Name) {
				inv := t.Invocation
				out = append(out, aggregateLeaf{inv: &inv})
				return
			}
			for _, a := range t.Invocation.Args {
				visit(a)
			}
		case ListLiteral:
			for _, item := range t.Items {
				visit(item)
			}
		case MapExpression:
			for _, entry := range t.Entries {
				visit(entry.Value)
			}
		case ContainerIndex:
			visit(t.Container)
			visit(t.Index)
		case Property:
			visit(t.Source)
		case Arithmetic:
			visit(t.Left)
			visit(t.Right)
		case Comparison:
			visit(t.Left)
			visit(t.Right)
		case And:
			visit(t.Left)
			visit(t.Right)
		case Or:
			visit(t.Left)
			visit(t.Right)
		case Not:
			visit(t.Operand)
		case Ands:
			for _, op := range t.Operands {
				visit(op)
			}
		case Ors:
			for _, op := range t.Operands {
				visit(op)
			}
		case IsNull:
			visit(t.Operand)
		case IsNotNull:
			visit(t.Operand)
		case StringPredicate:
			visit(t.Left)
			visit(t.Right)
		case In:
			visit(t.Left)
			visit(t.Right)
		case HasLabels:
			visit(t.Operand)
		case CaseExpression:
			if t.Subject != nil {
				visit(t.Subject)
			}
			for _, alt := range t.Alternatives {
				visit(alt.Predicate)
				visit(alt.Result)
			}
			if t.Default != nil {
				visit(t.Default)
			}
		}
	}
	visit(e)
	return out
}

// substituteAggregateLeaves rebuilds e, replacing the k-th aggregate leaf
// (in collectAggregateLeaves order) with a precomputedValue holding
// results[k]. Non-aggregate structure is reconstructed transparently.
func substituteAggregateLeaves(e Expr, results []value.Value, procs AggregatingRegistry) Expr {
	idx := 0
	var rewrite func(Expr) Expr
	rewrite = func(n Expr) Expr {
		switch t := n.(type) {
		case CountStar:
			v := results[idx]
			idx++
			return precomputedValue{v}
		case ProcedureExpression:
			if procs != nil && procs.IsAggregating(t.Invocation.Namespace, t.Invocation.Name) {
				v := results[idx]
				idx++
				return precomputedValue{v}
			}
			inv := t.Invocation
			args := make([]Expr, len(inv.Args))
			for i, a := range inv.Args {
				args[i] = rewrite(a)
			}
			inv.Args = args
			return ProcedureExpression{Invocation: inv}
		case ListLiteral:
			items := make([]Expr, len(t.Items))
			for i, item := range t.Items {
				items[i] = rewrite(item)
			}
			return ListLiteral{Items: items}
		case MapExpression:
			entries := make([]MapEntry, len(t.Entries))
			for i, entry := range t.Entries {
				entries[i] = MapEntry{Key: entry.Key, Value: rewrite(entry.Value)}
			}
			return MapExpression{Entries: entries}
		case ContainerIndex:
			return ContainerIndex{Container: rewrite(t.Container), Index: rewrite(t.Index)}
		case Property:
			return Property{Source: rewrite(t.Source), Key: t.Key}
		case Arithmetic:
			return Arithmetic{Op: t.Op, Left: rewrite(t.Left), Right: rewrite(t.Right)}
		case Comparison:
			return Comparison{Op: t.Op, Left: rewrite(t.Left), Right: rewrite(t.Right)}
		case And:
			return And{Left: rewrite(t.Left), Right: rewrite(t.Right)}
		case Or:
			return Or{Left: rewrite(t.Left), Right: rewrite(t.Right)}
		case Not:
			return Not{Operand: rewrite(t.Operand)}
		case Ands:
			ops := make([]Expr, len(t.Operands))
			for i, op := range t.Operands {
				ops[i] = rewrite(op)
			}
			return Ands{Operands: ops}
		case Ors:
			ops := make([]Expr, len(t.Operands))
			for i, op := range t.Operands {
				ops[i] = rewrite(op)
			}
			return Ors{Operands: ops}
		case IsNull:
			return IsNull{Operand: rewrite(t.Operand)}
		case IsNotNull:
			return IsNotNull{Operand: rewrite(t.Operand)}
		case StringPredicate:
			return StringPredicate{Op: t.Op, Left: rewrite(t.Left), Right: rewrite(t.Right)}
		case In:
			return In{Left: rewrite(t.Left), Right: rewrite(t.Right)}
		case HasLabels:
			return HasLabels{Operand: rewrite(t.Operand), Labels: t.Labels}
		case CaseExpression:
			var subject Expr
			if t.Subject != nil {
				subject = rewrite(t.Subject)
			}
			alts := make([]CaseAlternative, len(t.Alternatives))
			for i, alt := range t.Alternatives {
				alts[i] = CaseAlternative{Predicate: rewrite(alt.Predicate), Result: rewrite(alt.Result)}
			}
			var def Expr
			if t.Default != nil {
				def = rewrite(t.Default)
			}
			return CaseExpression{Subject: subject, Alternatives: alts, Default: def}
		default:
			return n
		}
	}
	return rewrite(e)
}
