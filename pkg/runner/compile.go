// Package runner ties pkg/cypherparse and pkg/plan together: it compiles
// a parsed Statement into a physical operator tree, runs pkg/plan.Optimize
// over it, executes it against a graphmodel.Write, and reports results
// through one CompileQuery -> plan.Optimize -> execute pipeline.
package runner

import (
	"strconv"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/cypherparse"
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/plan"
	"github.com/lattixdb/cyphercore/pkg/types"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// compiler holds the per-compilation state a single Statement's clauses
// share: the run's parameters/procedures (for evaluating pattern property
// filters and SKIP/LIMIT bounds at plan-build time, before any row
// exists) and a counter for naming pattern elements the query text left
// anonymous.
type compiler struct {
	params  map[string]value.Value
	procs   expr.AggregatingRegistry
	anonSeq int
}

func newCompiler(ctx *plan.Context) *compiler {
	return &compiler{params: ctx.Params, procs: ctx.Procs}
}

func (c *compiler) anon(prefix string) string {
	c.anonSeq++
	return prefix + strconv.Itoa(c.anonSeq)
}

func (c *compiler) exprCtx() *expr.Context { return expr.NewContext(c.params) }

func (c *compiler) evalStatic(e expr.Expr) (value.Value, error) {
	if e == nil {
		return value.Null, nil
	}
	return expr.Eval(e, c.exprCtx(), c.procs)
}

func (c *compiler) evalStaticInt(e expr.Expr, what string) (int, error) {
	v, err := c.evalStatic(e)
	if err != nil {
		return 0, err
	}
	n, ok := v.AsInt()
	if !ok {
		return 0, cerr.New("runner.compile", cerr.KindTypeMismatch, what+" must evaluate to an integer")
	}
	return int(n), nil
}

func (c *compiler) evalStaticProps(props map[string]expr.Expr) (map[string]value.Value, error) {
	if len(props) == 0 {
		return nil, nil
	}
	out := make(map[string]value.Value, len(props))
	for k, e := range props {
		v, err := c.evalStatic(e)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// CompileQuery compiles one parsed cypherparse.Query into a physical
// operator tree per QueryPart, joined by Union/UnionAll the way the
// parser recorded them.
func CompileQuery(q *cypherparse.Query, ctx *plan.Context) (plan.Operator, error) {
	c := newCompiler(ctx)
	op, err := c.compileQueryPart(q.Parts[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(q.Parts); i++ {
		rhs, err := c.compileQueryPart(q.Parts[i])
		if err != nil {
			return nil, err
		}
		op, err = plan.NewUnion(op, rhs, q.UnionAll[i-1])
		if err != nil {
			return nil, err
		}
	}
	return op, nil
}

func (c *compiler) compileQueryPart(part cypherparse.QueryPart) (plan.Operator, error) {
	var op plan.Operator = plan.NewUnit()
	bound := false

	for _, clause := range part.Clauses {
		var err error
		switch cl := clause.(type) {
		case cypherparse.MatchClause:
			op, bound, err = c.compileMatch(cl, op, bound)
		case cypherparse.WithClause:
			op, err = c.compileWith(cl, op)
		case cypherparse.ReturnClause:
			op, err = c.compileReturn(cl, op)
		case cypherparse.CreateClause:
			op, err = c.compileCreate(cl, op)
			bound = true
		case cypherparse.MergeClause:
			op, err = c.compileMerge(cl, op)
			bound = true
		case cypherparse.SetClause:
			op, err = c.compileSet(cl, op)
		case cypherparse.DeleteClause:
			op, err = c.compileDelete(cl, op)
		case cypherparse.UnwindClause:
			op = plan.NewUnwind(op, cl.Expr, cl.Alias)
			bound = true
		default:
			err = cerr.New("runner.compile", cerr.KindSyntaxError, "unsupported clause")
		}
		if err != nil {
			return nil, err
		}
	}
	return op, nil
}

// buildMatchChain compiles one MatchClause's patterns into a fresh
// operator tree: patterns within the same clause combine via a cross
// join (this parser does not unify a shared variable across independent
// patterns in one MATCH), and the clause's WHERE (if any) filters the
// combined result.
func (c *compiler) buildMatchChain(m cypherparse.MatchClause) (plan.Operator, error) {
	var chain plan.Operator
	for i, pat := range m.Patterns {
		patOp, err := c.compilePattern(pat)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			chain = patOp
			continue
		}
		pat := pat
		chain = plan.NewApply(chain, func() plan.Operator {
			// Already validated by the compilePattern call above this loop
			// iteration; a second failure here is unreachable in practice
			// since static property expressions don't depend on row data.
			op, err := c.compilePattern(pat)
			if err != nil {
				return plan.NewUnit()
			}
			return op
		})
	}
	if m.Where != nil {
		chain = plan.NewFilter(chain, m.Where)
	}
	return chain, nil
}

func (c *compiler) compileMatch(m cypherparse.MatchClause, op plan.Operator, bound bool) (plan.Operator, bool, error) {
	if !bound {
		chain, err := c.buildMatchChain(m)
		if err != nil {
			return nil, false, err
		}
		return chain, true, nil
	}
	if m.Optional {
		return plan.NewOuterApply(op, func() plan.Operator {
			chain, err := c.buildMatchChain(m)
			if err != nil {
				return plan.NewUnit()
			}
			return chain
		}), true, nil
	}
	return plan.NewApply(op, func() plan.Operator {
		chain, err := c.buildMatchChain(m)
		if err != nil {
			return plan.NewUnit()
		}
		return chain
	}), true, nil
}

// compilePattern turns one path pattern into a NodeScan/Expand chain,
// wrapping each hop in a Filter when the pattern names labels or property
// constraints Expand itself has no way to apply to its "to" side.
func (c *compiler) compilePattern(pat cypherparse.Pattern) (plan.Operator, error) {
	first := pat.Nodes[0]
	variable := first.Variable
	if variable == "" {
		variable = c.anon("_node")
	}
	props, err := c.evalStaticProps(first.Properties)
	if err != nil {
		return nil, err
	}
	var op plan.Operator = plan.NewNodeScan(variable, first.Labels, props)

	prevVar := variable
	for i, rel := range pat.Rels {
		relVar := rel.Variable
		if relVar == "" {
			relVar = c.anon("_rel")
		}
		toNode := pat.Nodes[i+1]
		toVar := toNode.Variable
		if toVar == "" {
			toVar = c.anon("_node")
		}
		dir := graphmodel.Either
		switch {
		case rel.Outgoing && !rel.Incoming:
			dir = graphmodel.Outgoing
		case rel.Incoming && !rel.Outgoing:
			dir = graphmodel.Incoming
		}
		op = plan.NewExpand(op, prevVar, relVar, toVar, dir, rel.Types, rel.MinHops, rel.MaxHops)

		if pred := nodeConstraintPredicate(toVar, toNode); pred != nil {
			op = plan.NewFilter(op, pred)
		}
		if len(rel.Properties) > 0 && rel.MinHops == 1 && rel.MaxHops == 1 {
			if pred := propertyEqualityPredicate(relVar, rel.Properties); pred != nil {
				op = plan.NewFilter(op, pred)
			}
		}
		prevVar = toVar
	}
	return op, nil
}

// nodeConstraintPredicate builds the HasLabels/property-equality
// conjunction Expand's "to" side needs (Expand only filters by
// relationship type, not by the destination node's labels/properties).
func nodeConstraintPredicate(variable string, n cypherparse.NodePattern) expr.Expr {
	var pred expr.Expr
	if len(n.Labels) > 0 {
		pred = expr.HasLabels{Operand: expr.Variable{Name: variable}, Labels: n.Labels}
	}
	if propPred := propertyEqualityPredicate(variable, n.Properties); propPred != nil {
		if pred == nil {
			pred = propPred
		} else {
			pred = expr.And{Left: pred, Right: propPred}
		}
	}
	return pred
}

func propertyEqualityPredicate(variable string, props map[string]expr.Expr) expr.Expr {
	var pred expr.Expr
	for key, val := range props {
		cmp := expr.Comparison{
			Op:    expr.OpEquals,
			Left:  expr.Property{Source: expr.Variable{Name: variable}, Key: key},
			Right: val,
		}
		if pred == nil {
			pred = cmp
		} else {
			pred = expr.And{Left: pred, Right: cmp}
		}
	}
	return pred
}

func containsAggregate(e expr.Expr, procs expr.AggregatingRegistry) bool {
	switch t := e.(type) {
	case expr.CountStar:
		return true
	case expr.ProcedureExpression:
		if procs != nil && procs.IsAggregating(t.Invocation.Namespace, t.Invocation.Name) {
			return true
		}
		for _, a := range t.Invocation.Args {
			if containsAggregate(a, procs) {
				return true
			}
		}
		return false
	case expr.Arithmetic:
		return containsAggregate(t.Left, procs) || containsAggregate(t.Right, procs)
	case expr.Comparison:
		return containsAggregate(t.Left, procs) || containsAggregate(t.Right, procs)
	case expr.Not:
		return containsAggregate(t.Operand, procs)
	default:
		return false
	}
}

func toProjectItems(items []cypherparse.ProjectionItem) []frame.ProjectItem {
	out := make([]frame.ProjectItem, len(items))
	for i, it := range items {
		out[i] = frame.ProjectItem{Alias: it.Alias, Expr: it.Expr}
	}
	return out
}

func toOrderKeys(items []cypherparse.OrderItem) []frame.OrderKey {
	out := make([]frame.OrderKey, len(items))
	for i, it := range items {
		out[i] = frame.OrderKey{Expr: it.Expr, Descending: it.Descending}
	}
	return out
}

// compileProjection builds either a plain Project/With pipeline or, when
// any item contains an aggregate call, an Aggregation splitting items into
// grouping keys (the non-aggregating items) and aggregations.
func (c *compiler) compileProjection(op plan.Operator, items []cypherparse.ProjectionItem, distinct bool, orderBy []cypherparse.OrderItem, skipExpr, limitExpr expr.Expr) (plan.Operator, error) {
	isAgg := false
	for _, it := range items {
		if containsAggregate(it.Expr, c.procs) {
			isAgg = true
			break
		}
	}

	var projected plan.Operator
	if isAgg {
		var groupings, aggregations []frame.ProjectItem
		for _, it := range items {
			pi := frame.ProjectItem{Alias: it.Alias, Expr: it.Expr}
			if containsAggregate(it.Expr, c.procs) {
				aggregations = append(aggregations, pi)
			} else {
				groupings = append(groupings, pi)
			}
		}
		projected = plan.NewAggregation(op, groupings, aggregations)
	} else {
		p, err := plan.NewProject(op, toProjectItems(items))
		if err != nil {
			return nil, err
		}
		projected = p
	}

	if len(orderBy) > 0 {
		projected = plan.NewOrderBy(projected, toOrderKeys(orderBy))
	}
	if distinct {
		projected = plan.NewDistinct(projected)
	}
	if skipExpr != nil {
		n, err := c.evalStaticInt(skipExpr, "SKIP")
		if err != nil {
			return nil, err
		}
		projected = plan.NewSkip(projected, n)
	}
	if limitExpr != nil {
		n, err := c.evalStaticInt(limitExpr, "LIMIT")
		if err != nil {
			return nil, err
		}
		projected = plan.NewLimit(projected, n)
	}
	return projected, nil
}

func (c *compiler) compileWith(w cypherparse.WithClause, op plan.Operator) (plan.Operator, error) {
	projected, err := c.compileProjection(op, w.Items, false, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	if w.Where != nil {
		projected = plan.NewFilter(projected, w.Where)
	}
	if len(w.OrderBy) > 0 {
		projected = plan.NewOrderBy(projected, toOrderKeys(w.OrderBy))
	}
	if w.Distinct {
		projected = plan.NewDistinct(projected)
	}
	if w.Skip != nil {
		n, err := c.evalStaticInt(w.Skip, "SKIP")
		if err != nil {
			return nil, err
		}
		projected = plan.NewSkip(projected, n)
	}
	if w.Limit != nil {
		n, err := c.evalStaticInt(w.Limit, "LIMIT")
		if err != nil {
			return nil, err
		}
		projected = plan.NewLimit(projected, n)
	}
	return projected, nil
}

func (c *compiler) compileReturn(r cypherparse.ReturnClause, op plan.Operator) (plan.Operator, error) {
	return c.compileProjection(op, r.Items, r.Distinct, r.OrderBy, r.Skip, r.Limit)
}

// compileCreate flattens every pattern in the clause into one
// CreateElements call per input row, resolving relationship endpoints
// against nodes created earlier in the same clause or against variables
// already bound by an earlier clause.
func (c *compiler) compileCreate(cl cypherparse.CreateClause, op plan.Operator) (plan.Operator, error) {
	schema := op.Schema()
	var nodes []plan.NodeCreateSpec
	var rels []plan.RelCreateSpec

	for _, pat := range cl.Patterns {
		existing := make([]bool, len(pat.Nodes))
		localIdx := make([]int, len(pat.Nodes))
		for i, n := range pat.Nodes {
			if n.Variable != "" && schema.IndexOf(n.Variable) >= 0 && len(n.Labels) == 0 && len(n.Properties) == 0 {
				existing[i] = true
				continue
			}
			nodes = append(nodes, plan.NodeCreateSpec{Variable: n.Variable, Labels: n.Labels, Properties: n.Properties})
			localIdx[i] = len(nodes) - 1
		}
		for i, r := range pat.Rels {
			relType := ""
			if len(r.Types) > 0 {
				relType = r.Types[0]
			}
			spec := plan.RelCreateSpec{Variable: r.Variable, Type: relType, Properties: r.Properties, StartIndex: -1, EndIndex: -1}
			if existing[i] {
				spec.ExistingStartVar = pat.Nodes[i].Variable
			} else {
				spec.StartIndex = localIdx[i]
			}
			if existing[i+1] {
				spec.ExistingEndVar = pat.Nodes[i+1].Variable
			} else {
				spec.EndIndex = localIdx[i+1]
			}
			rels = append(rels, spec)
		}
	}
	return plan.NewCreate(op, nodes, rels), nil
}

func (c *compiler) compileMerge(cl cypherparse.MergeClause, op plan.Operator) (plan.Operator, error) {
	if len(cl.Pattern.Nodes) != 1 {
		return nil, cerr.New("runner.compile", cerr.KindSyntaxError, "MERGE supports a single node pattern")
	}
	n := cl.Pattern.Nodes[0]
	onCreate := setItemsFor(n.Variable, cl.OnCreate)
	onMatch := setItemsFor(n.Variable, cl.OnMatch)
	return plan.NewMerge(op, n.Variable, n.Labels, n.Properties, onCreate, onMatch), nil
}

func setItemsFor(variable string, items []cypherparse.SetItem) map[string]expr.Expr {
	out := map[string]expr.Expr{}
	for _, it := range items {
		if it.Variable == variable {
			out[it.Key] = it.Value
		}
	}
	return out
}

func (c *compiler) compileSet(cl cypherparse.SetClause, op plan.Operator) (plan.Operator, error) {
	for _, item := range cl.Items {
		isRel := isRelationshipVar(op.Schema(), item.Variable)
		op = plan.NewSetProperty(op, item.Variable, isRel, item.Key, item.Value)
	}
	return op, nil
}

func (c *compiler) compileDelete(cl cypherparse.DeleteClause, op plan.Operator) (plan.Operator, error) {
	for _, v := range cl.Variables {
		isRel := isRelationshipVar(op.Schema(), v)
		op = plan.NewDelete(op, v, isRel, cl.Detach)
	}
	return op, nil
}

func isRelationshipVar(schema frame.Schema, variable string) bool {
	i := schema.IndexOf(variable)
	if i < 0 {
		return false
	}
	return schema.Columns()[i].Type.Kind() == types.KindRelationship
}
