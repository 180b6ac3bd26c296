package expr

import "github.com/lattixdb/cyphercore/pkg/value"

// Cypher boolean operators use Kleene three-valued logic: Null behaves as
// "unknown", so `false AND null` is false (a known-false operand short
// circuits regardless of the other side) but `true AND null` is null.

func evalAnd(left, right Expr, ctx *Context, procs Registry) (value.Value, error) {
	lv, err := Eval(left, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	if b, ok := lv.AsBool(); ok && !b {
		return value.Bool(false), nil
	}
	rv, err := Eval(right, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	if b, ok := rv.AsBool(); ok && !b {
		return value.Bool(false), nil
	}
	lb, lok := lv.AsBool()
	rb, rok := rv.AsBool()
	if lok && rok {
		return value.Bool(lb && rb), nil
	}
	return value.Null, nil
}

func evalOr(left, right Expr, ctx *Context, procs Registry) (value.Value, error) {
	lv, err := Eval(left, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	if b, ok := lv.AsBool(); ok && b {
		return value.Bool(true), nil
	}
	rv, err := Eval(right, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	if b, ok := rv.AsBool(); ok && b {
		return value.Bool(true), nil
	}
	lb, lok := lv.AsBool()
	rb, rok := rv.AsBool()
	if lok && rok {
		return value.Bool(lb || rb), nil
	}
	return value.Null, nil
}

func evalNot(operand Expr, ctx *Context, procs Registry) (value.Value, error) {
	v, err := Eval(operand, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	b, ok := v.AsBool()
	if !ok {
		return value.Null, nil
	}
	return value.Bool(!b), nil
}

// evalAndsOrs folds a flat list of operands the same way nested And/Or
// would, but without building the intermediate binary tree; conjunction
// picks the short-circuit-on-false-and-null-propagate rule, disjunction
// its mirror.
func evalAndsOrs(operands []Expr, conjunction bool, ctx *Context, procs Registry) (value.Value, error) {
	sawNull := false
	for _, op := range operands {
		v, err := Eval(op, ctx, procs)
		if err != nil {
			return value.Null, err
		}
		b, ok := v.AsBool()
		if !ok {
			sawNull = true
			continue
		}
		if conjunction && !b {
			return value.Bool(false), nil
		}
		if !conjunction && b {
			return value.Bool(true), nil
		}
	}
	if sawNull {
		return value.Null, nil
	}
	return value.Bool(conjunction), nil
}

func evalIn(n In, ctx *Context, procs Registry) (value.Value, error) {
	lv, err := Eval(n.Left, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	rv, err := Eval(n.Right, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	if rv.IsNull() {
		return value.Null, nil
	}
	items, ok := rv.AsList()
	if !ok {
		return value.Null, nil
	}
	sawNull := lv.IsNull()
	for _, item := range items {
		eq, eok := value.Equal(lv, item)
		if !eok {
			sawNull = true
			continue
		}
		if eq {
			return value.Bool(true), nil
		}
	}
	if sawNull {
		return value.Null, nil
	}
	return value.Bool(false), nil
}

func evalHasLabels(n HasLabels, ctx *Context, procs Registry) (value.Value, error) {
	v, err := Eval(n.Operand, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	if v.IsNull() {
		return value.Null, nil
	}
	node, ok := v.AsNode()
	if !ok {
		return value.Bool(false), nil
	}
	for _, label := range n.Labels {
		if !node.HasLabel(label) {
			return value.Bool(false), nil
		}
	}
	return value.Bool(true), nil
}

func evalCase(n CaseExpression, ctx *Context, procs Registry) (value.Value, error) {
	var subject value.Value
	hasSubject := n.Subject != nil
	if hasSubject {
		v, err := Eval(n.Subject, ctx, procs)
		if err != nil {
			return value.Null, err
		}
		subject = v
	}

	for _, alt := range n.Alternatives {
		if hasSubject {
			cmp, err := Eval(alt.Predicate, ctx, procs)
			if err != nil {
				return value.Null, err
			}
			eq, ok := value.Equal(subject, cmp)
			if !ok || !eq {
				continue
			}
		} else {
			cond, err := Eval(alt.Predicate, ctx, procs)
			if err != nil {
				return value.Null, err
			}
			b, ok := cond.AsBool()
			if !ok || !b {
				continue
			}
		}
		return Eval(alt.Result, ctx, procs)
	}

	if n.Default != nil {
		return Eval(n.Default, ctx, procs)
	}
	return value.Null, nil
}

func evalProcedure(n ProcedureExpression, ctx *Context, procs Registry) (value.Value, error) {
	args := make([]value.Value, len(n.Invocation.Args))
	for i, a := range n.Invocation.Args {
		v, err := Eval(a, ctx, procs)
		if err != nil {
			return value.Null, err
		}
		args[i] = v
	}
	return procs.Call(n.Invocation.Namespace, n.Invocation.Name, args, n.Invocation.Distinct)
}
