package expr

import (
	"fmt"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// Registry is the subset of pkg/procedure's Registry that eval needs, kept
// as a local interface to avoid an import cycle (procedure evaluates its
// aggregate step arguments via expr, so expr cannot import procedure).
type Registry interface {
	Call(namespace, name string, args []value.Value, distinct bool) (value.Value, error)
}

// Eval evaluates a non-aggregating expression against a row Context.
// Aggregating procedure calls (count, sum, collect, ...) and CountStar are
// rejected here with NonAggregatingInAggregateContext-flavored errors
// pointed the other way: they belong to AggregateEval, not Eval. Whether an
// expression tree containing one is legal at all is decided at planning
// time; Eval simply refuses to evaluate them itself.
func Eval(e Expr, ctx *Context, procs Registry) (value.Value, error) {
	switch n := e.(type) {
	case IntegerLiteral:
		return value.Int(n.Value), nil
	case DoubleLiteral:
		return value.Float(n.Value), nil
	case StringLiteral:
		return value.Str(n.Value), nil
	case BooleanLiteral:
		return value.Bool(n.Value), nil
	case NullLiteral:
		return value.Null, nil

	case ListLiteral:
		items := make([]value.Value, len(n.Items))
		for i, item := range n.Items {
			v, err := Eval(item, ctx, procs)
			if err != nil {
				return value.Null, err
			}
			items[i] = v
		}
		return value.List(items), nil

	case MapExpression:
		m := value.NewOrderedMap()
		for _, entry := range n.Entries {
			v, err := Eval(entry.Value, ctx, procs)
			if err != nil {
				return value.Null, err
			}
			m.Set(entry.Key, v)
		}
		return value.Map(m), nil

	case Variable:
		v, ok := ctx.Var(n.Name)
		if !ok {
			return value.Null, cerr.New("Eval", cerr.KindUnboundVariable, n.Name)
		}
		return v, nil

	case Parameter:
		v, ok := ctx.Param(n.Name)
		if !ok {
			return value.Null, cerr.New("Eval", cerr.KindUnknownParameter, n.Name)
		}
		return v, nil

	case Property:
		return evalProperty(n, ctx, procs)

	case ContainerIndex:
		return evalContainerIndex(n, ctx, procs)

	case Arithmetic:
		return evalArithmetic(n, ctx, procs)

	case Comparison:
		return evalComparison(n, ctx, procs)

	case And:
		return evalAnd(n.Left, n.Right, ctx, procs)
	case Or:
		return evalOr(n.Left, n.Right, ctx, procs)
	case Not:
		return evalNot(n.Operand, ctx, procs)
	case Ands:
		return evalAndsOrs(n.Operands, true, ctx, procs)
	case Ors:
		return evalAndsOrs(n.Operands, false, ctx, procs)

	case IsNull:
		v, err := Eval(n.Operand, ctx, procs)
		if err != nil {
			return value.Null, err
		}
		return value.Bool(v.IsNull()), nil

	case IsNotNull:
		v, err := Eval(n.Operand, ctx, procs)
		if err != nil {
			return value.Null, err
		}
		return value.Bool(!v.IsNull()), nil

	case StringPredicate:
		return evalStringPredicate(n, ctx, procs)

	case In:
		return evalIn(n, ctx, procs)

	case HasLabels:
		return evalHasLabels(n, ctx, procs)

	case PathExpression:
		return evalPathExpression(n, ctx, procs)

	case ProcedureExpression:
		return evalProcedure(n, ctx, procs)

	case CaseExpression:
		return evalCase(n, ctx, procs)

	case CountStar:
		return value.Null, cerr.New("Eval", cerr.KindNonAggregatingInAggregateContext, "count(*) requires an aggregating context")

	case precomputedValue:
		return n.v, nil

	default:
		return value.Null, fmt.Errorf("expr: unhandled expression node %T", e)
	}
}

func evalProperty(n Property, ctx *Context, procs Registry) (value.Value, error) {
	src, err := Eval(n.Source, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	return propertyOf(src, n.Key)
}

// propertyOf looks up a single named component of an already-evaluated
// value: a property on a node/relationship/map, or a temporal accessor.
// Shared by Property and the string-keyed form of ContainerIndex.
func propertyOf(src value.Value, key string) (value.Value, error) {
	if src.IsNull() {
		return value.Null, nil
	}
	switch src.Kind() {
	case value.KindNode:
		node, _ := src.AsNode()
		v, ok := node.Properties.Get(key)
		if !ok {
			return value.Null, nil
		}
		return v, nil
	case value.KindRel:
		rel, _ := src.AsRel()
		v, ok := rel.Properties.Get(key)
		if !ok {
			return value.Null, nil
		}
		return v, nil
	case value.KindMap:
		m, _ := src.AsMap()
		v, ok := m.Get(key)
		if !ok {
			return value.Null, nil
		}
		return v, nil
	case value.KindTemporal:
		t, _ := src.AsTemporal()
		return t.Accessor(key)
	default:
		return value.Null, cerr.New("Eval", cerr.KindTypeMismatch, fmt.Sprintf("cannot access property %q on %s", key, src.TypeOf()))
	}
}

func evalContainerIndex(n ContainerIndex, ctx *Context, procs Registry) (value.Value, error) {
	container, err := Eval(n.Container, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	idx, err := Eval(n.Index, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	if container.IsNull() || idx.IsNull() {
		return value.Null, nil
	}

	switch container.Kind() {
	case value.KindList:
		items, _ := container.AsList()
		i, ok := idx.AsInt()
		if !ok {
			return value.Null, cerr.New("Eval", cerr.KindTypeMismatch, "list index must be an integer")
		}
		if i < 0 {
			i += int64(len(items))
		}
		if i < 0 || i >= int64(len(items)) {
			return value.Null, nil
		}
		return items[i], nil

	case value.KindMap, value.KindNode, value.KindRel:
		key, ok := idx.AsString()
		if !ok {
			return value.Null, cerr.New("Eval", cerr.KindTypeMismatch, "map/entity index must be a string")
		}
		return propertyOf(container, key)

	default:
		return value.Null, cerr.New("Eval", cerr.KindTypeMismatch, fmt.Sprintf("cannot index into %s", container.TypeOf()))
	}
}
