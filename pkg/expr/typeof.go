package expr

import "github.com/lattixdb/cyphercore/pkg/types"

// Env resolves the static type of a bound variable or parameter, letting
// TypeOf infer without evaluating (used by the planner to validate
// projections before a single row has flowed).
type Env interface {
	VarType(name string) (types.Type, bool)
	ParamType(name string) (types.Type, bool)
}

// TypeOf infers the static Cypher type of an expression tree. It is
// intentionally conservative: anything it cannot pin down (procedure
// results, case default fallthrough, path steps) reports types.Any rather
// than guessing.
func TypeOf(e Expr, env Env) types.Type {
	switch n := e.(type) {
	case IntegerLiteral:
		return types.Integer
	case DoubleLiteral:
		return types.Float
	case StringLiteral:
		return types.String
	case BooleanLiteral:
		return types.Boolean
	case NullLiteral:
		return types.Null
	case ListLiteral:
		if len(n.Items) == 0 {
			return types.List(types.Any)
		}
		return types.List(TypeOf(n.Items[0], env))
	case MapExpression:
		return types.Map
	case Variable:
		if t, ok := env.VarType(n.Name); ok {
			return t
		}
		return types.Any
	case Parameter:
		if t, ok := env.ParamType(n.Name); ok {
			return t
		}
		return types.Any
	case Property:
		return types.Any
	case ContainerIndex:
		containerType := TypeOf(n.Container, env)
		if containerType.Kind() == types.KindList {
			return containerType.Elem()
		}
		return types.Any
	case Arithmetic:
		return typeOfArithmetic(n, env)
	case Comparison, And, Or, Not, Ands, Ors, IsNull, IsNotNull, StringPredicate, In, HasLabels:
		return types.Boolean
	case PathExpression:
		return types.Path
	case ProcedureExpression:
		return typeOfProcedure(n, env)
	case CaseExpression:
		if n.Default != nil {
			return TypeOf(n.Default, env)
		}
		return types.Any
	case CountStar:
		return types.Integer
	default:
		return types.Any
	}
}

// typeOfProcedure special-cases the handful of stdlib procedures whose
// return type is knowable statically from their call site rather than
// their arguments' runtime values; every other procedure (including any
// user-registered one) reports types.Any, since the registry gives no
// static return-type contract to consult.
func typeOfProcedure(n ProcedureExpression, env Env) types.Type {
	inv := n.Invocation
	if inv.Namespace != "" {
		return types.Any
	}
	switch inv.Name {
	case "collect":
		if len(inv.Args) == 0 {
			return types.List(types.Any)
		}
		return types.List(TypeOf(inv.Args[0], env))
	case "id":
		return types.Integer
	default:
		return types.Any
	}
}

func typeOfArithmetic(n Arithmetic, env Env) types.Type {
	lt := TypeOf(n.Left, env)
	rt := TypeOf(n.Right, env)
	if n.Op == OpAdd {
		if lt.Kind() == types.KindString || rt.Kind() == types.KindString {
			return types.String
		}
		if lt.Kind() == types.KindList {
			return lt
		}
		if rt.Kind() == types.KindList {
			return rt
		}
	}
	if n.Op == OpDivide || n.Op == OpPower {
		return types.Float
	}
	if lt.Kind() == types.KindInteger && rt.Kind() == types.KindInteger {
		return types.Integer
	}
	if lt.IsNumeric() && rt.IsNumeric() {
		return types.Float
	}
	return types.Number
}
