package expr

import (
	"math"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

func evalArithmetic(n Arithmetic, ctx *Context, procs Registry) (value.Value, error) {
	lv, err := Eval(n.Left, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	rv, err := Eval(n.Right, ctx, procs)
	if err != nil {
		return value.Null, err
	}

	// String concatenation piggybacks on OpAdd when either side is a
	// string or a list, matching Cypher's overloaded `+`.
	if n.Op == OpAdd {
		if lv.Kind() == value.KindString || rv.Kind() == value.KindString {
			return concatString(lv, rv)
		}
		if lv.Kind() == value.KindList || rv.Kind() == value.KindList {
			return concatList(lv, rv), nil
		}
	}

	if lv.IsNull() || rv.IsNull() {
		return value.Null, nil
	}
	if !lv.IsNumeric() || !rv.IsNumeric() {
		return value.Null, cerr.New("Eval", cerr.KindTypeMismatch, "arithmetic operand is not numeric")
	}

	// Integer-integer arithmetic stays integral except for division and
	// power, which are always performed as floating point.
	li, lIsInt := lv.AsInt()
	ri, rIsInt := rv.AsInt()
	bothInt := lIsInt && rIsInt && n.Op != OpDivide && n.Op != OpPower

	if bothInt {
		switch n.Op {
		case OpAdd:
			return value.Int(li + ri), nil
		case OpSubtract:
			return value.Int(li - ri), nil
		case OpMultiply:
			return value.Int(li * ri), nil
		case OpModulo:
			if ri == 0 {
				return value.Null, cerr.New("Eval", cerr.KindInvalidArgument, "modulo by zero")
			}
			return value.Int(li % ri), nil
		}
	}

	lf, _ := lv.AsFloat64()
	rf, _ := rv.AsFloat64()
	switch n.Op {
	case OpAdd:
		return value.Float(lf + rf), nil
	case OpSubtract:
		return value.Float(lf - rf), nil
	case OpMultiply:
		return value.Float(lf * rf), nil
	case OpDivide:
		if rf == 0 {
			return value.Null, cerr.New("Eval", cerr.KindInvalidArgument, "division by zero")
		}
		return value.Float(lf / rf), nil
	case OpModulo:
		return value.Float(math.Mod(lf, rf)), nil
	case OpPower:
		return value.Float(math.Pow(lf, rf)), nil
	default:
		return value.Null, cerr.New("Eval", cerr.KindInvalidArgument, "unknown arithmetic operator")
	}
}

func concatString(lv, rv value.Value) (value.Value, error) {
	if lv.IsNull() || rv.IsNull() {
		return value.Null, nil
	}
	return value.Str(lv.String() + rv.String()), nil
}

func concatList(lv, rv value.Value) value.Value {
	var items []value.Value
	if l, ok := lv.AsList(); ok {
		items = append(items, l...)
	} else if !lv.IsNull() {
		items = append(items, lv)
	}
	if r, ok := rv.AsList(); ok {
		items = append(items, r...)
	} else if !rv.IsNull() {
		items = append(items, rv)
	}
	return value.List(items)
}

func evalComparison(n Comparison, ctx *Context, procs Registry) (value.Value, error) {
	lv, err := Eval(n.Left, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	rv, err := Eval(n.Right, ctx, procs)
	if err != nil {
		return value.Null, err
	}

	switch n.Op {
	case OpEquals:
		eq, ok := value.Equal(lv, rv)
		if !ok {
			return value.Null, nil
		}
		return value.Bool(eq), nil
	case OpNotEquals:
		eq, ok := value.Equal(lv, rv)
		if !ok {
			return value.Null, nil
		}
		return value.Bool(!eq), nil
	default:
		ord, ok := value.Compare(lv, rv)
		if !ok {
			return value.Null, nil
		}
		switch n.Op {
		case OpGreaterThan:
			return value.Bool(ord == value.OrderGreater), nil
		case OpGreaterThanOrEqual:
			return value.Bool(ord != value.OrderLess), nil
		case OpLessThan:
			return value.Bool(ord == value.OrderLess), nil
		case OpLessThanOrEqual:
			return value.Bool(ord != value.OrderGreater), nil
		default:
			return value.Null, cerr.New("Eval", cerr.KindInvalidArgument, "unknown comparison operator")
		}
	}
}
