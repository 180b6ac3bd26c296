package procedure

import (
	"math"
	"math/rand"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

func asFloatArg(op string, v value.Value) (float64, error) {
	f, ok := v.AsFloat64()
	if !ok {
		return 0, cerr.New(op, cerr.KindTypeMismatch, op+"() requires a numeric argument")
	}
	return f, nil
}

func fnAbs(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	if i, ok := args[0].AsInt(); ok {
		if i < 0 {
			i = -i
		}
		return value.Int(i), nil
	}
	f, err := asFloatArg("abs", args[0])
	if err != nil {
		return value.Null, err
	}
	return value.Float(math.Abs(f)), nil
}

func fnCeil(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	f, err := asFloatArg("ceil", args[0])
	if err != nil {
		return value.Null, err
	}
	return value.Float(math.Ceil(f)), nil
}

func fnFloor(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	f, err := asFloatArg("floor", args[0])
	if err != nil {
		return value.Null, err
	}
	return value.Float(math.Floor(f)), nil
}

func fnRound(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	f, err := asFloatArg("round", args[0])
	if err != nil {
		return value.Null, err
	}
	precision := int64(0)
	if len(args) == 2 {
		p, ok := args[1].AsInt()
		if !ok || p < 0 {
			return value.Null, cerr.New("round", cerr.KindInvalidArgument, "round() precision must be a non-negative integer")
		}
		precision = p
	}
	scale := math.Pow(10, float64(precision))
	return value.Float(math.Round(f*scale) / scale), nil
}

func fnSign(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	f, err := asFloatArg("sign", args[0])
	if err != nil {
		return value.Null, err
	}
	switch {
	case f > 0:
		return value.Int(1), nil
	case f < 0:
		return value.Int(-1), nil
	default:
		return value.Int(0), nil
	}
}

func fnRand(args []value.Value) (value.Value, error) {
	return value.Float(rand.Float64()), nil
}

func registerNumericFuncs(r *Registry) {
	must(r.Register(&Func{Name: "abs", MinArgs: 1, MaxArgs: 1, Call: fnAbs}))
	must(r.Register(&Func{Name: "ceil", MinArgs: 1, MaxArgs: 1, Call: fnCeil}))
	must(r.Register(&Func{Name: "floor", MinArgs: 1, MaxArgs: 1, Call: fnFloor}))
	must(r.Register(&Func{Name: "round", MinArgs: 1, MaxArgs: 2, Call: fnRound}))
	must(r.Register(&Func{Name: "sign", MinArgs: 1, MaxArgs: 1, Call: fnSign}))
	must(r.Register(&Func{Name: "rand", MinArgs: 0, MaxArgs: 0, Call: fnRand}))
}
