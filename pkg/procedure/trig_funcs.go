package procedure

import (
	"math"

	"github.com/lattixdb/cyphercore/pkg/value"
)

func unaryMath(op string, fn func(float64) float64) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		if args[0].IsNull() {
			return value.Null, nil
		}
		f, err := asFloatArg(op, args[0])
		if err != nil {
			return value.Null, err
		}
		return value.Float(fn(f)), nil
	}
}

func registerTrigFuncs(r *Registry) {
	must(r.Register(&Func{Name: "sqrt", MinArgs: 1, MaxArgs: 1, Call: unaryMath("sqrt", math.Sqrt)}))
	must(r.Register(&Func{Name: "log", MinArgs: 1, MaxArgs: 1, Call: unaryMath("log", math.Log)}))
	must(r.Register(&Func{Name: "log10", MinArgs: 1, MaxArgs: 1, Call: unaryMath("log10", math.Log10)}))
	must(r.Register(&Func{Name: "exp", MinArgs: 1, MaxArgs: 1, Call: unaryMath("exp", math.Exp)}))
	must(r.Register(&Func{Name: "sin", MinArgs: 1, MaxArgs: 1, Call: unaryMath("sin", math.Sin)}))
	must(r.Register(&Func{Name: "cos", MinArgs: 1, MaxArgs: 1, Call: unaryMath("cos", math.Cos)}))
	must(r.Register(&Func{Name: "tan", MinArgs: 1, MaxArgs: 1, Call: unaryMath("tan", math.Tan)}))
}
