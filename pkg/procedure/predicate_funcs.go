package procedure

import "github.com/lattixdb/cyphercore/pkg/value"

func fnExists(args []value.Value) (value.Value, error) {
	return value.Bool(!args[0].IsNull()), nil
}

func fnCoalesce(args []value.Value) (value.Value, error) {
	for _, a := range args {
		if !a.IsNull() {
			return a, nil
		}
	}
	return value.Null, nil
}

func registerPredicateFuncs(r *Registry) {
	must(r.Register(&Func{Name: "exists", MinArgs: 1, MaxArgs: 1, Call: fnExists}))
	must(r.Register(&Func{Name: "coalesce", MinArgs: 1, MaxArgs: -1, Call: fnCoalesce}))
}
