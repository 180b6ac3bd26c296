package procedure

import (
	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

func fnSize(args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsNull() {
		return value.Null, nil
	}
	switch v.Kind() {
	case value.KindList:
		items, _ := v.AsList()
		return value.Int(int64(len(items))), nil
	case value.KindString:
		s, _ := v.AsString()
		return value.Int(int64(len([]rune(s)))), nil
	case value.KindMap:
		m, _ := v.AsMap()
		return value.Int(int64(m.Len())), nil
	default:
		return value.Null, cerr.New("size", cerr.KindTypeMismatch, "size() requires a list, string, or map")
	}
}

func fnHead(args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsNull() {
		return value.Null, nil
	}
	items, ok := v.AsList()
	if !ok {
		return value.Null, cerr.New("head", cerr.KindTypeMismatch, "head() requires a list")
	}
	if len(items) == 0 {
		return value.Null, nil
	}
	return items[0], nil
}

func fnTail(args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsNull() {
		return value.Null, nil
	}
	items, ok := v.AsList()
	if !ok {
		return value.Null, cerr.New("tail", cerr.KindTypeMismatch, "tail() requires a list")
	}
	if len(items) == 0 {
		return value.List(nil), nil
	}
	return value.List(append([]value.Value(nil), items[1:]...)), nil
}

func fnRange(args []value.Value) (value.Value, error) {
	start, ok1 := args[0].AsInt()
	end, ok2 := args[1].AsInt()
	if !ok1 || !ok2 {
		return value.Null, cerr.New("range", cerr.KindTypeMismatch, "range() bounds must be integers")
	}
	step := int64(1)
	if len(args) == 3 {
		s, ok := args[2].AsInt()
		if !ok || s == 0 {
			return value.Null, cerr.New("range", cerr.KindInvalidArgument, "range() step must be a nonzero integer")
		}
		step = s
	}
	var out []value.Value
	if step > 0 {
		for i := start; i <= end; i += step {
			out = append(out, value.Int(i))
		}
	} else {
		for i := start; i >= end; i += step {
			out = append(out, value.Int(i))
		}
	}
	return value.List(out), nil
}

func fnReverse(args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsNull() {
		return value.Null, nil
	}
	if s, ok := v.AsString(); ok {
		r := []rune(s)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return value.Str(string(r)), nil
	}
	items, ok := v.AsList()
	if !ok {
		return value.Null, cerr.New("reverse", cerr.KindTypeMismatch, "reverse() requires a list or string")
	}
	out := make([]value.Value, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return value.List(out), nil
}

func registerListFuncs(r *Registry) {
	must(r.Register(&Func{Name: "size", MinArgs: 1, MaxArgs: 1, Call: fnSize}))
	must(r.Register(&Func{Name: "head", MinArgs: 1, MaxArgs: 1, Call: fnHead}))
	must(r.Register(&Func{Name: "tail", MinArgs: 1, MaxArgs: 1, Call: fnTail}))
	must(r.Register(&Func{Name: "range", MinArgs: 2, MaxArgs: 3, Call: fnRange}))
	must(r.Register(&Func{Name: "reverse", MinArgs: 1, MaxArgs: 1, Call: fnReverse}))
}
