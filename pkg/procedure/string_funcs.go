package procedure

import (
	"strings"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

func asStringArg(op string, v value.Value) (string, error) {
	s, ok := v.AsString()
	if !ok {
		return "", cerr.New(op, cerr.KindTypeMismatch, op+"() requires a string argument")
	}
	return s, nil
}

func fnToLower(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	s, err := asStringArg("toLower", args[0])
	if err != nil {
		return value.Null, err
	}
	return value.Str(strings.ToLower(s)), nil
}

func fnToUpper(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	s, err := asStringArg("toUpper", args[0])
	if err != nil {
		return value.Null, err
	}
	return value.Str(strings.ToUpper(s)), nil
}

func fnTrim(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	s, err := asStringArg("trim", args[0])
	if err != nil {
		return value.Null, err
	}
	return value.Str(strings.TrimSpace(s)), nil
}

func fnSubstring(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	s, err := asStringArg("substring", args[0])
	if err != nil {
		return value.Null, err
	}
	r := []rune(s)
	start, ok := args[1].AsInt()
	if !ok || start < 0 {
		return value.Null, cerr.New("substring", cerr.KindInvalidArgument, "substring() start must be a non-negative integer")
	}
	if start >= int64(len(r)) {
		return value.Str(""), nil
	}
	end := int64(len(r))
	if len(args) == 3 {
		length, ok := args[2].AsInt()
		if !ok || length < 0 {
			return value.Null, cerr.New("substring", cerr.KindInvalidArgument, "substring() length must be a non-negative integer")
		}
		if start+length < end {
			end = start + length
		}
	}
	return value.Str(string(r[start:end])), nil
}

func fnReplace(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	s, err := asStringArg("replace", args[0])
	if err != nil {
		return value.Null, err
	}
	search, err := asStringArg("replace", args[1])
	if err != nil {
		return value.Null, err
	}
	replacement, err := asStringArg("replace", args[2])
	if err != nil {
		return value.Null, err
	}
	return value.Str(strings.ReplaceAll(s, search, replacement)), nil
}

func fnSplit(args []value.Value) (value.Value, error) {
	if args[0].IsNull() {
		return value.Null, nil
	}
	s, err := asStringArg("split", args[0])
	if err != nil {
		return value.Null, err
	}
	delim, err := asStringArg("split", args[1])
	if err != nil {
		return value.Null, err
	}
	parts := strings.Split(s, delim)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.Str(p)
	}
	return value.List(out), nil
}

func registerStringFuncs(r *Registry) {
	must(r.Register(&Func{Name: "toLower", MinArgs: 1, MaxArgs: 1, Call: fnToLower}))
	must(r.Register(&Func{Name: "toUpper", MinArgs: 1, MaxArgs: 1, Call: fnToUpper}))
	must(r.Register(&Func{Name: "trim", MinArgs: 1, MaxArgs: 1, Call: fnTrim}))
	must(r.Register(&Func{Name: "substring", MinArgs: 2, MaxArgs: 3, Call: fnSubstring}))
	must(r.Register(&Func{Name: "replace", MinArgs: 3, MaxArgs: 3, Call: fnReplace}))
	must(r.Register(&Func{Name: "split", MinArgs: 2, MaxArgs: 2, Call: fnSplit}))
}
