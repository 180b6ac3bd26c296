package procedure

import (
	"strconv"
	"strings"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

func fnToInteger(args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsNull() {
		return value.Null, nil
	}
	if i, ok := v.AsInt(); ok {
		return value.Int(i), nil
	}
	if f, ok := v.AsFloat(); ok {
		return value.Int(int64(f)), nil
	}
	if s, ok := v.AsString(); ok {
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return value.Null, nil
		}
		return value.Int(i), nil
	}
	return value.Null, cerr.New("toInteger", cerr.KindTypeMismatch, "toInteger() cannot convert this value")
}

func fnToFloat(args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsNull() {
		return value.Null, nil
	}
	if f, ok := v.AsFloat64(); ok {
		return value.Float(f), nil
	}
	if s, ok := v.AsString(); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return value.Null, nil
		}
		return value.Float(f), nil
	}
	return value.Null, cerr.New("toFloat", cerr.KindTypeMismatch, "toFloat() cannot convert this value")
}

func fnToString(args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsNull() {
		return value.Null, nil
	}
	switch v.Kind() {
	case value.KindString:
		return v, nil
	case value.KindBool, value.KindInt, value.KindFloat, value.KindTemporal:
		return value.Str(v.String()), nil
	default:
		return value.Null, cerr.New("toString", cerr.KindTypeMismatch, "toString() cannot convert this value")
	}
}

func fnID(args []value.Value) (value.Value, error) {
	v := args[0]
	if n, ok := v.AsNode(); ok {
		return value.Int(int64(n.ID)), nil
	}
	if r, ok := v.AsRel(); ok {
		return value.Int(int64(r.ID)), nil
	}
	return value.Null, cerr.New("id", cerr.KindTypeMismatch, "id() requires a node or relationship")
}

func fnLabels(args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsNull() {
		return value.Null, nil
	}
	n, ok := v.AsNode()
	if !ok {
		return value.Null, cerr.New("labels", cerr.KindTypeMismatch, "labels() requires a node")
	}
	out := make([]value.Value, len(n.Labels))
	for i, l := range n.Labels {
		out[i] = value.Str(l)
	}
	return value.List(out), nil
}

func fnType(args []value.Value) (value.Value, error) {
	v := args[0]
	if v.IsNull() {
		return value.Null, nil
	}
	r, ok := v.AsRel()
	if !ok {
		return value.Null, cerr.New("type", cerr.KindTypeMismatch, "type() requires a relationship")
	}
	return value.Str(r.Type), nil
}

func registerScalarFuncs(r *Registry) {
	must(r.Register(&Func{Name: "toInteger", MinArgs: 1, MaxArgs: 1, Call: fnToInteger}))
	must(r.Register(&Func{Name: "toFloat", MinArgs: 1, MaxArgs: 1, Call: fnToFloat}))
	must(r.Register(&Func{Name: "toString", MinArgs: 1, MaxArgs: 1, Call: fnToString}))
	must(r.Register(&Func{Name: "id", MinArgs: 1, MaxArgs: 1, Call: fnID}))
	must(r.Register(&Func{Name: "labels", MinArgs: 1, MaxArgs: 1, Call: fnLabels}))
	must(r.Register(&Func{Name: "type", MinArgs: 1, MaxArgs: 1, Call: fnType}))
}
