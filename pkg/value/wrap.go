package value

import (
	"reflect"
	"time"
)

// Wrap lifts a host Go value into the Value model: integers become Int,
// floating point becomes Float, strings become Str, list-like collections
// become List, map-like collections become Map. Anything it
// doesn't recognize, including nil, becomes Null.
func Wrap(host any) Value {
	if host == nil {
		return Null
	}
	switch v := host.(type) {
	case Value:
		return v
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return Int(int64(v))
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case uint64:
		return Int(int64(v))
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case string:
		return Str(v)
	case time.Time:
		return TemporalVal(NewInstant(TemporalDateTime, v))
	case *Node:
		return NodeVal(v)
	case *Relationship:
		return RelVal(v)
	case *Path:
		return PathVal(v)
	case *Temporal:
		return TemporalVal(v)
	case []Value:
		return List(v)
	case *OrderedMap:
		return Map(v)
	case map[string]any:
		m := NewOrderedMap()
		for k, val := range v {
			m.Set(k, Wrap(val))
		}
		return Map(m)
	}

	// Fall back to reflection for arbitrary slice/map host types, tolerant
	// of property bags decoded from generic sources.
	rv := reflect.ValueOf(host)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = Wrap(rv.Index(i).Interface())
		}
		return List(items)
	case reflect.Map:
		m := NewOrderedMap()
		for _, key := range rv.MapKeys() {
			m.Set(keyToString(key), Wrap(rv.MapIndex(key).Interface()))
		}
		return Map(m)
	}

	return Null
}

func keyToString(rv reflect.Value) string {
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return reflect.ValueOf(rv.Interface()).String()
}

// Unwrap lowers a Value back to a plain Go value, the inverse of Wrap. It
// is used at the boundary with the graph model and with host callers of
// the runner's Result.
func Unwrap(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = Unwrap(item)
		}
		return out
	case KindMap:
		out := make(map[string]any, v.m.Len())
		for _, k := range v.m.Keys() {
			mv, _ := v.m.Get(k)
			out[k] = Unwrap(mv)
		}
		return out
	case KindNode:
		return v.node
	case KindRel:
		return v.rel
	case KindPath:
		return v.path
	case KindTemporal:
		return v.temp
	default:
		return nil
	}
}
