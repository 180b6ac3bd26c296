// Package value implements the Cypher runtime value model: a closed tagged
// union over null, booleans, numbers, strings, lists, maps, graph entities,
// paths, and temporal values, plus the wrap/unwrap bridge to host Go values.
//
// Value is deliberately not an interface with N implementations: a closed
// tagged union is easier to reason about exhaustively than open
// polymorphic dispatch, so Value is a single struct carrying a Kind
// discriminant and
// exhaustively switched on everywhere it is consumed.
package value

import (
	"fmt"
	"sort"

	"github.com/lattixdb/cyphercore/pkg/types"
)

// Kind discriminates the variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
	KindNode
	KindRel
	KindPath
	KindTemporal
)

// Value is an immutable Cypher runtime value. The zero Value is Null.
type Value struct {
	kind Kind

	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	m    *OrderedMap
	node *Node
	rel  *Relationship
	path *Path
	temp *Temporal
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Null is the singular null value.
var Null = Value{kind: KindNull}

func Bool(b bool) Value       { return Value{kind: KindBool, b: b} }
func Int(i int64) Value       { return Value{kind: KindInt, i: i} }
func Float(f float64) Value   { return Value{kind: KindFloat, f: f} }
func Str(s string) Value      { return Value{kind: KindString, s: s} }
func List(items []Value) Value {
	return Value{kind: KindList, list: items}
}
func Map(m *OrderedMap) Value { return Value{kind: KindMap, m: m} }
func NodeVal(n *Node) Value   { return Value{kind: KindNode, node: n} }
func RelVal(r *Relationship) Value {
	return Value{kind: KindRel, rel: r}
}
func PathVal(p *Path) Value         { return Value{kind: KindPath, path: p} }
func TemporalVal(t *Temporal) Value { return Value{kind: KindTemporal, temp: t} }

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload; ok is false if v is not KindBool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer payload; ok is false if v is not KindInt.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the float payload; ok is false if v is not KindFloat.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsString returns the string payload; ok is false if v is not KindString.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsList returns the list payload; ok is false if v is not KindList.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// AsMap returns the map payload; ok is false if v is not KindMap.
func (v Value) AsMap() (*OrderedMap, bool) { return v.m, v.kind == KindMap }

// AsNode returns the node payload; ok is false if v is not KindNode.
func (v Value) AsNode() (*Node, bool) { return v.node, v.kind == KindNode }

// AsRel returns the relationship payload; ok is false if v is not KindRel.
func (v Value) AsRel() (*Relationship, bool) { return v.rel, v.kind == KindRel }

// AsPath returns the path payload; ok is false if v is not KindPath.
func (v Value) AsPath() (*Path, bool) { return v.path, v.kind == KindPath }

// AsTemporal returns the temporal payload; ok is false if v is not KindTemporal.
func (v Value) AsTemporal() (*Temporal, bool) { return v.temp, v.kind == KindTemporal }

// IsNumeric reports whether v is an Int or a Float.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// AsFloat64 widens Int or Float to a float64; ok is false otherwise.
func (v Value) AsFloat64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// TypeOf reports the static Cypher type of v's runtime kind.
func (v Value) TypeOf() types.Type {
	switch v.kind {
	case KindNull:
		return types.Null
	case KindBool:
		return types.Boolean
	case KindInt:
		return types.Integer
	case KindFloat:
		return types.Float
	case KindString:
		return types.String
	case KindList:
		if len(v.list) == 0 {
			return types.List(types.Any)
		}
		return types.List(v.list[0].TypeOf())
	case KindMap:
		return types.Map
	case KindNode:
		return types.Node
	case KindRel:
		return types.Relationship
	case KindPath:
		return types.Path
	case KindTemporal:
		return types.DateTime
	default:
		return types.Any
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindFloat:
		return fmt.Sprintf("%v", v.f)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return fmt.Sprintf("%v", parts)
	case KindMap:
		return v.m.String()
	case KindNode:
		return fmt.Sprintf("Node(%d)", v.node.ID)
	case KindRel:
		return fmt.Sprintf("Rel(%d)", v.rel.ID)
	case KindPath:
		return fmt.Sprintf("Path(len=%d)", len(v.path.Elements))
	case KindTemporal:
		return v.temp.String()
	default:
		return "<unknown>"
	}
}

// OrderedMap is a Cypher map value: an insertion-ordered string-keyed
// collection of Values.
type OrderedMap struct {
	keys   []string
	values map[string]Value
}

// NewOrderedMap builds an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]Value)}
}

// Set inserts or overwrites a key, preserving first-insertion order.
func (m *OrderedMap) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get looks up a key.
func (m *OrderedMap) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes a key, preserving the relative order of what remains.
func (m *OrderedMap) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy of m, used when staging a property write
// against a shared committed entity so the original stays untouched
// until the write is committed.
func (m *OrderedMap) Clone() *OrderedMap {
	if m == nil {
		return NewOrderedMap()
	}
	clone := &OrderedMap{keys: append([]string(nil), m.keys...), values: make(map[string]Value, len(m.values))}
	for k, v := range m.values {
		clone.values[k] = v
	}
	return clone
}

// Keys returns keys in insertion order.
func (m *OrderedMap) Keys() []string { return m.keys }

// Len reports the number of entries.
func (m *OrderedMap) Len() int { return len(m.keys) }

func (m *OrderedMap) String() string {
	if m == nil {
		return "{}"
	}
	keys := append([]string(nil), m.keys...)
	sort.Strings(keys)
	s := "{"
	for i, k := range keys {
		if i > 0 {
			s += ", "
		}
		v := m.values[k]
		s += k + ": " + v.String()
	}
	return s + "}"
}

// Node is the runtime representation of a matched or created graph node.
type Node struct {
	ID         uint64
	Labels     []string
	Properties *OrderedMap
}

// HasLabel reports whether the node carries the given label.
func (n *Node) HasLabel(label string) bool {
	for _, l := range n.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Relationship is the runtime representation of a matched or created edge.
type Relationship struct {
	ID      uint64
	StartID uint64
	EndID   uint64
	Type    string

	Properties *OrderedMap
}

// Path alternates Node, Relationship, Node, ... starting and ending with a
// Node.
type Path struct {
	// Elements holds Values of kind KindNode/KindRel in alternation.
	Elements []Value
}

// Nodes returns the node values of the path in order.
func (p *Path) Nodes() []*Node {
	out := make([]*Node, 0, len(p.Elements)/2+1)
	for _, el := range p.Elements {
		if n, ok := el.AsNode(); ok {
			out = append(out, n)
		}
	}
	return out
}

// Relationships returns the relationship values of the path in order.
func (p *Path) Relationships() []*Relationship {
	out := make([]*Relationship, 0, len(p.Elements)/2)
	for _, el := range p.Elements {
		if r, ok := el.AsRel(); ok {
			out = append(out, r)
		}
	}
	return out
}

// ToList flattens a path into a list value, node/rel/node/... alternating,
// matching the shape Property/ContainerIndex expect when treating a path as
// a sequence.
func (p *Path) ToList() Value {
	return List(append([]Value(nil), p.Elements...))
}
