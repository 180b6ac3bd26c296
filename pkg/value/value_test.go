package value

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		want     bool
		wantNull bool
	}{
		{"int vs int equal", Int(3), Int(3), true, false},
		{"int vs float equal", Int(3), Float(3.0), true, false},
		{"int vs float not equal", Int(3), Float(3.5), false, false},
		{"string equal", Str("a"), Str("a"), true, false},
		{"null vs null", Null, Null, false, true},
		{"null vs int", Null, Int(1), false, true},
		{"list equal", List([]Value{Int(1), Int(2)}), List([]Value{Int(1), Int(2)}), true, false},
		{"list different length", List([]Value{Int(1)}), List([]Value{Int(1), Int(2)}), false, false},
		{"list with null element", List([]Value{Int(1), Null}), List([]Value{Int(1), Int(2)}), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Equal(tt.a, tt.b)
			if tt.wantNull {
				if ok {
					t.Fatalf("Equal(%v, %v) = (%v, %v), want Null", tt.a, tt.b, got, ok)
				}
				return
			}
			if !ok {
				t.Fatalf("Equal(%v, %v) unexpectedly returned Null", tt.a, tt.b)
			}
			if got != tt.want {
				t.Fatalf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestListWithNullElementButMatch(t *testing.T) {
	// [1, null] == [1, null]: the null-vs-null element makes this Null
	// overall even though the concrete elements agree.
	_, ok := Equal(List([]Value{Int(1), Null}), List([]Value{Int(1), Null}))
	if ok {
		t.Fatalf("expected Null result comparing lists containing null, got a definite answer")
	}
}

func TestCompareMixedFamily(t *testing.T) {
	_, ok := Compare(Int(1), Str("a"))
	if ok {
		t.Fatalf("Compare(int, string) should be incomparable (Null), got a definite ordering")
	}
}

func TestCompareNumericFamily(t *testing.T) {
	ord, ok := Compare(Int(1), Float(2.5))
	if !ok {
		t.Fatalf("Compare(int, float) should be comparable")
	}
	if ord != OrderLess {
		t.Fatalf("Compare(1, 2.5) = %v, want OrderLess", ord)
	}
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	host := map[string]any{"a": int64(1), "b": "x", "c": []any{int64(1), int64(2)}}
	v := Wrap(host)
	if v.Kind() != KindMap {
		t.Fatalf("Wrap(map) produced kind %v, want KindMap", v.Kind())
	}
	back := Unwrap(v)
	m, ok := back.(map[string]any)
	if !ok {
		t.Fatalf("Unwrap did not produce a map: %T", back)
	}
	if m["b"] != "x" {
		t.Fatalf("round trip lost value: %v", m)
	}
}

func TestWrapNilIsNull(t *testing.T) {
	if !Wrap(nil).IsNull() {
		t.Fatalf("Wrap(nil) should be Null")
	}
}

func TestNodeHasLabel(t *testing.T) {
	n := &Node{ID: 1, Labels: []string{"Person", "Verified"}}
	if !n.HasLabel("Person") {
		t.Fatalf("expected HasLabel(Person) to be true")
	}
	if n.HasLabel("Company") {
		t.Fatalf("expected HasLabel(Company) to be false")
	}
}

func TestPathAlternation(t *testing.T) {
	n1 := &Node{ID: 1}
	n2 := &Node{ID: 2}
	r := &Relationship{ID: 10, StartID: 1, EndID: 2, Type: "KNOWS"}
	p := &Path{Elements: []Value{NodeVal(n1), RelVal(r), NodeVal(n2)}}

	if len(p.Nodes()) != 2 {
		t.Fatalf("expected 2 nodes in path, got %d", len(p.Nodes()))
	}
	if len(p.Relationships()) != 1 {
		t.Fatalf("expected 1 relationship in path, got %d", len(p.Relationships()))
	}
}
