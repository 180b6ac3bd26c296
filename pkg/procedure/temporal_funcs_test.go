package procedure

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/value"
)

func TestDurationParsing(t *testing.T) {
	r := NewRegistry()
	v, err := r.Call("", "duration", []value.Value{value.Str("P1Y2M3DT4H5M6S")}, false)
	if err != nil {
		t.Fatalf("duration() failed: %v", err)
	}
	temp, ok := v.AsTemporal()
	if !ok {
		t.Fatalf("duration() did not return a temporal value")
	}
	if temp.DurationMonths != 14 {
		t.Fatalf("months = %d, want 14", temp.DurationMonths)
	}
	if temp.DurationDays != 3 {
		t.Fatalf("days = %d, want 3", temp.DurationDays)
	}
}

func TestDateParsing(t *testing.T) {
	r := NewRegistry()
	v, err := r.Call("", "date", []value.Value{value.Str("2024-03-15")}, false)
	if err != nil {
		t.Fatalf("date() failed: %v", err)
	}
	temp, _ := v.AsTemporal()
	year, err := temp.Accessor("year")
	if err != nil {
		t.Fatalf("accessor failed: %v", err)
	}
	if i, _ := year.AsInt(); i != 2024 {
		t.Fatalf("year = %v, want 2024", year)
	}
}
