package runner

import (
	"strconv"
	"testing"

	"github.com/lattixdb/cyphercore/pkg/cypherparse"
)

func mustParse(t *testing.T, text string) *cypherparse.Statement {
	t.Helper()
	stmt, err := cypherparse.Parse(text)
	if err != nil {
		t.Fatalf("parse %q: %v", text, err)
	}
	return stmt
}

func TestStatementCachePutGet(t *testing.T) {
	c := NewStatementCache(3)
	c.Put("RETURN 1", mustParse(t, "RETURN 1"))

	if _, ok := c.Get("RETURN 2"); ok {
		t.Fatal("expected a miss for a query text never Put")
	}
	if _, ok := c.Get("RETURN 1"); !ok {
		t.Fatal("expected a hit for a Put query text")
	}
}

// TestStatementCacheEviction checks that filling a capacity-3 cache and
// adding a fourth entry evicts the least recently used one, not an
// arbitrary one.
func TestStatementCacheEviction(t *testing.T) {
	c := NewStatementCache(3)
	c.Put("q1", mustParse(t, "RETURN 1"))
	c.Put("q2", mustParse(t, "RETURN 2"))
	c.Put("q3", mustParse(t, "RETURN 3"))
	c.Put("q4", mustParse(t, "RETURN 4"))

	if _, ok := c.Get("q1"); ok {
		t.Error("expected q1 to be evicted")
	}
	for _, q := range []string{"q2", "q3", "q4"} {
		if _, ok := c.Get(q); !ok {
			t.Errorf("expected %s to still be cached", q)
		}
	}
}

// TestStatementCacheLRUOrdering checks that touching an entry with Get
// promotes it, so a subsequent eviction takes the least recently touched
// entry instead.
func TestStatementCacheLRUOrdering(t *testing.T) {
	c := NewStatementCache(3)
	c.Put("q1", mustParse(t, "RETURN 1"))
	c.Put("q2", mustParse(t, "RETURN 2"))
	c.Put("q3", mustParse(t, "RETURN 3"))

	c.Get("q1")
	c.Put("q4", mustParse(t, "RETURN 4"))

	if _, ok := c.Get("q2"); ok {
		t.Error("expected q2 (least recently used) to be evicted")
	}
	if _, ok := c.Get("q1"); !ok {
		t.Error("expected q1 to survive eviction after being touched")
	}
}

func TestStatementCacheUnboundedWhenMaxSizeIsZero(t *testing.T) {
	c := NewStatementCache(0)
	for i := 0; i < 50; i++ {
		c.Put("q"+strconv.Itoa(i), mustParse(t, "RETURN 1"))
	}
	if c.order.Len() != 50 {
		t.Fatalf("expected all 50 entries to survive an unbounded cache, got %d", c.order.Len())
	}
}
