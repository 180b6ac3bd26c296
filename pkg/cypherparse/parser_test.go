package cypherparse_test

import (
	"testing"

	"github.com/lattixdb/cyphercore/pkg/cypherparse"
	"github.com/lattixdb/cyphercore/pkg/expr"
)

func mustParse(t *testing.T, src string) *cypherparse.Statement {
	t.Helper()
	stmt, err := cypherparse.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return stmt
}

func TestParseSimpleMatchReturn(t *testing.T) {
	stmt := mustParse(t, `MATCH (n:Person) WHERE n.age > 30 RETURN n.name AS name`)
	part := stmt.Query.Parts[0]
	if len(part.Clauses) != 2 {
		t.Fatalf("got %d clauses, want 2", len(part.Clauses))
	}
	m, ok := part.Clauses[0].(cypherparse.MatchClause)
	if !ok {
		t.Fatalf("clause[0] = %T, want MatchClause", part.Clauses[0])
	}
	if len(m.Patterns) != 1 || len(m.Patterns[0].Nodes) != 1 {
		t.Fatalf("unexpected pattern shape: %+v", m.Patterns)
	}
	if m.Patterns[0].Nodes[0].Variable != "n" || m.Patterns[0].Nodes[0].Labels[0] != "Person" {
		t.Fatalf("unexpected node pattern: %+v", m.Patterns[0].Nodes[0])
	}
	if m.Where == nil {
		t.Fatalf("expected a WHERE predicate")
	}
	if _, ok := m.Where.(expr.Comparison); !ok {
		t.Fatalf("WHERE clause = %T, want expr.Comparison", m.Where)
	}

	ret, ok := part.Clauses[1].(cypherparse.ReturnClause)
	if !ok {
		t.Fatalf("clause[1] = %T, want ReturnClause", part.Clauses[1])
	}
	if len(ret.Items) != 1 || ret.Items[0].Alias != "name" {
		t.Fatalf("unexpected RETURN items: %+v", ret.Items)
	}
}

func TestParseRelationshipPatternWithDirectionAndType(t *testing.T) {
	stmt := mustParse(t, `MATCH (a)-[r:KNOWS]->(b) RETURN r`)
	m := stmt.Query.Parts[0].Clauses[0].(cypherparse.MatchClause)
	pat := m.Patterns[0]
	if len(pat.Rels) != 1 {
		t.Fatalf("got %d rel patterns, want 1", len(pat.Rels))
	}
	rel := pat.Rels[0]
	if !rel.Outgoing || rel.Incoming {
		t.Fatalf("expected outgoing-only direction, got %+v", rel)
	}
	if rel.Variable != "r" || len(rel.Types) != 1 || rel.Types[0] != "KNOWS" {
		t.Fatalf("unexpected rel pattern: %+v", rel)
	}
}

func TestParseVariableLengthRelationship(t *testing.T) {
	stmt := mustParse(t, `MATCH (a)-[r:KNOWS*1..3]->(b) RETURN b`)
	m := stmt.Query.Parts[0].Clauses[0].(cypherparse.MatchClause)
	rel := m.Patterns[0].Rels[0]
	if rel.MinHops != 1 || rel.MaxHops != 3 {
		t.Fatalf("got hops [%d,%d], want [1,3]", rel.MinHops, rel.MaxHops)
	}
}

func TestParseCreateWithProperties(t *testing.T) {
	stmt := mustParse(t, `CREATE (n:Person {name: "Ada", age: 36})`)
	c := stmt.Query.Parts[0].Clauses[0].(cypherparse.CreateClause)
	node := c.Patterns[0].Nodes[0]
	if node.Labels[0] != "Person" {
		t.Fatalf("unexpected labels: %v", node.Labels)
	}
	nameExpr, ok := node.Properties["name"].(expr.StringLiteral)
	if !ok || nameExpr.Value != "Ada" {
		t.Fatalf("unexpected name property: %+v", node.Properties["name"])
	}
}

func TestParseMergeWithOnCreateOnMatch(t *testing.T) {
	stmt := mustParse(t, `MERGE (n:Person {name: "Ada"}) ON CREATE SET n.age = 1 ON MATCH SET n.age = n.age + 1`)
	m := stmt.Query.Parts[0].Clauses[0].(cypherparse.MergeClause)
	if len(m.OnCreate) != 1 || m.OnCreate[0].Key != "age" {
		t.Fatalf("unexpected ON CREATE items: %+v", m.OnCreate)
	}
	if len(m.OnMatch) != 1 || m.OnMatch[0].Variable != "n" {
		t.Fatalf("unexpected ON MATCH items: %+v", m.OnMatch)
	}
}

func TestParseSetAndDetachDelete(t *testing.T) {
	stmt := mustParse(t, `MATCH (n:Person) SET n.age = 40 DETACH DELETE n`)
	part := stmt.Query.Parts[0]
	set := part.Clauses[1].(cypherparse.SetClause)
	if set.Items[0].Key != "age" {
		t.Fatalf("unexpected SET items: %+v", set.Items)
	}
	del := part.Clauses[2].(cypherparse.DeleteClause)
	if !del.Detach || del.Variables[0] != "n" {
		t.Fatalf("unexpected DELETE clause: %+v", del)
	}
}

func TestParseUnwindClause(t *testing.T) {
	stmt := mustParse(t, `UNWIND [1, 2, 3] AS x RETURN x`)
	u := stmt.Query.Parts[0].Clauses[0].(cypherparse.UnwindClause)
	if u.Alias != "x" {
		t.Fatalf("unexpected alias %q", u.Alias)
	}
	list, ok := u.Expr.(expr.ListLiteral)
	if !ok || len(list.Items) != 3 {
		t.Fatalf("unexpected UNWIND list: %+v", u.Expr)
	}
}

func TestParseUnionAll(t *testing.T) {
	stmt := mustParse(t, `MATCH (a:Person) RETURN a.name AS name UNION ALL MATCH (b:Person) RETURN b.name AS name`)
	if len(stmt.Query.Parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(stmt.Query.Parts))
	}
	if len(stmt.Query.UnionAll) != 1 || !stmt.Query.UnionAll[0] {
		t.Fatalf("expected UNION ALL, got %+v", stmt.Query.UnionAll)
	}
}

func TestParseExplainPrefix(t *testing.T) {
	stmt := mustParse(t, `EXPLAIN MATCH (n) RETURN n`)
	if !stmt.Explain {
		t.Fatalf("expected Explain=true")
	}
}

func TestParseWithDistinctOrderSkipLimit(t *testing.T) {
	stmt := mustParse(t, `MATCH (n:Person) WITH DISTINCT n.age AS age ORDER BY age DESC SKIP 1 LIMIT 5 RETURN age`)
	w := stmt.Query.Parts[0].Clauses[1].(cypherparse.WithClause)
	if !w.Distinct {
		t.Fatalf("expected Distinct=true")
	}
	if len(w.OrderBy) != 1 || !w.OrderBy[0].Descending {
		t.Fatalf("unexpected ORDER BY: %+v", w.OrderBy)
	}
	if w.Skip == nil || w.Limit == nil {
		t.Fatalf("expected Skip and Limit to be set")
	}
}

func TestParseCaseExpression(t *testing.T) {
	stmt := mustParse(t, `RETURN CASE WHEN n.age > 18 THEN "adult" ELSE "minor" END AS bucket`)
	ret := stmt.Query.Parts[0].Clauses[0].(cypherparse.ReturnClause)
	c, ok := ret.Items[0].Expr.(expr.CaseExpression)
	if !ok {
		t.Fatalf("got %T, want expr.CaseExpression", ret.Items[0].Expr)
	}
	if len(c.Alternatives) != 1 || c.Default == nil {
		t.Fatalf("unexpected case expression: %+v", c)
	}
}

func TestParseCountStarAggregation(t *testing.T) {
	stmt := mustParse(t, `MATCH (n:Person) RETURN count(*) AS total`)
	ret := stmt.Query.Parts[0].Clauses[1].(cypherparse.ReturnClause)
	if _, ok := ret.Items[0].Expr.(expr.CountStar); !ok {
		t.Fatalf("got %T, want expr.CountStar", ret.Items[0].Expr)
	}
	if ret.Items[0].Alias != "total" {
		t.Fatalf("unexpected alias %q", ret.Items[0].Alias)
	}
}

func TestParseFunctionCallAndParameter(t *testing.T) {
	stmt := mustParse(t, `MATCH (n:Person) WHERE n.age = $minAge RETURN size(n.name) AS len`)
	m := stmt.Query.Parts[0].Clauses[0].(cypherparse.MatchClause)
	cmp := m.Where.(expr.Comparison)
	if _, ok := cmp.Right.(expr.Parameter); !ok {
		t.Fatalf("got %T, want expr.Parameter", cmp.Right)
	}
	ret := stmt.Query.Parts[0].Clauses[1].(cypherparse.ReturnClause)
	call, ok := ret.Items[0].Expr.(expr.ProcedureExpression)
	if !ok || call.Invocation.Name != "size" {
		t.Fatalf("unexpected function call: %+v", ret.Items[0].Expr)
	}
}

func TestParseRejectsUnknownToken(t *testing.T) {
	if _, err := cypherparse.Parse(`MATCH (n) RETURN n #`); err == nil {
		t.Fatalf("expected a syntax error")
	}
}

func TestParseRejectsIncompleteClause(t *testing.T) {
	if _, err := cypherparse.Parse(`MATCH`); err == nil {
		t.Fatalf("expected a syntax error for a dangling MATCH")
	}
}
