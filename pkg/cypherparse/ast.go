// Package cypherparse implements a deliberately partial Cypher-family
// parser: enough of MATCH/CREATE/MERGE/SET/DELETE/WITH/RETURN/UNWIND/UNION
// and their expression grammar to drive pkg/plan, without chasing full
// openCypher conformance. Expressions parse directly into pkg/expr.Expr
// — this package owns no separate expression AST — so the clause
// structures below are the only new vocabulary it introduces.
package cypherparse

import "github.com/lattixdb/cyphercore/pkg/expr"

// Statement is the parse of one query, optionally prefixed by EXPLAIN or
// PROFILE for plan introspection instead of execution.
type Statement struct {
	Explain bool
	Profile bool
	Query   *Query
}

// Query is one or more QueryParts joined by UNION/UNION ALL.
type Query struct {
	Parts    []QueryPart
	UnionAll []bool // len(Parts)-1 entries, one per join point
}

// QueryPart is a straight-line sequence of clauses with no UNION.
type QueryPart struct {
	Clauses []Clause
}

// Clause is the sealed set of statement-level clauses this parser
// understands.
type Clause interface{ clauseKind() string }

// NodePattern is one node element of a MATCH/CREATE/MERGE pattern:
// `(variable:Label1:Label2 {key: value})`, every part optional except the
// parentheses.
type NodePattern struct {
	Variable   string
	Labels     []string
	Properties map[string]expr.Expr
}

// RelPattern is one relationship element of a pattern:
// `-[variable:TYPE1|TYPE2*min..max {key: value}]->` (direction inferred
// from which arrow head is present, as in Cypher).
type RelPattern struct {
	Variable   string
	Types      []string
	Properties map[string]expr.Expr
	Outgoing   bool // true if the arrow points away from the preceding node
	Incoming   bool // true if the arrow points into the preceding node
	MinHops    int  // 1 unless a *min..max quantifier was present
	MaxHops    int  // 1 unless a *min..max quantifier was present
}

// Pattern is one path: len(Nodes) == len(Rels)+1.
type Pattern struct {
	Nodes []NodePattern
	Rels  []RelPattern
}

// MatchClause implements MATCH / OPTIONAL MATCH.
type MatchClause struct {
	Optional bool
	Patterns []Pattern
	Where    expr.Expr // nil if no WHERE
}

func (MatchClause) clauseKind() string { return "MATCH" }

// ProjectionItem is one `expr [AS alias]` entry of WITH/RETURN.
type ProjectionItem struct {
	Expr  expr.Expr
	Alias string
}

// OrderItem is one ORDER BY entry.
type OrderItem struct {
	Expr       expr.Expr
	Descending bool
}

// WithClause implements WITH, a pipeline boundary with its own
// DISTINCT/WHERE/ORDER BY/SKIP/LIMIT.
type WithClause struct {
	Items    []ProjectionItem
	Distinct bool
	Where    expr.Expr // nil if no WHERE
	OrderBy  []OrderItem
	Skip     expr.Expr // nil if absent
	Limit    expr.Expr // nil if absent
}

func (WithClause) clauseKind() string { return "WITH" }

// ReturnClause implements RETURN, the terminal projection of a QueryPart.
type ReturnClause struct {
	Items    []ProjectionItem
	Distinct bool
	OrderBy  []OrderItem
	Skip     expr.Expr
	Limit    expr.Expr
}

func (ReturnClause) clauseKind() string { return "RETURN" }

// CreateClause implements CREATE.
type CreateClause struct {
	Patterns []Pattern
}

func (CreateClause) clauseKind() string { return "CREATE" }

// SetItem is one `variable.key = expr` assignment.
type SetItem struct {
	Variable string
	Key      string
	Value    expr.Expr
}

// MergeClause implements MERGE ... ON CREATE SET ... ON MATCH SET ...
type MergeClause struct {
	Pattern  Pattern
	OnCreate []SetItem
	OnMatch  []SetItem
}

func (MergeClause) clauseKind() string { return "MERGE" }

// SetClause implements SET.
type SetClause struct {
	Items []SetItem
}

func (SetClause) clauseKind() string { return "SET" }

// DeleteClause implements DELETE / DETACH DELETE.
type DeleteClause struct {
	Variables []string
	Detach    bool
}

func (DeleteClause) clauseKind() string { return "DELETE" }

// UnwindClause implements UNWIND expr AS alias.
type UnwindClause struct {
	Expr  expr.Expr
	Alias string
}

func (UnwindClause) clauseKind() string { return "UNWIND" }
