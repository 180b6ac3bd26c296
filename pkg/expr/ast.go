// Package expr implements the Cypher expression evaluator: a closed AST
// (a tagged union with exhaustive matching rather than open polymorphic
// dispatch), an eval entry point, a typeOf inference pass, and a
// separate aggregateEval entry point for folding a group of per-row
// contexts into one value.
package expr

import "github.com/lattixdb/cyphercore/pkg/types"

// Expr is the sealed set of expression AST nodes. Every node a caller can
// build lives in this file (aggregate.go adds one internal node,
// precomputedValue). Eval, TypeOf, and the aggregate walkers switch over
// the concrete type; a node a switch does not handle is not a compile
// error: Eval returns an error for it and TypeOf reports types.Any.
type Expr interface {
	exprKind() string
}

type IntegerLiteral struct{ Value int64 }
type DoubleLiteral struct{ Value float64 }
type StringLiteral struct{ Value string }
type BooleanLiteral struct{ Value bool }
type NullLiteral struct{}
type ListLiteral struct{ Items []Expr }

type MapEntry struct {
	Key   string
	Value Expr
}
type MapExpression struct{ Entries []MapEntry }

// Variable looks up ctx.vars[Name]; UnboundVariable if absent.
type Variable struct{ Name string }

// Parameter returns wrap(ctx.params[Name]).
type Parameter struct {
	Name string
	Type types.Type
}

// Property is src.Key: property lookup on a node/relationship, temporal
// component access, or Null propagation if src is Null.
type Property struct {
	Source Expr
	Key    string
}

// ContainerIndex is container[Index]: property lookup (string index on a
// node/relationship or map) or list element access (integer index).
type ContainerIndex struct {
	Container Expr
	Index     Expr
}

// ArithOp enumerates the binary arithmetic operators that never panic on
// their own (division by zero and type mismatches are reported as
// values or errors, not runtime panics).
type ArithOp uint8

const (
	OpAdd ArithOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpPower
)

type Arithmetic struct {
	Op          ArithOp
	Left, Right Expr
}

// CompareOp enumerates the three-valued comparison operators.
type CompareOp uint8

const (
	OpEquals CompareOp = iota
	OpNotEquals
	OpGreaterThan
	OpGreaterThanOrEqual
	OpLessThan
	OpLessThanOrEqual
)

type Comparison struct {
	Op          CompareOp
	Left, Right Expr
}

type And struct{ Left, Right Expr }
type Or struct{ Left, Right Expr }
type Not struct{ Operand Expr }
type Ands struct{ Operands []Expr }
type Ors struct{ Operands []Expr }

type IsNull struct{ Operand Expr }
type IsNotNull struct{ Operand Expr }

// StringPredOp enumerates the string predicates; a Null on either side
// yields Null — see eval_string.go.
type StringPredOp uint8

const (
	OpStartsWith StringPredOp = iota
	OpEndsWith
	OpContains
	OpRegexMatch
)

type StringPredicate struct {
	Op          StringPredOp
	Left, Right Expr
}

// In is `lhs IN rhs`; rhs must evaluate to a list.
type In struct {
	Left, Right Expr
}

// HasLabels requires every named label to be present on the node Operand
// evaluates to.
type HasLabels struct {
	Operand Expr
	Labels  []string
}

// PathStep is the sealed set of path-construction steps.
type PathStep interface {
	pathStepKind() string
}

type NilPathStep struct{}

type NodePathStep struct {
	Node Expr
	Next PathStep
}

type SingleRelationshipPathStep struct {
	Rel  Expr
	Node Expr
	Next PathStep
}

type MultiRelationshipPathStep struct {
	Rels  Expr
	Nodes Expr
	Next  PathStep
}

type PathExpression struct{ Step PathStep }

// ProcedureInvocation names a call into the procedure registry
// (pkg/procedure). Distinct requests argument deduplication for
// aggregating procedures.
type ProcedureInvocation struct {
	Namespace string
	Name      string
	Args      []Expr
	Distinct  bool
}

type ProcedureExpression struct{ Invocation ProcedureInvocation }

// CaseAlternative pairs a predicate/value with its result. With a Subject
// on the enclosing CaseExpression, Predicate is compared to Subject by
// equality; without one, Predicate must evaluate to a boolean.
type CaseAlternative struct {
	Predicate Expr
	Result    Expr
}

type CaseExpression struct {
	Subject      Expr // nil for the subject-less form
	Alternatives []CaseAlternative
	Default      Expr // nil means fall through to Null
}

// CountStar is `count(*)`; handled specially in aggregateEval and rejected
// by the planner outside an aggregation context.
type CountStar struct{}

func (IntegerLiteral) exprKind() string        { return "IntegerLiteral" }
func (DoubleLiteral) exprKind() string         { return "DoubleLiteral" }
func (StringLiteral) exprKind() string         { return "StringLiteral" }
func (BooleanLiteral) exprKind() string        { return "BooleanLiteral" }
func (NullLiteral) exprKind() string           { return "NullLiteral" }
func (ListLiteral) exprKind() string           { return "ListLiteral" }
func (MapExpression) exprKind() string         { return "MapExpression" }
func (Variable) exprKind() string              { return "Variable" }
func (Parameter) exprKind() string             { return "Parameter" }
func (Property) exprKind() string              { return "Property" }
func (ContainerIndex) exprKind() string        { return "ContainerIndex" }
func (Arithmetic) exprKind() string            { return "Arithmetic" }
func (Comparison) exprKind() string            { return "Comparison" }
func (And) exprKind() string                   { return "And" }
func (Or) exprKind() string                    { return "Or" }
func (Not) exprKind() string                   { return "Not" }
func (Ands) exprKind() string                  { return "Ands" }
func (Ors) exprKind() string                   { return "Ors" }
func (IsNull) exprKind() string                { return "IsNull" }
func (IsNotNull) exprKind() string             { return "IsNotNull" }
func (StringPredicate) exprKind() string       { return "StringPredicate" }
func (In) exprKind() string                    { return "In" }
func (HasLabels) exprKind() string             { return "HasLabels" }
func (PathExpression) exprKind() string        { return "PathExpression" }
func (ProcedureExpression) exprKind() string   { return "ProcedureExpression" }
func (CaseExpression) exprKind() string        { return "CaseExpression" }
func (CountStar) exprKind() string             { return "CountStar" }

func (NilPathStep) pathStepKind() string               { return "NilPathStep" }
func (NodePathStep) pathStepKind() string               { return "NodePathStep" }
func (SingleRelationshipPathStep) pathStepKind() string { return "SingleRelationshipPathStep" }
func (MultiRelationshipPathStep) pathStepKind() string  { return "MultiRelationshipPathStep" }
