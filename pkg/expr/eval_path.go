package expr

import (
	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// evalPathExpression walks a PathStep chain, evaluating each node and
// relationship sub-expression and flattening the result into a single
// alternating node/rel/node/... Path value.
func evalPathExpression(n PathExpression, ctx *Context, procs Registry) (value.Value, error) {
	elems, err := walkPathStep(n.Step, ctx, procs)
	if err != nil {
		return value.Null, err
	}
	return value.PathVal(&value.Path{Elements: elems}), nil
}

func walkPathStep(step PathStep, ctx *Context, procs Registry) ([]value.Value, error) {
	switch s := step.(type) {
	case NilPathStep:
		return nil, nil

	case NodePathStep:
		nodeVal, err := Eval(s.Node, ctx, procs)
		if err != nil {
			return nil, err
		}
		rest, err := walkPathStep(s.Next, ctx, procs)
		if err != nil {
			return nil, err
		}
		return append([]value.Value{nodeVal}, rest...), nil

	case SingleRelationshipPathStep:
		relVal, err := Eval(s.Rel, ctx, procs)
		if err != nil {
			return nil, err
		}
		nodeVal, err := Eval(s.Node, ctx, procs)
		if err != nil {
			return nil, err
		}
		rest, err := walkPathStep(s.Next, ctx, procs)
		if err != nil {
			return nil, err
		}
		return append([]value.Value{relVal, nodeVal}, rest...), nil

	case MultiRelationshipPathStep:
		relsVal, err := Eval(s.Rels, ctx, procs)
		if err != nil {
			return nil, err
		}
		nodesVal, err := Eval(s.Nodes, ctx, procs)
		if err != nil {
			return nil, err
		}
		rels, ok := relsVal.AsList()
		if !ok {
			return nil, cerr.New("Eval", cerr.KindTypeMismatch, "variable-length path segment relationships must be a list")
		}
		nodes, ok := nodesVal.AsList()
		if !ok {
			return nil, cerr.New("Eval", cerr.KindTypeMismatch, "variable-length path segment nodes must be a list")
		}
		if len(nodes) != len(rels) {
			return nil, cerr.New("Eval", cerr.KindInvalidArgument, "variable-length path segment node/relationship count mismatch")
		}
		out := make([]value.Value, 0, len(rels)*2)
		for i := range rels {
			out = append(out, rels[i], nodes[i])
		}
		rest, err := walkPathStep(s.Next, ctx, procs)
		if err != nil {
			return nil, err
		}
		return append(out, rest...), nil

	default:
		return nil, cerr.New("Eval", cerr.KindInvalidArgument, "unknown path step")
	}
}
