package plan

import (
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/types"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// NodeScan emits every node carrying every named label and satisfying
// every property filter. Schema: [(variable, Node)].
type NodeScan struct {
	buffered
	Variable string
	Labels   []string
	Props    map[string]value.Value
}

func NewNodeScan(variable string, labels []string, props map[string]value.Value) *NodeScan {
	s := &NodeScan{Variable: variable, Labels: labels, Props: props}
	s.schema = frame.NewSchema(frame.Column{Name: variable, Type: types.Node})
	return s
}

func (s *NodeScan) Open(ctx *Context) error {
	nodes, err := ctx.Write.Nodes(s.Labels, s.Props)
	if err != nil {
		return err
	}
	rows := make([]frame.Row, len(nodes))
	for i, n := range nodes {
		rows[i] = frame.NewRow(value.NodeVal(n))
	}
	s.fill(frame.New(s.schema, rows))
	return nil
}

// RelationshipScan emits every relationship whose type is in Types (or
// every relationship if Types is empty). Schema: [(variable, Relationship)].
type RelationshipScan struct {
	buffered
	Variable string
	Types    []string
}

func NewRelationshipScan(variable string, relTypes []string) *RelationshipScan {
	s := &RelationshipScan{Variable: variable, Types: relTypes}
	s.schema = frame.NewSchema(frame.Column{Name: variable, Type: types.Relationship})
	return s
}

func (s *RelationshipScan) Open(ctx *Context) error {
	rels, err := ctx.Write.Relationships(s.Types)
	if err != nil {
		return err
	}
	rows := make([]frame.Row, len(rels))
	for i, r := range rels {
		rows[i] = frame.NewRow(value.RelVal(r))
	}
	s.fill(frame.New(s.schema, rows))
	return nil
}

// Expand: for each binding of From in Child's output, emits (from, rel,
// to) triples that traverse an outbound, inbound, or undirected edge whose
// type is in Types (or any if empty).
//
// MinHops/MaxHops extend Expand to variable-length relationships: a
// bounded breadth-first walk with a per-path visited-node set to avoid
// infinite loops on cyclic graphs. The default
// MinHops=MaxHops=1 is a plain single-hop expand, where Rel binds to one
// Relationship and To to one Node; any other bound makes Rel bind to a
// List<Relationship> (the traversed path segment) instead.
type Expand struct {
	buffered
	Child                Operator
	From, Rel, To        string
	Direction            graphmodel.Direction
	Types                []string
	MinHops, MaxHops     int
}

func NewExpand(child Operator, from, rel, to string, dir graphmodel.Direction, relTypes []string, minHops, maxHops int) *Expand {
	e := &Expand{Child: child, From: from, Rel: rel, To: to, Direction: dir, Types: relTypes, MinHops: minHops, MaxHops: maxHops}
	relType := types.Relationship
	if !e.singleHop() {
		relType = types.List(types.Relationship)
	}
	e.schema = child.Schema().Append(
		frame.Column{Name: rel, Type: relType},
		frame.Column{Name: to, Type: types.Node},
	)
	return e
}

func (e *Expand) singleHop() bool { return e.MinHops == 1 && e.MaxHops == 1 }

func (e *Expand) Open(ctx *Context) error {
	if err := e.Child.Open(ctx); err != nil {
		return err
	}
	childRows, err := drainAll(e.Child)
	if err != nil {
		return err
	}
	fromIdx := e.Child.Schema().IndexOf(e.From)

	var rows []frame.Row
	for _, in := range childRows {
		fromVal := in.At(fromIdx)
		node, ok := fromVal.AsNode()
		if !ok {
			continue
		}
		if e.singleHop() {
			rels, err := ctx.Write.Expand(node.ID, e.Direction, e.Types)
			if err != nil {
				return err
			}
			for _, r := range rels {
				toID := ctx.Write.OtherEnd(r, node.ID)
				toNode, ok, err := ctx.Write.NodeByID(toID)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				rows = append(rows, frame.NewRow(append(in.Values(), value.RelVal(r), value.NodeVal(toNode))...))
			}
			continue
		}
		segments, err := e.walkVariableLength(ctx, node.ID)
		if err != nil {
			return err
		}
		for _, seg := range segments {
			relList := make([]value.Value, len(seg.rels))
			for i, r := range seg.rels {
				relList[i] = value.RelVal(r)
			}
			rows = append(rows, frame.NewRow(append(in.Values(), value.List(relList), value.NodeVal(seg.end))...))
		}
	}
	e.fill(frame.New(e.schema, rows))
	return nil
}

type hopSegment struct {
	rels []*value.Relationship
	end  *value.Node
}

// walkVariableLength performs a bounded BFS from startID, yielding one
// hopSegment per distinct path of length in [MinHops, MaxHops], tracking
// visited node ids per branch so cycles terminate the walk instead of
// looping forever.
func (e *Expand) walkVariableLength(ctx *Context, startID uint64) ([]hopSegment, error) {
	type frontierEntry struct {
		nodeID  uint64
		rels    []*value.Relationship
		visited map[uint64]bool
	}

	var results []hopSegment
	frontier := []frontierEntry{{nodeID: startID, visited: map[uint64]bool{startID: true}}}

	for hop := 1; hop <= e.MaxHops; hop++ {
		var next []frontierEntry
		for _, entry := range frontier {
			rels, err := ctx.Write.Expand(entry.nodeID, e.Direction, e.Types)
			if err != nil {
				return nil, err
			}
			for _, r := range rels {
				toID := ctx.Write.OtherEnd(r, entry.nodeID)
				if entry.visited[toID] {
					continue
				}
				toNode, ok, err := ctx.Write.NodeByID(toID)
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				visited := make(map[uint64]bool, len(entry.visited)+1)
				for id := range entry.visited {
					visited[id] = true
				}
				visited[toID] = true
				path := make([]*value.Relationship, len(entry.rels)+1)
				copy(path, entry.rels)
				path[len(entry.rels)] = r

				if hop >= e.MinHops {
					results = append(results, hopSegment{rels: path, end: toNode})
				}
				next = append(next, frontierEntry{nodeID: toID, rels: path, visited: visited})
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return results, nil
}
