package graphmodel

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// MemoryModel is an in-memory Model, holding value.Node/value.Relationship
// directly rather than a binary-encoded property value, since nothing here
// needs an on-disk wire format. A single RWMutex guards the whole store;
// the pull-based single-threaded evaluator never contends on it beyond
// concurrent read-only queries.
type MemoryModel struct {
	id uuid.UUID

	mu       sync.RWMutex
	nextID   uint64
	nodes    map[uint64]*value.Node
	rels     map[uint64]*value.Relationship
	outgoing map[uint64][]uint64
	incoming map[uint64][]uint64
}

// NewMemoryModel builds an empty in-memory graph. The instance carries a
// random id (surfaced via ID) purely so pkg/logging and pkg/metrics can
// tag output with which graph instance a query ran against when a process
// hosts more than one.
func NewMemoryModel() *MemoryModel {
	return &MemoryModel{
		id:       uuid.New(),
		nodes:    make(map[uint64]*value.Node),
		rels:     make(map[uint64]*value.Relationship),
		outgoing: make(map[uint64][]uint64),
		incoming: make(map[uint64][]uint64),
	}
}

// ID reports the instance identifier assigned at construction.
func (m *MemoryModel) ID() uuid.UUID { return m.id }

func (m *MemoryModel) allocID() uint64 {
	return atomic.AddUint64(&m.nextID, 1)
}

func (m *MemoryModel) Nodes(labels []string, props map[string]value.Value) ([]*value.Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*value.Node
	for _, n := range m.nodes {
		if nodeMatches(n, labels, props) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *MemoryModel) Relationships(types []string) ([]*value.Relationship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*value.Relationship
	for _, r := range m.rels {
		if relMatchesType(r, types) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryModel) Expand(from uint64, dir Direction, types []string) ([]*value.Relationship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var candidateIDs []uint64
	switch dir {
	case Outgoing:
		candidateIDs = m.outgoing[from]
	case Incoming:
		candidateIDs = m.incoming[from]
	default:
		candidateIDs = append(append([]uint64(nil), m.outgoing[from]...), m.incoming[from]...)
	}
	var out []*value.Relationship
	seen := make(map[uint64]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		r, ok := m.rels[id]
		if !ok {
			continue
		}
		if relMatchesType(r, types) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryModel) NodeByID(id uint64) (*value.Node, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nodes[id]
	return n, ok, nil
}

func (m *MemoryModel) RelByID(id uint64) (*value.Relationship, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rels[id]
	return r, ok, nil
}

func (m *MemoryModel) OtherEnd(rel *value.Relationship, fromID uint64) uint64 {
	if rel.StartID == fromID {
		return rel.EndID
	}
	return rel.StartID
}

// Begin starts a new Write against m, scoped to a single query run.
func (m *MemoryModel) Begin() Write {
	return &memoryWrite{
		model:        m,
		shadowNodes:  make(map[uint64]*value.Node),
		shadowRels:   make(map[uint64]*value.Relationship),
		deletedNodes: make(map[uint64]bool),
		deletedRels:  make(map[uint64]bool),
	}
}

func nodeMatches(n *value.Node, labels []string, props map[string]value.Value) bool {
	for _, l := range labels {
		if !n.HasLabel(l) {
			return false
		}
	}
	for k, want := range props {
		got, ok := n.Properties.Get(k)
		if !ok {
			return false
		}
		eq, cok := value.Equal(got, want)
		if !cok || !eq {
			return false
		}
	}
	return true
}

func relMatchesType(r *value.Relationship, types []string) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if r.Type == t {
			return true
		}
	}
	return false
}

// entityIOError wraps a store-invariant violation (e.g. deleting a node
// that still has relationships) as the GraphIOError kind so callers above
// pkg/graphmodel don't need to know the store is in-memory.
func entityIOError(op, msg string) error {
	return cerr.New(op, cerr.KindGraphIOError, msg)
}
