package graphmodel

import "github.com/lattixdb/cyphercore/pkg/value"

// memoryWrite is the explicit, per-run write journal used in place of a
// store-wide mutable write buffer: every mutating operator in one query's
// physical tree shares the same memoryWrite value, staged
// changes are visible to later reads within that same Write (so a row can
// see what an earlier row in the same run just created), and nothing
// touches the underlying MemoryModel until Commit.
type memoryWrite struct {
	model *MemoryModel

	shadowNodes  map[uint64]*value.Node
	shadowRels   map[uint64]*value.Relationship
	deletedNodes map[uint64]bool
	deletedRels  map[uint64]bool

	createdNodeIDs []uint64
	createdRelIDs  []uint64
}

func (w *memoryWrite) resolveNode(id uint64) (*value.Node, bool) {
	if w.deletedNodes[id] {
		return nil, false
	}
	if n, ok := w.shadowNodes[id]; ok {
		return n, true
	}
	n, ok, _ := w.model.NodeByID(id)
	return n, ok
}

func (w *memoryWrite) resolveRel(id uint64) (*value.Relationship, bool) {
	if w.deletedRels[id] {
		return nil, false
	}
	if r, ok := w.shadowRels[id]; ok {
		return r, true
	}
	r, ok, _ := w.model.RelByID(id)
	return r, ok
}

func (w *memoryWrite) Nodes(labels []string, props map[string]value.Value) ([]*value.Node, error) {
	base, err := w.model.Nodes(labels, props)
	if err != nil {
		return nil, err
	}
	seen := make(map[uint64]bool, len(base))
	var out []*value.Node
	for _, n := range base {
		if w.deletedNodes[n.ID] {
			continue
		}
		seen[n.ID] = true
		if shadow, ok := w.shadowNodes[n.ID]; ok {
			out = append(out, shadow)
			continue
		}
		out = append(out, n)
	}
	for id, n := range w.shadowNodes {
		if seen[id] {
			continue
		}
		if nodeMatches(n, labels, props) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (w *memoryWrite) Relationships(types []string) ([]*value.Relationship, error) {
	base, err := w.model.Relationships(types)
	if err != nil {
		return nil, err
	}
	seen := make(map[uint64]bool, len(base))
	var out []*value.Relationship
	for _, r := range base {
		if w.deletedRels[r.ID] {
			continue
		}
		seen[r.ID] = true
		if shadow, ok := w.shadowRels[r.ID]; ok {
			out = append(out, shadow)
			continue
		}
		out = append(out, r)
	}
	for id, r := range w.shadowRels {
		if seen[id] {
			continue
		}
		if relMatchesType(r, types) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (w *memoryWrite) Expand(from uint64, dir Direction, types []string) ([]*value.Relationship, error) {
	base, err := w.model.Expand(from, dir, types)
	if err != nil {
		return nil, err
	}
	var out []*value.Relationship
	for _, r := range base {
		if w.deletedRels[r.ID] {
			continue
		}
		if shadow, ok := w.shadowRels[r.ID]; ok {
			out = append(out, shadow)
			continue
		}
		out = append(out, r)
	}
	for id, r := range w.shadowRels {
		if _, fromBase := w.model.rels[id]; fromBase {
			continue // already covered above
		}
		if !relMatchesType(r, types) {
			continue
		}
		switch dir {
		case Outgoing:
			if r.StartID == from {
				out = append(out, r)
			}
		case Incoming:
			if r.EndID == from {
				out = append(out, r)
			}
		default:
			if r.StartID == from || r.EndID == from {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (w *memoryWrite) NodeByID(id uint64) (*value.Node, bool, error) {
	n, ok := w.resolveNode(id)
	return n, ok, nil
}

func (w *memoryWrite) RelByID(id uint64) (*value.Relationship, bool, error) {
	r, ok := w.resolveRel(id)
	return r, ok, nil
}

func (w *memoryWrite) OtherEnd(rel *value.Relationship, fromID uint64) uint64 {
	return w.model.OtherEnd(rel, fromID)
}

func (w *memoryWrite) CreateElements(nodes []NodeSpec, rels []RelSpec) (CreatedElements, error) {
	nodeIDs := make([]uint64, len(nodes))
	for i, spec := range nodes {
		id := w.model.allocID()
		props := spec.Properties
		if props == nil {
			props = value.NewOrderedMap()
		}
		n := &value.Node{ID: id, Labels: append([]string(nil), spec.Labels...), Properties: props}
		w.shadowNodes[id] = n
		w.createdNodeIDs = append(w.createdNodeIDs, id)
		nodeIDs[i] = id
	}

	relIDs := make([]uint64, len(rels))
	for i, spec := range rels {
		startID := spec.ExistingStart
		if spec.StartIndex >= 0 {
			startID = nodeIDs[spec.StartIndex]
		}
		endID := spec.ExistingEnd
		if spec.EndIndex >= 0 {
			endID = nodeIDs[spec.EndIndex]
		}
		if _, ok := w.resolveNode(startID); !ok {
			return CreatedElements{}, entityIOError("CreateElements", "relationship start node does not exist")
		}
		if _, ok := w.resolveNode(endID); !ok {
			return CreatedElements{}, entityIOError("CreateElements", "relationship end node does not exist")
		}
		id := w.model.allocID()
		props := spec.Properties
		if props == nil {
			props = value.NewOrderedMap()
		}
		r := &value.Relationship{ID: id, StartID: startID, EndID: endID, Type: spec.Type, Properties: props}
		w.shadowRels[id] = r
		w.createdRelIDs = append(w.createdRelIDs, id)
		relIDs[i] = id
	}

	return CreatedElements{NodeIDs: nodeIDs, RelIDs: relIDs}, nil
}

func (w *memoryWrite) SetProperty(entityID uint64, isRelationship bool, key string, v value.Value) error {
	if isRelationship {
		r, ok := w.resolveRel(entityID)
		if !ok {
			return entityIOError("SetProperty", "relationship does not exist")
		}
		clone := *r
		clone.Properties = r.Properties.Clone()
		if v.IsNull() {
			clone.Properties.Delete(key)
		} else {
			clone.Properties.Set(key, v)
		}
		w.shadowRels[entityID] = &clone
		return nil
	}
	n, ok := w.resolveNode(entityID)
	if !ok {
		return entityIOError("SetProperty", "node does not exist")
	}
	clone := *n
	clone.Properties = n.Properties.Clone()
	if v.IsNull() {
		clone.Properties.Delete(key)
	} else {
		clone.Properties.Set(key, v)
	}
	w.shadowNodes[entityID] = &clone
	return nil
}

func (w *memoryWrite) Delete(entityID uint64, isRelationship bool, detachRelationships bool) error {
	if isRelationship {
		if _, ok := w.resolveRel(entityID); !ok {
			return entityIOError("Delete", "relationship does not exist")
		}
		w.deletedRels[entityID] = true
		delete(w.shadowRels, entityID)
		return nil
	}

	if _, ok := w.resolveNode(entityID); !ok {
		return entityIOError("Delete", "node does not exist")
	}
	incident, err := w.Expand(entityID, Either, nil)
	if err != nil {
		return err
	}
	if len(incident) > 0 && !detachRelationships {
		return entityIOError("Delete", "cannot delete a node with relationships without DETACH")
	}
	for _, r := range incident {
		w.deletedRels[r.ID] = true
		delete(w.shadowRels, r.ID)
	}
	w.deletedNodes[entityID] = true
	delete(w.shadowNodes, entityID)
	return nil
}

// Commit applies every staged change to the backing MemoryModel under a
// single write lock. It is a logical no-op to call Commit on a Write with
// no staged changes; the runner still calls it unconditionally on success
// so a read-only query's Commit is just an uncontended lock/unlock.
func (w *memoryWrite) Commit() error {
	w.model.mu.Lock()
	defer w.model.mu.Unlock()

	for id := range w.deletedRels {
		w.removeRelAdjacency(id)
		delete(w.model.rels, id)
	}
	for id := range w.deletedNodes {
		delete(w.model.nodes, id)
		delete(w.model.outgoing, id)
		delete(w.model.incoming, id)
	}
	for id, n := range w.shadowNodes {
		w.model.nodes[id] = n
	}
	for id, r := range w.shadowRels {
		if _, existed := w.model.rels[id]; !existed {
			w.model.outgoing[r.StartID] = append(w.model.outgoing[r.StartID], id)
			w.model.incoming[r.EndID] = append(w.model.incoming[r.EndID], id)
		}
		w.model.rels[id] = r
	}
	return nil
}

func (w *memoryWrite) removeRelAdjacency(id uint64) {
	r, ok := w.model.rels[id]
	if !ok {
		return
	}
	w.model.outgoing[r.StartID] = removeID(w.model.outgoing[r.StartID], id)
	w.model.incoming[r.EndID] = removeID(w.model.incoming[r.EndID], id)
}

func removeID(ids []uint64, target uint64) []uint64 {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
