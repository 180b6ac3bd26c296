// Package graphmodel is the external boundary the physical operator tree
// (pkg/plan) reads from and writes through: an abstract property-graph
// store, independent of how or where the graph is actually persisted.
// It ships one in-memory implementation; a durable backend would satisfy
// the same interfaces without pkg/plan changing at all.
package graphmodel

import "github.com/lattixdb/cyphercore/pkg/value"

// Direction constrains a relationship traversal.
type Direction uint8

const (
	Outgoing Direction = iota
	Incoming
	Either
)

// Model is the read side of the graph-model boundary.
type Model interface {
	// Nodes streams every node carrying every one of labels (labels may be
	// empty to mean "any label") whose properties are a superset of props
	// (props may be nil/empty to mean "no filter"). Implementations may
	// use an index for this lookup; the in-memory adapter scans.
	Nodes(labels []string, props map[string]value.Value) ([]*value.Node, error)

	// Relationships streams every relationship whose type is in types (or
	// every relationship if types is empty).
	Relationships(types []string) ([]*value.Relationship, error)

	// Expand returns the relationships incident to from in the given
	// direction, restricted to types (or all types if empty).
	Expand(from uint64, dir Direction, types []string) ([]*value.Relationship, error)

	// NodeByID looks up a single node; ok is false if it does not exist.
	NodeByID(id uint64) (*value.Node, bool, error)

	// RelByID looks up a single relationship; ok is false if it does not exist.
	RelByID(id uint64) (*value.Relationship, bool, error)

	// OtherEnd returns the node at the opposite end of rel from the node
	// identified by fromID, used by Expand-driven traversal to step onto
	// the next node without a second round trip to NodeByID.
	OtherEnd(rel *value.Relationship, fromID uint64) uint64
}

// Store is the full graph-model boundary: read access via Model plus the
// ability to begin a new Write scoped to a single query run.
type Store interface {
	Model

	// Begin starts a new Write against the store.
	Begin() Write
}

// NodeSpec describes a node to create: CREATE and MERGE both build one of
// these per pattern element before handing it to Write.CreateElements.
type NodeSpec struct {
	Labels     []string
	Properties *value.OrderedMap
}

// RelSpec describes a relationship to create between two not-yet-assigned
// node positions, identified by index into the NodeSpec slice passed
// alongside it in the same CreateElements call (or an already-existing
// node id via ExistingStart/ExistingEnd).
type RelSpec struct {
	Type       string
	Properties *value.OrderedMap

	StartIndex   int  // index into the sibling NodeSpec slice, or -1
	EndIndex     int  // index into the sibling NodeSpec slice, or -1
	ExistingStart uint64
	ExistingEnd   uint64
}

// CreatedElements reports the ids assigned to a CreateElements call, in
// the same order as the NodeSpec/RelSpec slices passed in.
type CreatedElements struct {
	NodeIDs []uint64
	RelIDs  []uint64
}

// Write is the mutation side of the graph-model boundary. A single Write
// is scoped to one query run: every mutating operator in the physical
// tree (Create, Merge, SetProperty, Delete) writes through the same Write
// value, and the runner calls Commit exactly once after the whole
// operator tree has drained successfully, or never calls it at all if the
// run fails.
type Write interface {
	Model

	// CreateElements stages new nodes and relationships. It returns their
	// assigned ids immediately so later operators in the same row can
	// reference them (e.g. building a path expression over what was just
	// created), even though the write isn't durable until Commit.
	CreateElements(nodes []NodeSpec, rels []RelSpec) (CreatedElements, error)

	// SetProperty stages a property write on an existing node or
	// relationship. value.Null deletes the property.
	SetProperty(entityID uint64, isRelationship bool, key string, v value.Value) error

	// Delete stages removal of a node or relationship. detachRelationships
	// requests that a node's incident relationships be deleted too (Cypher's
	// DETACH DELETE); deleting a node that still has relationships without
	// it is an error.
	Delete(entityID uint64, isRelationship bool, detachRelationships bool) error

	// Commit makes every staged change visible. Called at most once.
	Commit() error
}
