package plan

import (
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/types"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// NodeCreateSpec describes one node pattern element of a CREATE/MERGE
// clause: a variable to bind the created node to, its literal labels, and
// its properties as expressions evaluated per input row (so a property
// like `{name: x.name}` sees that row's bindings).
type NodeCreateSpec struct {
	Variable   string
	Labels     []string
	Properties map[string]expr.Expr
}

// RelCreateSpec describes one relationship pattern element of a
// CREATE/MERGE clause. Its endpoints are resolved either against a node
// just created in the same clause (StartIndex/EndIndex into the sibling
// NodeCreateSpec slice, -1 if unused) or an already-bound row variable
// (ExistingStartVar/ExistingEndVar).
type RelCreateSpec struct {
	Variable         string
	Type             string
	Properties       map[string]expr.Expr
	StartIndex       int
	EndIndex         int
	ExistingStartVar string
	ExistingEndVar   string
}

// mutationOutputSchema builds child's schema extended with one Node column
// per NodeCreateSpec and one Relationship column per RelCreateSpec, the
// shape Create emits.
func mutationOutputSchema(child frame.Schema, nodes []NodeCreateSpec, rels []RelCreateSpec) frame.Schema {
	cols := make([]frame.Column, 0, len(nodes)+len(rels))
	for _, n := range nodes {
		cols = append(cols, frame.Column{Name: n.Variable, Type: types.Node})
	}
	for _, r := range rels {
		cols = append(cols, frame.Column{Name: r.Variable, Type: types.Relationship})
	}
	return child.Append(cols...)
}

func evalProperties(props map[string]expr.Expr, rowCtx *expr.Context, procs expr.Registry) (*value.OrderedMap, error) {
	m := value.NewOrderedMap()
	for k, e := range props {
		v, err := expr.Eval(e, rowCtx, procs)
		if err != nil {
			return nil, err
		}
		m.Set(k, v)
	}
	return m, nil
}

// createOne evaluates one CREATE pattern occurrence against a single input
// row and returns the values to append to that row: one Node value per
// NodeCreateSpec, then one Relationship value per RelCreateSpec.
func createOne(ctx *Context, rowCtx *expr.Context, schema frame.Schema, in frame.Row, nodes []NodeCreateSpec, rels []RelCreateSpec) ([]value.Value, error) {
	nodeSpecs := make([]graphmodel.NodeSpec, len(nodes))
	for i, n := range nodes {
		props, err := evalProperties(n.Properties, rowCtx, ctx.Procs)
		if err != nil {
			return nil, err
		}
		nodeSpecs[i] = graphmodel.NodeSpec{Labels: n.Labels, Properties: props}
	}

	relSpecs := make([]graphmodel.RelSpec, len(rels))
	for i, r := range rels {
		props, err := evalProperties(r.Properties, rowCtx, ctx.Procs)
		if err != nil {
			return nil, err
		}
		spec := graphmodel.RelSpec{Type: r.Type, Properties: props, StartIndex: -1, EndIndex: -1}
		if r.StartIndex >= 0 {
			spec.StartIndex = r.StartIndex
		} else if r.ExistingStartVar != "" {
			if n, ok := boundNode(schema, in, r.ExistingStartVar); ok {
				spec.ExistingStart = n.ID
			}
		}
		if r.EndIndex >= 0 {
			spec.EndIndex = r.EndIndex
		} else if r.ExistingEndVar != "" {
			if n, ok := boundNode(schema, in, r.ExistingEndVar); ok {
				spec.ExistingEnd = n.ID
			}
		}
		relSpecs[i] = spec
	}

	created, err := ctx.Write.CreateElements(nodeSpecs, relSpecs)
	if err != nil {
		return nil, err
	}

	out := make([]value.Value, 0, len(nodes)+len(rels))
	for _, id := range created.NodeIDs {
		n, ok, err := ctx.Write.NodeByID(id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, value.NodeVal(n))
		}
	}
	for _, id := range created.RelIDs {
		r, ok, err := ctx.Write.RelByID(id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, value.RelVal(r))
		}
	}
	return out, nil
}

func boundNode(schema frame.Schema, row frame.Row, variable string) (*value.Node, bool) {
	i := schema.IndexOf(variable)
	if i < 0 {
		return nil, false
	}
	return row.At(i).AsNode()
}

// Create accumulates writes in the graph model's write buffer and emits
// the input row extended with the newly created entities, per Cypher's
// CREATE ... RETURN semantics. Writes become visible after the single
// commit at the end of run().
type Create struct {
	buffered
	Child Operator
	Nodes []NodeCreateSpec
	Rels  []RelCreateSpec
}

func NewCreate(child Operator, nodes []NodeCreateSpec, rels []RelCreateSpec) *Create {
	c := &Create{Child: child, Nodes: nodes, Rels: rels}
	c.schema = mutationOutputSchema(child.Schema(), nodes, rels)
	return c
}

func (c *Create) Open(ctx *Context) error {
	if err := c.Child.Open(ctx); err != nil {
		return err
	}
	childRows, err := drainAll(c.Child)
	if err != nil {
		return err
	}
	childSchema := c.Child.Schema()

	rows := make([]frame.Row, 0, len(childRows))
	for _, in := range childRows {
		rowCtx := ctx.exprContext().WithVars(rowBindings(childSchema, in))
		created, err := createOne(ctx, rowCtx, childSchema, in, c.Nodes, c.Rels)
		if err != nil {
			return err
		}
		rows = append(rows, frame.NewRow(append(in.Values(), created...)...))
	}
	c.fill(frame.New(c.schema, rows))
	return nil
}

// Merge implements MERGE ... ON CREATE SET ... ON MATCH SET ...: for each
// input row, MatchLabels/MatchProps look for an existing node; if found,
// OnMatch property writes apply to the first match, else a node with
// MatchLabels and MatchProps is created and OnCreate property writes
// apply. Merge only supports a single node
// pattern (the common MERGE (n:Label {key: value}) shape); relationship
// MERGE composes with node MERGE via separate clauses, keeping node and
// relationship matching as separate concerns.
type Merge struct {
	buffered
	Child                    Operator
	Variable                 string
	MatchLabels              []string
	MatchProps               map[string]expr.Expr
	OnCreateProps, OnMatchProps map[string]expr.Expr
}

func NewMerge(child Operator, variable string, matchLabels []string, matchProps, onCreate, onMatch map[string]expr.Expr) *Merge {
	m := &Merge{Child: child, Variable: variable, MatchLabels: matchLabels, MatchProps: matchProps, OnCreateProps: onCreate, OnMatchProps: onMatch}
	m.schema = child.Schema().Append(frame.Column{Name: variable, Type: types.Node})
	return m
}

func (m *Merge) Open(ctx *Context) error {
	if err := m.Child.Open(ctx); err != nil {
		return err
	}
	childRows, err := drainAll(m.Child)
	if err != nil {
		return err
	}
	childSchema := m.Child.Schema()

	rows := make([]frame.Row, 0, len(childRows))
	for _, in := range childRows {
		rowCtx := ctx.exprContext().WithVars(rowBindings(childSchema, in))
		matchProps, err := evalProperties(m.MatchProps, rowCtx, ctx.Procs)
		if err != nil {
			return err
		}
		propFilter := map[string]value.Value{}
		for _, k := range matchProps.Keys() {
			v, _ := matchProps.Get(k)
			propFilter[k] = v
		}
		existing, err := ctx.Write.Nodes(m.MatchLabels, propFilter)
		if err != nil {
			return err
		}

		var node *value.Node
		if len(existing) > 0 {
			node = existing[0]
			if err := applyPropertyWrites(ctx, rowCtx, node.ID, false, m.OnMatchProps); err != nil {
				return err
			}
			node, _, err = ctx.Write.NodeByID(node.ID)
			if err != nil {
				return err
			}
		} else {
			created, err := ctx.Write.CreateElements([]graphmodel.NodeSpec{{Labels: m.MatchLabels, Properties: matchProps}}, nil)
			if err != nil {
				return err
			}
			n, ok, err := ctx.Write.NodeByID(created.NodeIDs[0])
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			node = n
			if err := applyPropertyWrites(ctx, rowCtx, node.ID, false, m.OnCreateProps); err != nil {
				return err
			}
			node, _, err = ctx.Write.NodeByID(node.ID)
			if err != nil {
				return err
			}
		}
		rows = append(rows, frame.NewRow(append(in.Values(), value.NodeVal(node))...))
	}
	m.fill(frame.New(m.schema, rows))
	return nil
}

func applyPropertyWrites(ctx *Context, rowCtx *expr.Context, entityID uint64, isRelationship bool, props map[string]expr.Expr) error {
	for k, e := range props {
		v, err := expr.Eval(e, rowCtx, ctx.Procs)
		if err != nil {
			return err
		}
		if err := ctx.Write.SetProperty(entityID, isRelationship, k, v); err != nil {
			return err
		}
	}
	return nil
}

// SetProperty stages a property write on the entity bound to Variable in
// each input row and emits the row unchanged.
type SetProperty struct {
	buffered
	Child          Operator
	Variable       string
	IsRelationship bool
	Key            string
	Value          expr.Expr
}

func NewSetProperty(child Operator, variable string, isRelationship bool, key string, v expr.Expr) *SetProperty {
	s := &SetProperty{Child: child, Variable: variable, IsRelationship: isRelationship, Key: key, Value: v}
	s.schema = child.Schema()
	return s
}

func (s *SetProperty) Open(ctx *Context) error {
	if err := s.Child.Open(ctx); err != nil {
		return err
	}
	childRows, err := drainAll(s.Child)
	if err != nil {
		return err
	}
	childSchema := s.Child.Schema()
	idx := childSchema.IndexOf(s.Variable)

	for _, in := range childRows {
		rowCtx := ctx.exprContext().WithVars(rowBindings(childSchema, in))
		v, err := expr.Eval(s.Value, rowCtx, ctx.Procs)
		if err != nil {
			return err
		}
		id, ok := entityID(in.At(idx), s.IsRelationship)
		if !ok {
			continue
		}
		if err := ctx.Write.SetProperty(id, s.IsRelationship, s.Key, v); err != nil {
			return err
		}
	}
	s.fill(frame.New(s.schema, childRows))
	return nil
}

func entityID(v value.Value, isRelationship bool) (uint64, bool) {
	if isRelationship {
		r, ok := v.AsRel()
		if !ok {
			return 0, false
		}
		return r.ID, true
	}
	n, ok := v.AsNode()
	if !ok {
		return 0, false
	}
	return n.ID, true
}

// Delete stages removal of the entity bound to Variable in each input row
// and emits the row unchanged. DetachRelationships requests DETACH DELETE
// semantics.
type Delete struct {
	buffered
	Child               Operator
	Variable            string
	IsRelationship      bool
	DetachRelationships bool
}

func NewDelete(child Operator, variable string, isRelationship, detach bool) *Delete {
	d := &Delete{Child: child, Variable: variable, IsRelationship: isRelationship, DetachRelationships: detach}
	d.schema = child.Schema()
	return d
}

func (d *Delete) Open(ctx *Context) error {
	if err := d.Child.Open(ctx); err != nil {
		return err
	}
	childRows, err := drainAll(d.Child)
	if err != nil {
		return err
	}
	idx := d.Child.Schema().IndexOf(d.Variable)

	for _, in := range childRows {
		id, ok := entityID(in.At(idx), d.IsRelationship)
		if !ok {
			continue
		}
		if err := ctx.Write.Delete(id, d.IsRelationship, d.DetachRelationships); err != nil {
			return err
		}
	}
	d.fill(frame.New(d.schema, childRows))
	return nil
}
