package plan

import "github.com/lattixdb/cyphercore/pkg/frame"

// Unit is the empty-schema, single-row source every standalone clause with
// no preceding read (a bare CREATE, a WITH 1 AS x, an UNWIND with no
// MATCH before it) is planted on top of, the same role SQL engines give a
// "DUAL" table: one row to project or mutate through, carrying no columns
// of its own.
type Unit struct {
	buffered
}

func NewUnit() *Unit {
	u := &Unit{}
	u.schema = frame.NewSchema()
	return u
}

func (u *Unit) Open(ctx *Context) error {
	u.fill(frame.New(u.schema, []frame.Row{frame.NewRow()}))
	return nil
}
