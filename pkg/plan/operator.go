// Package plan implements the physical operator tree: every operator is a
// schema()+getNext() pull iterator with an explicit
// Unopened→Opened→Draining→Closed state machine, composed by pkg/runner
// into the tree a query compiles to.
//
// Every operator here builds its output eagerly in Open, using pkg/frame's
// materialized algebra, then streams it back out through Next in fixed-size
// batches. pkg/frame is itself materialized — full streaming execution
// with spill-to-disk is out of scope, see DESIGN.md — so this does not
// give up anything a true streaming engine would have provided; it keeps
// every operator's Next honest about the state machine and ordering
// contracts a query's semantics require without pretending to an
// execution model this module was never asked to build.
package plan

import (
	"io"

	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// State is a position in an Operator's Unopened→Opened→Draining→Closed
// lifecycle.
type State int

const (
	Unopened State = iota
	Opened
	Draining
	Closed
)

func (s State) String() string {
	switch s {
	case Unopened:
		return "Unopened"
	case Opened:
		return "Opened"
	case Draining:
		return "Draining"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Context is the per-run environment every operator Opens against: the
// graph model write handle every mutating operator shares (one write
// buffer per run), the procedure registry, bound query parameters, and —
// for the inner side of Apply — the single outer row currently
// correlated.
type Context struct {
	Write  graphmodel.Write
	Procs  expr.AggregatingRegistry
	Params map[string]value.Value
	Outer  map[string]value.Value
}

// exprContext builds the pkg/expr.Context this run's expressions evaluate
// against, seeded with the outer correlated row (if any).
func (c *Context) exprContext() *expr.Context {
	ctx := expr.NewContext(c.Params)
	if len(c.Outer) > 0 {
		ctx = ctx.WithVars(c.Outer)
	}
	return ctx
}

// batchSize bounds how many rows a single Next call returns.
const batchSize = 128

// Operator is one node of the physical tree. Open may be called at most
// once; Next after exhaustion returns io.EOF; Close is idempotent and
// safe to call from any state.
type Operator interface {
	Schema() frame.Schema
	Open(ctx *Context) error
	Next() ([]frame.Row, error)
	Close() error
	State() State
}

// buffered is the shared Next/Close/State machinery every operator here
// embeds: Open computes the operator's full output as a frame.DataFrame,
// stores it, and buffered streams it back out in batches.
type buffered struct {
	schema frame.Schema
	df     *frame.DataFrame
	cursor int
	state  State
	// drains marks operators that transition to Draining once Open has
	// fully consumed their child (OrderBy, Aggregation, Distinct, and a
	// deduplicating Union) rather than
	// remaining Opened while streaming through.
	drains bool
}

func (b *buffered) Schema() frame.Schema { return b.schema }
func (b *buffered) State() State         { return b.state }

func (b *buffered) fill(df *frame.DataFrame) {
	b.df = df
	b.cursor = 0
	if b.drains {
		b.state = Draining
	} else {
		b.state = Opened
	}
}

func (b *buffered) Next() ([]frame.Row, error) {
	if b.state == Unopened {
		return nil, wrongStateError{"Next", b.state}
	}
	if b.state == Closed {
		return nil, io.EOF
	}
	rows := b.df.Rows()
	if b.cursor >= len(rows) {
		return nil, io.EOF
	}
	end := b.cursor + batchSize
	if end > len(rows) {
		end = len(rows)
	}
	batch := rows[b.cursor:end]
	b.cursor = end
	return batch, nil
}

func (b *buffered) Close() error {
	b.df = nil
	b.cursor = 0
	b.state = Closed
	return nil
}

type wrongStateError struct {
	op    string
	state State
}

func (e wrongStateError) Error() string {
	return "plan: " + e.op + " called in state " + e.state.String()
}

// drainAll pulls every remaining row out of an already-opened operator,
// used by operators (Union, Apply, mutation pass-through) that need their
// child's full output rather than streaming it batch by batch.
func drainAll(op Operator) ([]frame.Row, error) {
	var all []frame.Row
	for {
		batch, err := op.Next()
		if err == io.EOF {
			return all, nil
		}
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
}
