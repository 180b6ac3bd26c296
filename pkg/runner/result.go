package runner

import (
	"time"

	"github.com/lattixdb/cyphercore/pkg/frame"
)

// StepProfile records one stage's timing and row count.
type StepProfile struct {
	Name     string
	Duration time.Duration
	RowsOut  int
}

// Result is what Runner.Run returns: the projected columns, the rows
// that satisfy them, and (only when the query text carried an EXPLAIN/
// PROFILE prefix) plan text or one timing entry for the whole tree.
type Result struct {
	Columns []string
	Rows    []frame.Row
	Schema  frame.Schema
	Elapsed time.Duration

	// Explain holds a human-readable rendering of the compiled operator
	// tree; set only for statements with an EXPLAIN prefix, in which case
	// Rows is empty (the query was planned, not run).
	Explain string
	Profile []StepProfile
}

// Count returns the number of result rows.
func (r *Result) Count() int { return len(r.Rows) }
