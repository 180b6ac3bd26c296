package runner

import (
	"context"
	"io"
	"time"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/cypherparse"
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/frame"
	"github.com/lattixdb/cyphercore/pkg/graphmodel"
	"github.com/lattixdb/cyphercore/pkg/logging"
	"github.com/lattixdb/cyphercore/pkg/metrics"
	"github.com/lattixdb/cyphercore/pkg/plan"
	"github.com/lattixdb/cyphercore/pkg/procedure"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// DefaultMaxCachedStatements bounds a Runner's StatementCache absent an
// explicit WithMaxCachedStatements call.
const DefaultMaxCachedStatements = 256

// Runner is the single entry point a caller drives one query at a time:
// parse (or fetch from cache) -> compile -> optimize -> execute -> commit
// on success. A Runner never caches a built operator tree — pkg/plan.Operator
// instances are single-use (Open may only run once per instance), so
// what's cached here is the parsed Statement, and a fresh tree is
// compiled from it on every call.
type Runner struct {
	Model graphmodel.Store
	Procs expr.AggregatingRegistry
	cache *StatementCache
	stats *StatisticsTracker

	// MaxHops bounds an unbounded variable-length relationship pattern
	// (`*` or `*2..`) parsed by this Runner. Defaults to
	// cypherparse.DefaultMaxHops; change it with WithMaxHops.
	MaxHops int

	// QueryTimeout, when non-zero, is applied as a deadline around Run's
	// execute phase: a query found past this duration (checked after the
	// tree's Open returns and between Next batches) fails with a
	// cerr.KindQueryTimeout error. Open itself is not interrupted. Zero
	// (the default) disables the deadline. Change it with WithQueryTimeout.
	QueryTimeout time.Duration

	// Logger and Metrics are both optional; a Runner built via New logs
	// nothing and records nothing until one is attached with WithLogger
	// or WithMetrics. Both are safe to call concurrently with Run.
	Logger  *logging.Logger
	Metrics *metrics.Registry
}

// New builds a Runner over model with the standard procedure library.
// Pass a *procedure.Registry built with extra registrations to extend it.
func New(model graphmodel.Store) *Runner {
	return &Runner{
		Model:   model,
		Procs:   procedure.NewRegistry(),
		cache:   NewStatementCache(DefaultMaxCachedStatements),
		stats:   NewStatisticsTracker(),
		MaxHops: cypherparse.DefaultMaxHops,
	}
}

// WithLogger attaches l and returns r, so New(model).WithLogger(l) chains.
func (r *Runner) WithLogger(l *logging.Logger) *Runner {
	r.Logger = l
	return r
}

// WithMetrics attaches m and returns r, so New(model).WithMetrics(m) chains.
func (r *Runner) WithMetrics(m *metrics.Registry) *Runner {
	r.Metrics = m
	return r
}

// WithMaxHops sets the cap applied to unbounded variable-length patterns
// and returns r, so New(model).WithMaxHops(n) chains.
func (r *Runner) WithMaxHops(n int) *Runner {
	r.MaxHops = n
	return r
}

// WithQueryTimeout sets the per-query execution deadline and returns r,
// so New(model).WithQueryTimeout(d) chains. d <= 0 disables the deadline.
func (r *Runner) WithQueryTimeout(d time.Duration) *Runner {
	r.QueryTimeout = d
	return r
}

// WithMaxCachedStatements resizes the parsed-statement cache and returns
// r, so New(model).WithMaxCachedStatements(n) chains. Call it before the
// first Run: it discards whatever the Runner had already cached.
func (r *Runner) WithMaxCachedStatements(n int) *Runner {
	r.cache = NewStatementCache(n)
	return r
}

// Run parses (or reuses a cached parse of) queryText, compiles it against
// a fresh write buffer, executes it, and commits the write on success.
// Params bind any $name parameters the query text references. When
// QueryTimeout is set, Run derives a deadline from ctx for the execute
// phase and fails with a cerr.KindQueryTimeout error if it is exceeded.
func (r *Runner) Run(ctx context.Context, queryText string, params map[string]value.Value) (*Result, error) {
	start := time.Now()
	if r.Logger != nil {
		r.Logger.QueryStart(queryText)
	}

	stmt, err := r.parse(queryText)
	if err != nil {
		r.fail(queryText, start, err)
		return nil, err
	}

	write := r.Model.Begin()
	pctx := &plan.Context{Write: write, Procs: r.Procs, Params: params}

	op, err := CompileQuery(stmt.Query, pctx)
	if err != nil {
		r.fail(queryText, start, err)
		return nil, err
	}
	op = plan.Optimize(op)

	if stmt.Explain {
		return explainResult(op), nil
	}

	if r.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.QueryTimeout)
		defer cancel()
	}

	rows, schema, profiles, err := r.execute(ctx, op, pctx, stmt.Profile)
	if err != nil {
		r.fail(queryText, start, err)
		return nil, err
	}
	if err := write.Commit(); err != nil {
		r.fail(queryText, start, err)
		return nil, err
	}

	elapsed := time.Since(start)
	r.stats.Record(queryText, elapsed, true)
	if r.Logger != nil {
		r.Logger.QueryCommit(queryText, elapsed, len(rows))
	}
	if r.Metrics != nil {
		r.Metrics.ObserveSuccess(elapsed, len(rows))
	}

	return &Result{
		Columns: columnNames(schema),
		Rows:    rows,
		Schema:  schema,
		Elapsed: elapsed,
		Profile: profiles,
	}, nil
}

// fail records a failed run's statistics, log line, and metrics; called
// from every error return in Run so the three stay in lockstep.
func (r *Runner) fail(queryText string, start time.Time, err error) {
	elapsed := time.Since(start)
	r.stats.Record(queryText, elapsed, false)
	if r.Logger != nil {
		kind, ok := cerr.KindOf(err)
		kindStr := "unknown"
		if ok {
			kindStr = kind.String()
		}
		r.Logger.QueryError(queryText, elapsed, kindStr, err)
	}
	if r.Metrics != nil {
		r.Metrics.ObserveFailure(elapsed)
	}
}

func (r *Runner) parse(queryText string) (*cypherparse.Statement, error) {
	if stmt, ok := r.cache.Get(queryText); ok {
		return stmt, nil
	}
	stmt, err := cypherparse.ParseWithMaxHops(queryText, r.MaxHops)
	if err != nil {
		return nil, err
	}
	r.cache.Put(queryText, stmt)
	return stmt, nil
}

// execute opens op, drains every row it produces, and closes it. When
// profile is set, it additionally times the drain and records a single
// StepProfile — pkg/plan's operator tree has no per-node timing hooks,
// so PROFILE here reports the whole tree's wall time rather than a
// per-step breakdown.
//
// pkg/plan.Operator's Open and Next take no context, and every operator
// computes its whole output in Open, so cancellation is checked only
// after Open returns and between the batches Next hands back: the work
// done inside Open runs to completion however long it takes.
func (r *Runner) execute(ctx context.Context, op plan.Operator, pctx *plan.Context, profile bool) ([]frame.Row, frame.Schema, []StepProfile, error) {
	var profileStart time.Time
	if profile {
		profileStart = time.Now()
	}
	if err := op.Open(pctx); err != nil {
		return nil, frame.Schema{}, nil, err
	}
	defer op.Close()

	var rows []frame.Row
	for {
		select {
		case <-ctx.Done():
			return nil, frame.Schema{}, nil, cerr.Wrap("Runner.execute", cerr.KindQueryTimeout,
				"query exceeded its configured timeout", ctx.Err())
		default:
		}
		batch, err := op.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, frame.Schema{}, nil, err
		}
		if len(batch) == 0 {
			break
		}
		rows = append(rows, batch...)
	}

	var profiles []StepProfile
	if profile {
		profiles = []StepProfile{{
			Name:     describeTree(op),
			Duration: time.Since(profileStart),
			RowsOut:  len(rows),
		}}
	}
	return rows, op.Schema(), profiles, nil
}

func columnNames(schema frame.Schema) []string {
	cols := schema.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// TopQueries reports the most frequently executed query texts this
// Runner has seen, descending by execution count.
func (r *Runner) TopQueries(limit int) []*QueryStatistics {
	return r.stats.Top(limit)
}
