// Package procedure implements the standard library of Cypher
// functions/procedures, plus the Registry that pkg/expr.Eval and
// pkg/expr.AggregateEval dispatch calls through.
package procedure

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/lattixdb/cyphercore/pkg/cerr"
	"github.com/lattixdb/cyphercore/pkg/expr"
	"github.com/lattixdb/cyphercore/pkg/value"
)

// Func is one registered procedure. Exactly one of Call or NewAggregator
// is set, matching whether the procedure is aggregating.
type Func struct {
	Namespace string `validate:"-"`
	Name      string `validate:"required"`
	MinArgs   int    `validate:"gte=0"`
	MaxArgs   int    `validate:"gte=-1"` // -1 means unbounded

	Aggregating bool

	Call          func(args []value.Value) (value.Value, error)
	NewAggregator func() expr.Aggregator
}

// Registry holds every registered Func, keyed by namespace-qualified name.
// It implements both expr.Registry and expr.AggregatingRegistry.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]*Func

	validate *validator.Validate
}

func key(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// NewRegistry builds a Registry pre-populated with the standard library
// (see stdlib.go).
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]*Func), validate: validator.New()}
	registerStdlib(r)
	return r
}

// Register validates a Func's declared shape (arity bounds must be
// internally consistent) and adds it, guarding against a bad shape
// before it can misbehave at call time.
func (r *Registry) Register(f *Func) error {
	if err := r.validate.Struct(f); err != nil {
		return cerr.Wrap("Register", cerr.KindInvalidArgument, "invalid procedure definition: "+f.Name, err)
	}
	if f.MaxArgs != -1 && f.MaxArgs < f.MinArgs {
		return cerr.New("Register", cerr.KindInvalidArgument, "MaxArgs below MinArgs for "+f.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[key(f.Namespace, f.Name)] = f
	return nil
}

func (r *Registry) lookup(namespace, name string) (*Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.funcs[key(namespace, name)]
	return f, ok
}

func (r *Registry) checkArity(f *Func, n int) error {
	if n < f.MinArgs || (f.MaxArgs != -1 && n > f.MaxArgs) {
		return cerr.New("Call", cerr.KindProcedureArity, f.Name)
	}
	return nil
}

// Call implements expr.Registry: dispatch to a non-aggregating procedure.
// distinct is accepted for interface symmetry with the aggregating path
// but has no effect here — DISTINCT only changes how an aggregating
// procedure's Aggregator folds its per-row argument stream (see
// Aggregator.Step), not how a scalar function evaluates a single call.
func (r *Registry) Call(namespace, name string, args []value.Value, distinct bool) (value.Value, error) {
	f, ok := r.lookup(namespace, name)
	if !ok {
		return value.Null, cerr.New("Call", cerr.KindUnknownProcedure, key(namespace, name))
	}
	if f.Aggregating {
		return value.Null, cerr.New("Call", cerr.KindNonAggregatingInAggregateContext, key(namespace, name))
	}
	if err := r.checkArity(f, len(args)); err != nil {
		return value.Null, err
	}
	return f.Call(args)
}

// IsAggregating implements expr.AggregatingRegistry.
func (r *Registry) IsAggregating(namespace, name string) bool {
	f, ok := r.lookup(namespace, name)
	return ok && f.Aggregating
}

// NewAggregator implements expr.AggregatingRegistry.
func (r *Registry) NewAggregator(namespace, name string) (expr.Aggregator, bool) {
	f, ok := r.lookup(namespace, name)
	if !ok || !f.Aggregating {
		return nil, false
	}
	return f.NewAggregator(), true
}
