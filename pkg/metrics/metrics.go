// Package metrics wraps prometheus/client_golang: a private
// *prometheus.Registry holding a small set of named collectors, built
// once via promauto.With and updated by the caller as work happens.
// This Registry carries only the three collectors a query runner needs —
// no HTTP metrics, storage metrics, or replication metrics, since this
// module has none of those subsystems — and nothing here starts an
// HTTP server or wires a /metrics handler; that remains the embedding
// application's decision.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the collectors a Runner updates around every query.
type Registry struct {
	registry *prometheus.Registry

	QueriesTotal  *prometheus.CounterVec
	QueryDuration prometheus.Histogram
	QueryRowsOut  prometheus.Histogram
}

// New builds a Registry with all collectors registered under namespace
// (e.g. "cyphercore" -> cyphercore_queries_total).
func New(namespace string) *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.QueriesTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of queries run, labeled by outcome.",
		},
		[]string{"status"},
	)

	r.QueryDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_duration_seconds",
			Help:      "Query execution duration in seconds, from parse through commit.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	r.QueryRowsOut = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_rows",
			Help:      "Number of rows a query produced.",
			Buckets:   []float64{0, 1, 10, 100, 1000, 10000},
		},
	)

	return r
}

// Registerer exposes the underlying registry so an embedding
// application can mount its own /metrics handler (via
// promhttp.HandlerFor) or register additional collectors alongside
// these. This package never does either itself.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Gatherer exposes the underlying registry for promhttp.HandlerFor or
// direct Gather() inspection in tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveSuccess records a successful query's duration and row count.
func (r *Registry) ObserveSuccess(elapsed time.Duration, rows int) {
	r.QueriesTotal.WithLabelValues("success").Inc()
	r.QueryDuration.Observe(elapsed.Seconds())
	r.QueryRowsOut.Observe(float64(rows))
}

// ObserveFailure records a failed query's duration; row count is
// always zero since a failed query never produces a result set.
func (r *Registry) ObserveFailure(elapsed time.Duration) {
	r.QueriesTotal.WithLabelValues("failure").Inc()
	r.QueryDuration.Observe(elapsed.Seconds())
}
