package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattixdb/cyphercore/pkg/metrics"
)

func TestObserveSuccessIncrementsCounterAndHistograms(t *testing.T) {
	r := metrics.New("cyphercore_test_success")

	r.ObserveSuccess(5*time.Millisecond, 3)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.QueriesTotal.WithLabelValues("success")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.QueryDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(r.QueryRowsOut))
}

func TestObserveFailureIncrementsFailureLabelOnly(t *testing.T) {
	r := metrics.New("cyphercore_test_failure")

	r.ObserveFailure(2 * time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(r.QueriesTotal.WithLabelValues("failure")))
	assert.Equal(t, float64(0), testutil.ToFloat64(r.QueriesTotal.WithLabelValues("success")))
}

func TestGathererReportsNamespacedMetricNames(t *testing.T) {
	r := metrics.New("cyphercore_test_gather")
	r.ObserveSuccess(time.Millisecond, 1)

	families, err := r.Gatherer().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"cyphercore_test_gather_queries_total",
		"cyphercore_test_gather_query_duration_seconds",
		"cyphercore_test_gather_query_rows",
	} {
		assert.True(t, names[want], "missing metric family %q, got %v", want, names)
	}
}
