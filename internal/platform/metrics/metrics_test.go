package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementSubmission("case", "accepted")
	m.IncrementSubmission("case", "accepted")
	m.IncrementSubmission("registration", "rejected")
	m.IncrementNotificationFailed("gateway_error")
	m.IncrementCacheLookup("hit")
	m.ObserveRecordStoreLatency("create_case", 120*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues("case", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("registration", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsFailed.WithLabelValues("gateway_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RecordStoreLatency))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementSubmission("case", "accepted")
		m.IncrementNotificationFailed("missing_api_key")
		m.ObserveRecordStoreLatency("list_cases", time.Second)
		m.ObserveRequestLatency("GET", "/cases", time.Second)
		m.ObserveAggregationLatency(time.Millisecond)
		m.IncrementCacheLookup("miss")
	})
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
