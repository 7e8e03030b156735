package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A nil *Metrics is
// valid and records nothing, so services can be built without one in tests.
type Metrics struct {
	// Intake outcomes by kind (case, registration) and outcome
	Submissions *prometheus.CounterVec

	// Notifications that did not reach the gateway or were refused by it
	NotificationsFailed *prometheus.CounterVec

	// Record store round trips by operation
	RecordStoreLatency *prometheus.HistogramVec

	// HTTP latency by method and route pattern
	RequestLatency *prometheus.HistogramVec

	AggregationLatency prometheus.Histogram

	// Dashboard snapshot cache lookups by result (hit, miss, error)
	CacheLookups *prometheus.CounterVec
}

// New creates all application metrics and registers them with reg. Pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sherialink_submissions_total",
			Help: "Total intake submissions by kind and outcome",
		}, []string{"kind", "outcome"}),

		NotificationsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sherialink_notifications_failed_total",
			Help: "Total confirmation messages that could not be delivered",
		}, []string{"reason"}),

		RecordStoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sherialink_record_store_request_duration_seconds",
			Help:    "Duration of record store requests by operation",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),

		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sherialink_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		AggregationLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sherialink_dashboard_aggregation_duration_seconds",
			Help:    "Duration of dashboard summary computation",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sherialink_dashboard_cache_lookups_total",
			Help: "Dashboard snapshot cache lookups by result",
		}, []string{"result"}),
	}
}

// IncrementSubmission records one intake outcome.
func (m *Metrics) IncrementSubmission(kind, outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(kind, outcome).Inc()
	}
}

// IncrementNotificationFailed records a confirmation message that was not delivered.
func (m *Metrics) IncrementNotificationFailed(reason string) {
	if m != nil {
		m.NotificationsFailed.WithLabelValues(reason).Inc()
	}
}

// ObserveRecordStoreLatency records the duration of one record store call.
func (m *Metrics) ObserveRecordStoreLatency(operation string, d time.Duration) {
	if m != nil {
		m.RecordStoreLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// ObserveRequestLatency records the duration of one HTTP request.
func (m *Metrics) ObserveRequestLatency(method, route string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(method, route).Observe(d.Seconds())
	}
}

// ObserveAggregationLatency records the duration of one summary computation.
func (m *Metrics) ObserveAggregationLatency(d time.Duration) {
	if m != nil {
		m.AggregationLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}
