// Package metrics provides Prometheus metrics for the dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fred_dashboard"

var (
	// UpstreamRequestsTotal counts FRED API calls by series and outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of FRED API requests",
		},
		[]string{"series_id", "status"},
	)

	// UpstreamDuration measures FRED API latency.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of FRED API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"series_id"},
	)

	// CacheRequestsTotal counts cache lookups by backend and result.
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Total number of series cache lookups",
		},
		[]string{"backend", "result"},
	)

	// RendersTotal counts dashboard renders by view state.
	RendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Total number of dashboard renders by outcome",
		},
		[]string{"outcome"},
	)
)

// Upstream outcomes.
const (
	StatusOK          = "ok"
	StatusError       = "error"
	StatusAuthError   = "auth_error"
	StatusEmptyResult = "empty"
)

// RecordUpstream records one FRED API call.
func RecordUpstream(seriesID, status string, seconds float64) {
	UpstreamRequestsTotal.WithLabelValues(seriesID, status).Inc()
	UpstreamDuration.WithLabelValues(seriesID).Observe(seconds)
}

// RecordCacheHit records a cache hit for the given backend ("redis" or "memory").
func RecordCacheHit(backend string) {
	CacheRequestsTotal.WithLabelValues(backend, "hit").Inc()
}

// RecordCacheMiss records a cache miss for the given backend.
func RecordCacheMiss(backend string) {
	CacheRequestsTotal.WithLabelValues(backend, "miss").Inc()
}

// RecordRender records a dashboard render outcome ("rendered", "no_data", "config_error", "invalid_input").
func RecordRender(outcome string) {
	RendersTotal.WithLabelValues(outcome).Inc()
}
