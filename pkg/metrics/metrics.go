// Package metrics exposes the Prometheus collectors for upstream provider
// calls. Lookup traffic is the only interesting load in this service, so the
// surface is deliberately small.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequestsTotal counts calls to upstream providers by outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "railsathi_upstream_requests_total",
			Help: "Total upstream provider requests by provider and outcome",
		},
		[]string{"provider", "endpoint", "outcome"},
	)

	// UpstreamRequestDuration tracks upstream call latency.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "railsathi_upstream_request_duration_seconds",
			Help:    "Upstream provider request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "endpoint"},
	)
)

// ObserveUpstream records one upstream call.
func ObserveUpstream(provider, endpoint, outcome string, started time.Time) {
	UpstreamRequestsTotal.WithLabelValues(provider, endpoint, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(provider, endpoint).Observe(time.Since(started).Seconds())
}
