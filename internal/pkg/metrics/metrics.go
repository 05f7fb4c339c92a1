// Package metrics registers the Prometheus collectors of the marketplace service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BidsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_bids_submitted_total",
		Help: "Bids committed against transport requests",
	})

	BidsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_bids_accepted_total",
		Help: "Bids accepted by requesters",
	})

	ConflictsRetried = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_conflicts_retried_total",
		Help: "Optimistic concurrency conflicts that were retried",
	}, []string{"operation"})

	OutboxPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_outbox_published_total",
		Help: "Domain events published from the outbox",
	})

	OutboxFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_outbox_failed_total",
		Help: "Outbox publish attempts that failed",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketplace_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// RecordConflictRetry matches the retry.Config OnRetry signature.
func RecordConflictRetry(operation string, _ int, _ error) {
	ConflictsRetried.WithLabelValues(operation).Inc()
}
