// Package metrics defines and registers all custom Prometheus metrics for
// the SpotCheck client. It is the single source of truth for metric names,
// labels, and help strings; everything registers with the default registry
// at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spotcheck"

// ── Backend request metrics ──────────────────────────────────────────────────

// APIRequestsTotal counts calls to the café backend.
// Labels:
//   - operation: the gateway operation (e.g. "list_all", "get_by_id")
//   - outcome: "ok", "remote_error", "not_found", or "transport_error"
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of requests issued to the café backend.",
	},
	[]string{"operation", "outcome"},
)

// APIRequestDuration measures backend round-trip time per operation.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of café backend requests, from send to decode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Cache metrics ────────────────────────────────────────────────────────────

// CacheLookupsTotal counts keyed café-cache lookups.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of café cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// CacheInvalidationsTotal counts cache entries dropped after mutations.
var CacheInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of café cache invalidations.",
	},
)
