// Package metrics defines and registers all custom Prometheus metrics for the
// clinic portal API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected", "inactive", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts authorization gate decisions.
// Label:
//   - decision: "allow" or "redirect"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of navigation authorization decisions.",
	},
	[]string{"decision"},
)

// SearchLookupsTotal counts per-entity search lookups inside the aggregator.
// Labels:
//   - entity: "patient", "appointment", "treatment_plan", "treatment_order"
//   - result: "ok" or "error"
var SearchLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_lookups_total",
		Help:      "Total number of per-entity search lookups, by result.",
	},
	[]string{"entity", "result"},
)

// SearchDuration measures end-to-end aggregated search latency.
var SearchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Duration of a full cross-entity search, launch to merge.",
		Buckets:   prometheus.DefBuckets,
	},
)

// SessionFallbackTotal counts session writes that fell back to the
// non-durable tier because the durable medium rejected the write.
var SessionFallbackTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_fallback_total",
		Help:      "Total number of session writes degraded to the in-memory tier.",
	},
)

// AuditQueueDepth tracks the number of events waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
