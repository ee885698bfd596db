// Package metrics defines and registers the portal gateway's custom
// Prometheus metrics. It is the single source of truth for metric names,
// labels, and help strings; request-level HTTP metrics come from the
// echoprometheus middleware and are not duplicated here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login outcomes.
// Label:
//   - result: "success", "invalid_credentials", "locked", "not_activated",
//     "validation", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// SignupsTotal counts signup outcomes.
// Label:
//   - result: "success", "duplicate", "validation", or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by outcome.",
	},
	[]string{"result"},
)

// AssistantTurnsTotal counts assistant chat turns.
// Label:
//   - outcome: "reply" or "error" ("error" covers in-conversation error
//     messages synthesized from upstream failures)
var AssistantTurnsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assistant_turns_total",
		Help:      "Total number of assistant chat turns, by outcome.",
	},
	[]string{"outcome"},
)

// AssistantRateLimitedTotal counts chat turns blocked by the local rate
// limiter before reaching the backend.
var AssistantRateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assistant_rate_limited_total",
		Help:      "Total number of assistant messages blocked by the rate limiter.",
	},
)

// AssistantTurnDuration measures a full chat turn from request to reply.
var AssistantTurnDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "assistant_turn_duration_seconds",
		Help:      "Duration of assistant chat turns end-to-end.",
		Buckets:   prometheus.DefBuckets,
	},
)

// UpstreamConnectivity reports the prober's current state as a 0/1 gauge per
// state, so dashboards can alert on disconnected.
// Label:
//   - state: "connected", "connecting", or "disconnected"
var UpstreamConnectivity = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "upstream_connectivity",
		Help:      "Current upstream connectivity state (1 for the active state).",
	},
	[]string{"state"},
)
