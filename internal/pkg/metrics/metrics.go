// Package metrics defines and registers the console's Prometheus metrics. It
// is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; the console host exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mytime"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts completed login attempts.
// Label:
//   - outcome: "ok", "invalid_credentials" or "transport_error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginJoinedTotal counts login calls that joined an attempt already in flight.
var LoginJoinedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_joined_total",
		Help:      "Total number of login calls that shared an in-flight attempt.",
	},
)

// LogoutsTotal counts session teardowns.
// Label:
//   - reason: "user" or "inactivity"
var LogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logouts, by reason.",
	},
	[]string{"reason"},
)

// AuthStateTransitionsTotal counts published changes of the authenticated flag.
// Label:
//   - state: "authenticated" or "unauthenticated"
var AuthStateTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_state_transitions_total",
		Help:      "Total number of authentication state transitions.",
	},
	[]string{"state"},
)

// ── Navigation metrics ────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard evaluations.
// Labels:
//   - guard: "admin", "user" or "administrator"
//   - outcome: "permit", "deny_login" or "deny_dashboard"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions.",
	},
	[]string{"guard", "outcome"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// AuditEnrichmentsTotal counts entity payloads stamped with audit fields.
// Label:
//   - kind: "create" when creation metadata was filled, otherwise "update"
var AuditEnrichmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_enrichments_total",
		Help:      "Total number of audit enrichments applied to outgoing entities.",
	},
	[]string{"kind"},
)

// BackendRequestsInFlight is the number of backend requests currently pending.
// Requests to background endpoints are not counted.
var BackendRequestsInFlight = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backend_requests_in_flight",
		Help:      "Current number of foreground backend requests in flight.",
	},
)

// BackendRequestDuration measures backend round trips.
// Label:
//   - status: HTTP status code, or "error" on transport failure
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)
