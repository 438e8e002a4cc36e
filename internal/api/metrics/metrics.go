// Package metrics defines the custom Prometheus metrics of the platform.
// Metrics are registered on the default registry at package init via promauto
// and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fundbridge"

// ── Gate and auth status ──────────────────────────────────────────────────────

// GateDecisionsTotal counts page gate outcomes.
// Label:
//   - decision: "pass", "redirect_login", "redirect_registration", "redirect_home",
//     "redirect_role", "unavailable", "skip"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of page gate decisions, by decision.",
	},
	[]string{"decision"},
)

// AuthStatusTotal counts auth status responses.
// Label:
//   - outcome: "authenticated", "unauthenticated", "degraded", "unavailable", "error"
var AuthStatusTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_status_total",
		Help:      "Total number of auth status requests, by outcome.",
	},
	[]string{"outcome"},
)

// StatusRoundTripDuration measures the gate's call to the status endpoint.
// Label:
//   - result: "ok", "timeout", "degraded", "unavailable"
var StatusRoundTripDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gate_status_round_trip_seconds",
		Help:      "Duration of the gate's auth status round-trip, including retries.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ResolverFailuresTotal counts user store failures seen while resolving a role.
// Label:
//   - policy: "fail-open" or "fail-closed"
var ResolverFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolver_failures_total",
		Help:      "Total number of role resolver failures, by applied policy.",
	},
	[]string{"policy"},
)

// ── Payments ──────────────────────────────────────────────────────────────────

// PaymentEventsProcessedTotal counts webhook events settled into the ledger.
var PaymentEventsProcessedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_events_processed_total",
		Help:      "Total number of payment events credited to a project.",
	},
)

// PaymentEventsErrorsTotal counts webhook events that failed processing.
// Label:
//   - reason: "invalid_signature", "project_not_found", "process_failed"
var PaymentEventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_events_errors_total",
		Help:      "Total number of payment events that failed processing.",
	},
	[]string{"reason"},
)

// PaymentQueueDepth tracks events waiting in each dispatcher worker channel.
var PaymentQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "payment_queue_depth",
		Help:      "Current number of payment events pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)

// PaymentProcessingDuration measures dequeue to ledger write.
// Label:
//   - result: "ok" or "error"
var PaymentProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_processing_duration_seconds",
		Help:      "Duration of payment event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Projects ──────────────────────────────────────────────────────────────────

var ProjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created.",
	},
)

var InvestmentIntentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "investment_intents_total",
		Help:      "Total number of payment intents opened for investments.",
	},
)
