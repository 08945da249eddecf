// Package metrics defines and registers all custom Prometheus metrics for the
// scoring API. It is the single source of truth for metric names, labels, and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "scoring"

// ── Scan metrics ──────────────────────────────────────────────────────────────

// ScansTotal counts completed document scans.
// Label:
//   - kind: "resume" or "profile"
var ScansTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scans_total",
		Help:      "Total number of document scans completed, by document kind.",
	},
	[]string{"kind"},
)

// GateDenialsTotal counts entitlement gate refusals.
// Labels:
//   - action: the gated action that was refused (e.g. "resume_scan")
//   - reason: "plan_expired", "quota_exhausted", or "entitlement_required"
var GateDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_denials_total",
		Help:      "Total number of actions refused by the usage gate.",
	},
	[]string{"action", "reason"},
)

// ── Billing metrics ───────────────────────────────────────────────────────────

// BillingEventsTotal counts webhook events by type and outcome.
// Labels:
//   - type: provider event name (e.g. "subscription_created")
//   - result: "accepted" (enqueued), "processed", or "error"
var BillingEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "billing_events_total",
		Help:      "Total number of billing webhook events, by type and outcome.",
	},
	[]string{"type", "result"},
)

// WebhookRejectionsTotal counts webhook deliveries rejected before parsing,
// currently only signature verification failures.
var WebhookRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_rejections_total",
		Help:      "Total number of webhook deliveries rejected for an invalid signature.",
	},
)

// DedupHitsTotal counts redelivered webhook events caught by the idempotency
// store before any state change.
var DedupHitsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "billing_dedup_hits_total",
		Help:      "Total number of redelivered billing events skipped as duplicates.",
	},
)

// QueueDepth tracks the number of billing events waiting in worker channels.
var QueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "billing_queue_depth",
		Help:      "Number of billing events enqueued and not yet processed.",
	},
)

// BillingProcessingDuration measures how long one billing event takes from
// dequeue to persistence.
// Label:
//   - type: provider event name
var BillingProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "billing_processing_duration_seconds",
		Help:      "Duration of billing event reconciliation from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"type"},
)
