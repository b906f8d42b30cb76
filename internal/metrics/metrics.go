// Package metrics holds the Prometheus collectors for grindstone. They
// register with the default registry and are served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "grind"

// ─── Use cases ──────────────────────────────────────────────────────────────

// UseCaseDuration tracks service use-case latency by name and outcome.
var UseCaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "use_case_duration_seconds",
	Help:      "Service use-case duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
}, []string{"use_case", "outcome"})

// ─── Points ─────────────────────────────────────────────────────────────────

// PointsAwarded tracks points credited to the wallet by source.
var PointsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "points_awarded_total",
	Help:      "Total points credited to the wallet.",
}, []string{"source"})

// PointsRevoked tracks points debited by un-toggling a completion.
var PointsRevoked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "points_revoked_total",
	Help:      "Total points debited from the wallet.",
})

// WalletBalance is the last observed wallet balance.
var WalletBalance = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Name:      "wallet_balance",
	Help:      "Current wallet balance.",
})

// SessionPoints is the distribution of session scores.
var SessionPoints = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "session_points",
	Help:      "Points scored per completed session.",
	Buckets:   []float64{10, 30, 60, 90, 180, 270, 540, 1080},
})

// ─── Activity ───────────────────────────────────────────────────────────────

// CompletionsToggled tracks completion toggles by direction (on/off).
var CompletionsToggled = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "completions_toggled_total",
	Help:      "Total task completion toggles.",
}, []string{"direction"})

// BadgesUnlocked tracks badges newly earned.
var BadgesUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "badges_unlocked_total",
	Help:      "Total badges unlocked.",
}, []string{"badge"})

// HistoryBackfilled tracks daily history records written by backfill.
var HistoryBackfilled = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "history_days_backfilled_total",
	Help:      "Total daily history records written by backfill.",
})

// LockRejections tracks mutations refused by the daily lock.
var LockRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "lock_rejections_total",
	Help:      "Total mutations rejected because the day is locked.",
}, []string{"operation"})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests tracks API requests by route pattern and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "http_requests_total",
	Help:      "Total HTTP API requests.",
}, []string{"route", "code"})
