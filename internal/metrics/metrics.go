// Package metrics declares the Prometheus collectors of the ledger processes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kassenbuch"

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "HTTP requests by method, route and status code.",
}, []string{"method", "route", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route"})

var RateLimited = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "rate_limited_total",
	Help:      "Requests rejected by the rate limiter.",
})

var EntriesCreated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "entries_created_total",
	Help:      "Entries stored through the entry form or CLI.",
})

// EntryRejections is labelled by reason: missing_amount, invalid_amount,
// invalid_date, validation, store.
var EntryRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "entry_rejections_total",
	Help:      "Entry creations that were refused.",
}, []string{"reason"})

var LoadFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "load_failures_total",
	Help:      "Store reads that failed and emptied the view.",
})

var ViewRecomputations = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "view",
	Name:      "recomputations_total",
	Help:      "View recomputations triggered by UI events.",
})

var VisibleEntries = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "view",
	Name:      "visible_entries",
	Help:      "Rows in the current view.",
})

var BalanceCents = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "view",
	Name:      "balance_cents",
	Help:      "Balance of the current view in cents.",
})

// MirrorMessages is labelled by result: mirrored, duplicate, failed.
var MirrorMessages = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "mirror",
	Name:      "messages_total",
	Help:      "entry.created messages handled by the mirror worker.",
}, []string{"result"})
