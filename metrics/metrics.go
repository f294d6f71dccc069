// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Calculation Metrics ────────────────────────────────────────────────────

// Calculations counts completed calculations by formula branch.
var Calculations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loancalc",
	Subsystem: "calculator",
	Name:      "calculations_total",
	Help:      "Total loan calculations by branch (annuity, zero_rate).",
}, []string{"branch"})

// InputErrors counts rejected inputs by field.
var InputErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loancalc",
	Subsystem: "calculator",
	Name:      "input_errors_total",
	Help:      "Total rejected loan inputs by offending field.",
}, []string{"field"})

// ─── Cache Metrics ──────────────────────────────────────────────────────────

// CacheLookups counts cache lookups by result (hit, miss, error).
var CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loancalc",
	Subsystem: "cache",
	Name:      "lookups_total",
	Help:      "Total result cache lookups by result.",
}, []string{"result"})

// ─── HTTP Metrics ───────────────────────────────────────────────────────────

// HTTPRequests counts served requests by route pattern and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loancalc",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests by route and status code.",
}, []string{"route", "code"})

// HTTPDuration tracks request latency by route pattern.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "loancalc",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route"})

// RateLimited counts requests rejected by the rate limiter.
var RateLimited = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "loancalc",
	Subsystem: "http",
	Name:      "rate_limited_total",
	Help:      "Total requests rejected by the per-client rate limiter.",
})
