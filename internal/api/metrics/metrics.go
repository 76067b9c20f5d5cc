// Package metrics defines all custom Prometheus metrics for the portfolio
// API. It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// GateDecisionsTotal counts edge access gate outcomes.
// Label:
//   - decision: "public_bypass", "login_shortcircuit", "forward",
//     "login_redirect", "unauthorized_redirect"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of edge access gate decisions, by outcome.",
	},
	[]string{"decision"},
)

// SessionResolutionsTotal counts session cache resolutions.
// Label:
//   - source: "server", "provider", "none"
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session resolutions, by winning source.",
	},
	[]string{"source"},
)

// RoleLookupsTotal counts profile role lookups.
// Label:
//   - result: "hit", "not_found", "error"
var RoleLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_lookups_total",
		Help:      "Total number of profile role lookups, by result.",
	},
	[]string{"result"},
)

// AuthRequestDuration measures round-trips to the external auth backend.
// Label:
//   - operation: "user", "refresh", "signin", "signout"
var AuthRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_request_duration_seconds",
		Help:      "Duration of requests to the external auth backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)
