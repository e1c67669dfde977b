// Package metrics defines the Prometheus collectors of the HTTP layer:
// authentication, authorization and account activity. Storage and worker
// collectors live next to the code that feeds them.
//
// All collectors are registered with the default registry on import via
// promauto; the echoprometheus handler mounted at /metrics exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every custom metric of the service.
const Namespace = "moviereview"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthenticationsTotal counts credential resolutions per request.
// Label:
//   - result: "none", "ok", "malformed", "invalid_signature", "expired",
//     "unknown_user" or "error"
var AuthenticationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "authentications_total",
		Help:      "Total number of request credential resolutions, by result.",
	},
	[]string{"result"},
)

// AuthorizationDenialsTotal counts requests rejected by the route policy.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of requests denied by the route policy, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts newly created accounts.
// Label:
//   - role: "USER" or "ADMIN"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "registrations_total",
		Help:      "Total number of registered users, by role.",
	},
	[]string{"role"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ReviewsCreatedTotal counts reviews written.
var ReviewsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews created.",
	},
)
