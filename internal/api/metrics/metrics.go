// Package metrics defines the custom Prometheus metrics of the warehouse API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default registry on package initialisation and
// are exposed on /metrics next to the HTTP metrics from echoprometheus.
package metrics

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/yedidi/warehouse-api/internal/core/domain"
)

const namespace = "warehouse"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login outcomes.
// Labels:
//   - operation: "signup" or "login"
//   - result: "success" or the error kind from KindLabel
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// AccessDeniedTotal counts requests rejected by the access guard.
// Label:
//   - reason: "unauthenticated" (401) or "forbidden" (403)
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// PermissionChangesTotal counts successful permission updates.
// Label:
//   - permission: the permission granted ("M" or "W")
var PermissionChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "permission_changes_total",
		Help:      "Total number of permission updates applied, by granted permission.",
	},
	[]string{"permission"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductMutationsTotal counts successful catalog writes.
// Label:
//   - operation: "create", "update" or "delete"
var ProductMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_mutations_total",
		Help:      "Total number of successful product writes, by operation.",
	},
	[]string{"operation"},
)

// ── Errors ────────────────────────────────────────────────────────────────────

// RequestErrorsTotal counts error responses rendered by the HTTP error handler.
// Label:
//   - kind: "validation", "unauthorized", "forbidden", "not_found", "conflict", "http" or "internal"
var RequestErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "request_errors_total",
		Help:      "Total number of error responses, by error kind.",
	},
	[]string{"kind"},
)

// KindLabel maps err to the "kind"/"result" label value used above.
func KindLabel(err error) string {
	var he *echo.HTTPError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.As(err, &he):
		return "http"
	default:
		return "internal"
	}
}
