package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/yedidi/warehouse-api/internal/api/metrics"
	"github.com/yedidi/warehouse-api/internal/core/domain"
	"github.com/yedidi/warehouse-api/internal/core/ports"
)

// RBAC lets the request through only when the authenticated user may perform
// action. It must run after Auth.
func RBAC(guard ports.AccessGuard, action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := guard.Authorize(CurrentUser(c), action); err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
				}
				return err
			}
			return next(c)
		}
	}
}
