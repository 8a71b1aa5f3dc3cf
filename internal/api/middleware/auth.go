package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/yedidi/warehouse-api/internal/api/metrics"
	"github.com/yedidi/warehouse-api/internal/core/domain"
	"github.com/yedidi/warehouse-api/internal/core/ports"
)

// userKey is the echo context key holding the authenticated *domain.User.
const userKey = "user"

// Auth validates the bearer token, loads its subject and injects the user
// into the context. Failures are returned as domain errors for the API error
// handler to render.
func Auth(guard ports.AccessGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := guard.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return err
			}

			user, err := guard.ResolveUser(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
				}
				return err
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth, or nil when Auth did not run.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userKey).(*domain.User)
	return user
}
