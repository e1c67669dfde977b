package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/Mukta-28/Movie-Review-Project/internal/api/metrics"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/authz"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

// Authorize enforces the route policy. The requirement is looked up by the
// matched route pattern, so register it with e.Use, which runs after routing.
func Authorize(policy *authz.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := policy.Lookup(c.Request().Method, c.Path())
			if err := authz.Check(Identity(c), req); err != nil {
				reason := "forbidden"
				if errors.Is(err, domain.ErrUnauthorized) {
					reason = "unauthenticated"
				}
				metrics.AuthorizationDenialsTotal.WithLabelValues(reason).Inc()
				return err
			}
			return next(c)
		}
	}
}
