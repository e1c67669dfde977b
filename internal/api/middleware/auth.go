package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Mukta-28/Movie-Review-Project/internal/api/metrics"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
)

const identityKey = "identity"

// Authenticate resolves the bearer credential of every request into an
// identity. It never rejects a request: a missing or bad credential leaves
// the request anonymous and the route policy decides what happens next.
func Authenticate(resolver ports.IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthenticationsTotal.WithLabelValues("none").Inc()
				return next(c)
			}

			id, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				result := failureKind(err)
				metrics.AuthenticationsTotal.WithLabelValues(result).Inc()

				evt := log.Debug()
				if result == "error" {
					evt = log.Warn()
				}
				evt.Err(err).
					Str("result", result).
					Str("path", c.Request().URL.Path).
					Msg("credential rejected")
				return next(c)
			}

			metrics.AuthenticationsTotal.WithLabelValues("ok").Inc()
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// Identity returns the identity resolved for the request, or nil when the
// request is anonymous.
func Identity(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrNotFound):
		return "unknown_user"
	default:
		return "error"
	}
}
