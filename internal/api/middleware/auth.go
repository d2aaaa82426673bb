package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

// Authenticator resolves a bearer token to the caller it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Actor, error)
}

// Auth validates the bearer token and injects the actor into context.
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return authenticate(authn, true)
}

// OptionalAuth injects the actor when a valid token is present and lets
// anonymous requests through. A malformed or revoked token is still rejected.
func OptionalAuth(authn Authenticator) echo.MiddlewareFunc {
	return authenticate(authn, false)
}

func authenticate(authn Authenticator, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if !required {
					return next(c)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			actor, err := authn.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			c.Set("actor", actor)
			c.Set("user_id", actor.UserID)
			c.Set("role", string(actor.Role))

			return next(c)
		}
	}
}
