package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextEmail  = "email"
)

// BearerToken extracts the token from an Authorization header.
// A missing header or a non-bearer scheme is domain.ErrMalformedHeader; an
// empty token after the scheme is domain.ErrNoToken.
func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", domain.ErrMalformedHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrMalformedHeader
	}
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return "", domain.ErrNoToken
	}
	return strings.TrimSpace(parts[1]), nil
}

// Auth verifies the bearer token and loads the caller's role from the user
// store. API calls fail closed: a store failure answers 503 instead of
// guessing a role.
func Auth(verifier ports.TokenVerifier, resolver ports.RoleResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := BearerToken(c.Request())
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			ctx := c.Request().Context()
			id, err := verifier.Verify(ctx, token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			res, err := resolver.Resolve(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrResolverFailure) {
					return echo.NewHTTPError(http.StatusServiceUnavailable, "identity store unavailable")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextUserID, id.Subject)
			c.Set(ContextEmail, id.Email)
			c.Set(ContextRole, string(res.Role))

			return next(c)
		}
	}
}
