package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/fundbridge/platform/internal/core/domain"
)

// RBAC enforces role-based access control. Must run after Auth. Denials
// return domain.ErrForbidden for the error handler to render as 403.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
