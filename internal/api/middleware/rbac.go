package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/campusevents/campus-hub/internal/core/domain"
)

// RBAC enforces role-based access control. A rejected request yields
// domain.ErrForbidden for the error handler to render.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[string(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
