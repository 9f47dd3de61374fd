package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// RBAC enforces role-based access control over the closed role enumeration.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := domain.Roles(allowedRoles...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !allowed.Contains(domain.Role(role)) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
