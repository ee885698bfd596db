package middleware

import (
	"github.com/labstack/echo/v4"
)

// RoleGuard restricts a route group to the given roles. A mismatch responds
// 401 with the login redirect rather than a generic forbidden page; the
// client is expected to re-authenticate as an allowed role.
func RoleGuard(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if _, ok := allowed[role]; !ok {
				return unauthorized(c, "role not permitted for this area")
			}
			return next(c)
		}
	}
}
