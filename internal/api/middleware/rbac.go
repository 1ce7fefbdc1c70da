package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-api/internal/core/domain"
)

// RequireRole enforces role-based access control. It must run after Auth.
// Unlike the 401 path, the 403 body may state the required role: the
// caller's identity is already established, only the action is disallowed.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := c.Get(principalKey).(domain.Principal)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
			}
			if !p.HasRole(allowedRoles...) {
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("access denied: requires role %s", strings.Join(allowedRoles, " or ")))
			}
			return next(c)
		}
	}
}
