package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware.
// Presence proves the middleware ran; a protected handler reached without
// it is a wiring bug, answered with 401 rather than a panic.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get("principal").(domain.Principal)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return p, nil
}
