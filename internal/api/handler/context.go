package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/api/middleware"
)

// ctxSessionKey extracts the session key injected by the Auth middleware and
// fast-fails before any service call; presence proves the middleware ran.
func ctxSessionKey(c echo.Context) (string, error) {
	key, _ := c.Get(middleware.CtxSessionKey).(string)
	if key == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return key, nil
}
