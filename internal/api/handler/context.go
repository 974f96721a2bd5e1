package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/donation-platform/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Session middleware and
// fast-fails before any service call: a non-empty admin ID proves the
// middleware ran.
func ctxIdentity(c echo.Context) (adminID, role string, err error) {
	adminID, _ = c.Get(middleware.CtxAdminID).(string)
	if adminID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get(middleware.CtxRole).(string)
	return adminID, role, nil
}
