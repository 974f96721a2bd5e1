package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

// RequireCapability enforces that the authenticated caller's role grants
// the capability. Must run after Session.
func RequireCapability(cap domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if !domain.Role(role).Can(cap) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": forbiddenMessage(cap)})
			}
			return next(c)
		}
	}
}

func forbiddenMessage(cap domain.Capability) string {
	switch cap {
	case domain.CapManageAdmins:
		return "superadmin access required"
	case domain.CapApproveRecords:
		return "moderator or superadmin access required"
	case domain.CapHandleTickets:
		return "support or superadmin access required"
	}
	return "forbidden"
}
