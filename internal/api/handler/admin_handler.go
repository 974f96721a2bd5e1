package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/donation-platform/internal/api/middleware"
	"github.com/lifeflow/donation-platform/internal/core/domain"
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

type AdminHandler struct {
	service      ports.AdminService
	cookieSecure bool
}

// NewAdminHandler creates the admin back-office handler. cookieSecure
// controls the Secure attribute on the session cookie and should be true in
// production-like deployments only.
func NewAdminHandler(service ports.AdminService, cookieSecure bool) *AdminHandler {
	return &AdminHandler{service: service, cookieSecure: cookieSecure}
}

// Initialize creates the very first admin account.
//
// @Summary      Bootstrap the first superadmin
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerAdminRequest  true  "First admin details (role is forced to superadmin)"
// @Success      201   {object}  domain.Admin
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/initialize [post]
func (h *AdminHandler) Initialize(c echo.Context) error {
	var req registerAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.service.Initialize(c.Request().Context(), registerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, admin)
}

// Login performs the first authentication factor.
//
// @Summary      First factor: email + password
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success:    true,
		RequireOTP: true,
		Message:    "verification code sent to your email",
	})
}

// VerifyOTP performs the second factor and binds the session to a cookie.
//
// @Summary      Second factor: emailed one-time passcode
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "Email and 6-digit code"
// @Success      200   {object}  verifyOTPResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/admin/verify-otp [post]
func (h *AdminHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, admin, err := h.service.VerifyOTP(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token.Token, token.ExpiresAt)
	return c.JSON(http.StatusOK, verifyOTPResponse{Success: true, Admin: admin})
}

// ResendOTP re-issues the passcode, subject to the per-email cooldown.
//
// @Summary      Resend the one-time passcode
// @Tags         admin-auth
// @Accept       json
// @Produce      json
// @Param        body  body      resendOTPRequest  true  "Email"
// @Success      200   {object}  map[string]bool
// @Failure      429   {object}  resendCooldownResponse
// @Router       /api/admin/resend-otp [post]
func (h *AdminHandler) ResendOTP(c echo.Context) error {
	var req resendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ResendOTP(c.Request().Context(), req.Email); err != nil {
		if err == domain.ErrOTPResendCooldown {
			return c.JSON(http.StatusTooManyRequests, resendCooldownResponse{
				Error:      err.Error(),
				RetryAfter: int(domain.OTPResendCooldown.Seconds()),
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Logout revokes the session token and clears the cookie.
func (h *AdminHandler) Logout(c echo.Context) error {
	tokenID, _ := c.Get(middleware.CtxTokenID).(string)
	expiresAt, _ := c.Get(middleware.CtxTokenExpiry).(time.Time)

	if err := h.service.Logout(c.Request().Context(), tokenID, expiresAt); err != nil {
		return err
	}

	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Profile returns the caller's own account, password hash excluded.
func (h *AdminHandler) Profile(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	admin, err := h.service.Profile(c.Request().Context(), adminID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// UpdateProfile updates the caller's own name and address fields.
func (h *AdminHandler) UpdateProfile(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	admin, err := h.service.UpdateProfile(c.Request().Context(), adminID, ports.UpdateAdminProfileInput{
		FullName:  req.FullName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address.toDomain(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// ChangePassword verifies the current password and stores a new hash.
func (h *AdminHandler) ChangePassword(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ChangePassword(c.Request().Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Register creates an admin account with a caller-chosen role.
// Superadmin only.
func (h *AdminHandler) Register(c echo.Context) error {
	var req registerAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.service.Register(c.Request().Context(), registerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, admin)
}

// ListAdmins returns all admin accounts, password hashes excluded.
func (h *AdminHandler) ListAdmins(c echo.Context) error {
	admins, err := h.service.ListAdmins(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// ApproveUser appends the user to the caller's approval log.
// Moderator or superadmin.
func (h *AdminHandler) ApproveUser(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.ApproveUser(c.Request().Context(), adminID, c.Param("userId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) ApproveOrganizer(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.ApproveOrganizer(c.Request().Context(), adminID, c.Param("organizerId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) ApproveCamp(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.ApproveCamp(c.Request().Context(), adminID, c.Param("campId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// HandleTicket marks a support ticket handled by the caller.
// Support or superadmin.
func (h *AdminHandler) HandleTicket(c echo.Context) error {
	adminID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.HandleTicket(c.Request().Context(), adminID, c.Param("ticketId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListSupportAdmins returns all support-role accounts. Superadmin only.
func (h *AdminHandler) ListSupportAdmins(c echo.Context) error {
	admins, err := h.service.ListSupportAdmins(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

func (h *AdminHandler) UpdateSupportAdmin(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	admin, err := h.service.UpdateSupportAdmin(c.Request().Context(), c.Param("id"), ports.UpdateAdminProfileInput{
		FullName:  req.FullName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address.toDomain(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admin)
}

// DeleteSupportAdmin removes a support-role account. Superadmin only.
func (h *AdminHandler) DeleteSupportAdmin(c echo.Context) error {
	if err := h.service.DeleteSupportAdmin(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.cookieSecure,
	})
}

func (h *AdminHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.cookieSecure,
	})
}

func registerInput(req registerAdminRequest) ports.RegisterAdminInput {
	return ports.RegisterAdminInput{
		Email:      req.Email,
		NationalID: req.NationalID,
		FullName:   req.FullName,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Password:   req.Password,
		Role:       req.Role,
		Address:    req.Address.toDomain(),
	}
}
