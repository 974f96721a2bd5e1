package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		// Unknown email and wrong password intentionally share this message.
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrAlreadyInitialized):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrOTPNotFound),
		errors.Is(err, domain.ErrOTPInvalidCode),
		errors.Is(err, domain.ErrOTPExpired):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrOTPTooManyAttempts),
		errors.Is(err, domain.ErrOTPResendCooldown):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrAdminNotFound),
		errors.Is(err, domain.ErrDonorNotFound),
		errors.Is(err, domain.ErrCampNotFound),
		errors.Is(err, domain.ErrAppointmentNotFound),
		errors.Is(err, domain.ErrTicketNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrAdminExists),
		errors.Is(err, domain.ErrDonorExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUserAlreadyApproved),
		errors.Is(err, domain.ErrOrganizerAlreadyApproved),
		errors.Is(err, domain.ErrCampAlreadyApproved),
		errors.Is(err, domain.ErrTicketAlreadyHandled),
		errors.Is(err, domain.ErrNotSupportAccount),
		errors.Is(err, domain.ErrInvalidBloodGroup),
		errors.Is(err, domain.ErrInvalidCampInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrCampFull),
		errors.Is(err, domain.ErrCampNotApproved),
		errors.Is(err, domain.ErrCampClosed):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrDonorNotEligible),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
