package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/donation-platform/internal/core/ports"
)

type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type bookAppointmentRequest struct {
	DonorID     string `json:"donor_id"     validate:"required"`
	CampID      string `json:"camp_id"      validate:"required"`
	ScheduledAt string `json:"scheduled_at"`
}

// Book schedules a donation appointment at a camp.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body      bookAppointmentRequest  true  "Booking details"
// @Success      201   {object}  domain.Appointment
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.service.Book(c.Request().Context(), ports.BookAppointmentInput{
		DonorID:     req.DonorID,
		CampID:      req.CampID,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, appt)
}

// Cancel transitions an appointment to cancelled and frees its slot.
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	if err := h.service.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// ListByDonor returns a donor's appointments.
func (h *AppointmentHandler) ListByDonor(c echo.Context) error {
	appts, err := h.service.ListByDonor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appts)
}
