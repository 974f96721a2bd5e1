package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/donation-platform/internal/core/ports"
)

type CampHandler struct {
	service ports.CampService
}

func NewCampHandler(service ports.CampService) *CampHandler {
	return &CampHandler{service: service}
}

type createCampRequest struct {
	Name        string         `json:"name"         validate:"required"`
	OrganizerID string         `json:"organizer_id" validate:"required"`
	Address     addressRequest `json:"address"`
	StartsAt    string         `json:"starts_at"    validate:"required"`
	EndsAt      string         `json:"ends_at"      validate:"required"`
	Capacity    int            `json:"capacity"     validate:"required,gt=0"`
}

// Create submits a camp for approval.
//
// @Summary      Submit a donation camp
// @Tags         camps
// @Accept       json
// @Produce      json
// @Param        body  body      createCampRequest  true  "Camp details"
// @Success      201   {object}  domain.Camp
// @Failure      400   {object}  errorResponse
// @Router       /api/camps [post]
func (h *CampHandler) Create(c echo.Context) error {
	var req createCampRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	camp, err := h.service.Create(c.Request().Context(), ports.CreateCampInput{
		Name:        req.Name,
		OrganizerID: req.OrganizerID,
		Address:     req.Address.toDomain(),
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, camp)
}

func (h *CampHandler) Get(c echo.Context) error {
	camp, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, camp)
}

// List returns the approved camp catalog.
func (h *CampHandler) List(c echo.Context) error {
	camps, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, camps)
}

// Nearby returns approved camps around a point, nearest first.
//
// @Summary      Discover camps near a location
// @Tags         camps
// @Produce      json
// @Param        lat        query     number  true   "Latitude"
// @Param        lng        query     number  true   "Longitude"
// @Param        radius_km  query     number  false  "Search radius in km (default 25)"
// @Success      200  {array}   domain.Camp
// @Failure      400  {object}  errorResponse
// @Router       /api/camps/nearby [get]
func (h *CampHandler) Nearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lat must be a number")
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "lng must be a number")
	}

	radiusKm := 0.0
	if raw := c.QueryParam("radius_km"); raw != "" {
		radiusKm, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "radius_km must be a number")
		}
	}

	camps, err := h.service.Nearby(c.Request().Context(), lat, lng, radiusKm)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, camps)
}
