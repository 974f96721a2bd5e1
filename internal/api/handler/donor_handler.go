package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/donation-platform/internal/core/ports"
)

type DonorHandler struct {
	service ports.DonorService
}

func NewDonorHandler(service ports.DonorService) *DonorHandler {
	return &DonorHandler{service: service}
}

type registerDonorRequest struct {
	Email       string         `json:"email"         validate:"required,email"`
	FullName    string         `json:"full_name"     validate:"required"`
	BloodGroup  string         `json:"blood_group"   validate:"required"`
	DateOfBirth string         `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	WeightKg    float64        `json:"weight_kg"     validate:"required,gt=0"`
	Phone       string         `json:"phone"`
	Address     addressRequest `json:"address"`
}

type updateDonorRequest struct {
	FullName string         `json:"full_name"`
	WeightKg float64        `json:"weight_kg"`
	Phone    string         `json:"phone"`
	Address  addressRequest `json:"address"`
}

// Register creates a donor profile.
//
// @Summary      Register a donor
// @Tags         donors
// @Accept       json
// @Produce      json
// @Param        body  body      registerDonorRequest  true  "Donor details"
// @Success      201   {object}  domain.Donor
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/donors [post]
func (h *DonorHandler) Register(c echo.Context) error {
	var req registerDonorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	donor, err := h.service.Register(c.Request().Context(), ports.RegisterDonorInput{
		Email:       req.Email,
		FullName:    req.FullName,
		BloodGroup:  req.BloodGroup,
		DateOfBirth: req.DateOfBirth,
		WeightKg:    req.WeightKg,
		Phone:       req.Phone,
		Address:     req.Address.toDomain(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, donor)
}

func (h *DonorHandler) Get(c echo.Context) error {
	donor, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, donor)
}

func (h *DonorHandler) Update(c echo.Context) error {
	var req updateDonorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	donor, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateDonorInput{
		FullName: req.FullName,
		WeightKg: req.WeightKg,
		Phone:    req.Phone,
		Address:  req.Address.toDomain(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, donor)
}

// Eligibility evaluates the donation criteria for a donor as of now.
func (h *DonorHandler) Eligibility(c echo.Context) error {
	elig, err := h.service.Eligibility(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, elig)
}
