package handler

import "github.com/lifeflow/donation-platform/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type coordinatesRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type addressRequest struct {
	Street      string             `json:"street"`
	City        string             `json:"city"`
	State       string             `json:"state"`
	ZipCode     string             `json:"zip_code"`
	Coordinates coordinatesRequest `json:"coordinates"`
}

func (a addressRequest) toDomain() domain.Address {
	return domain.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Coordinates: domain.Coordinates{
			Lat: a.Coordinates.Lat,
			Lng: a.Coordinates.Lng,
		},
	}
}

type registerAdminRequest struct {
	Email      string         `json:"email"       validate:"required,email"`
	NationalID string         `json:"national_id" validate:"required"`
	FullName   string         `json:"full_name"   validate:"required"`
	FirstName  string         `json:"first_name"`
	LastName   string         `json:"last_name"`
	Password   string         `json:"password"    validate:"required,min=8"`
	Role       string         `json:"role"        validate:"omitempty,oneof=superadmin moderator support"`
	Address    addressRequest `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginResponse signals that the first factor succeeded and a second factor
// is now required; no session exists yet.
type loginResponse struct {
	Success    bool   `json:"success"`
	RequireOTP bool   `json:"requireOTP"`
	Message    string `json:"message"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6"`
}

type verifyOTPResponse struct {
	Success bool          `json:"success"`
	Admin   *domain.Admin `json:"admin"`
}

type resendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// resendCooldownResponse carries the retry-after hint when the cooldown
// window refuses a resend.
type resendCooldownResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
}

type updateProfileRequest struct {
	FullName  string         `json:"full_name"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Address   addressRequest `json:"address"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}
