package ports

import (
	"context"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

// DonorRepository defines persistence for donor profiles.
type DonorRepository interface {
	Create(ctx context.Context, donor *domain.Donor) (*domain.Donor, error)
	FindByID(ctx context.Context, id string) (*domain.Donor, error)
	FindByEmail(ctx context.Context, email string) (*domain.Donor, error)
	Update(ctx context.Context, donor *domain.Donor) error
}

// RegisterDonorInput carries the fields collected at donor sign-up.
type RegisterDonorInput struct {
	Email       string
	FullName    string
	BloodGroup  string
	DateOfBirth string // YYYY-MM-DD
	WeightKg    float64
	Phone       string
	Address     domain.Address
}

// UpdateDonorInput carries the donor-editable profile fields.
type UpdateDonorInput struct {
	FullName string
	WeightKg float64
	Phone    string
	Address  domain.Address
}

// DonorService manages donor registration, profiles and eligibility.
type DonorService interface {
	Register(ctx context.Context, input RegisterDonorInput) (*domain.Donor, error)
	Get(ctx context.Context, id string) (*domain.Donor, error)
	Update(ctx context.Context, id string, input UpdateDonorInput) (*domain.Donor, error)
	Eligibility(ctx context.Context, id string) (*domain.Eligibility, error)
}
