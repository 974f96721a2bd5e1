package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeflow/donation-platform/internal/core/domain"
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

// DonorService manages donor registration, profiles and eligibility checks.
type DonorService struct {
	repo   ports.DonorRepository
	logger zerolog.Logger
}

func NewDonorService(repo ports.DonorRepository, logger zerolog.Logger) *DonorService {
	return &DonorService{repo: repo, logger: logger}
}

func (s *DonorService) Register(ctx context.Context, input ports.RegisterDonorInput) (*domain.Donor, error) {
	group := domain.BloodGroup(input.BloodGroup)
	if !group.Valid() {
		return nil, domain.ErrInvalidBloodGroup
	}

	dob, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	donor := &domain.Donor{
		Email:       domain.NormalizeEmail(input.Email),
		FullName:    input.FullName,
		BloodGroup:  group,
		DateOfBirth: dob,
		WeightKg:    input.WeightKg,
		Phone:       input.Phone,
		Address:     input.Address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, donor)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", donor.Email).Str("blood_group", string(group)).Msg("donor registered")
	return created, nil
}

func (s *DonorService) Get(ctx context.Context, id string) (*domain.Donor, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DonorService) Update(ctx context.Context, id string, input ports.UpdateDonorInput) (*domain.Donor, error) {
	donor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		donor.FullName = input.FullName
	}
	if input.WeightKg > 0 {
		donor.WeightKg = input.WeightKg
	}
	if input.Phone != "" {
		donor.Phone = input.Phone
	}
	if input.Address != (domain.Address{}) {
		donor.Address = input.Address
	}
	donor.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, donor); err != nil {
		return nil, err
	}
	return donor, nil
}

// Eligibility evaluates the donation criteria for a donor as of now.
func (s *DonorService) Eligibility(ctx context.Context, id string) (*domain.Eligibility, error) {
	donor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	elig := donor.EligibilityAt(time.Now().UTC())
	return &elig, nil
}
