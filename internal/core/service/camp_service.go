package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeflow/donation-platform/internal/core/domain"
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

const maxNearbyRadiusKm = 200.0

// CampService manages the camp catalog and geo discovery.
type CampService struct {
	repo   ports.CampRepository
	logger zerolog.Logger
}

func NewCampService(repo ports.CampRepository, logger zerolog.Logger) *CampService {
	return &CampService{repo: repo, logger: logger}
}

// Create registers a camp submitted by an organizer. Camps start out
// unapproved and become bookable only after a moderator approves them.
func (s *CampService) Create(ctx context.Context, input ports.CreateCampInput) (*domain.Camp, error) {
	if input.Name == "" || input.OrganizerID == "" || input.Capacity <= 0 {
		return nil, domain.ErrInvalidCampInput
	}

	startsAt, err := time.Parse(time.RFC3339, input.StartsAt)
	if err != nil {
		return nil, domain.ErrInvalidCampInput
	}
	endsAt, err := time.Parse(time.RFC3339, input.EndsAt)
	if err != nil || !endsAt.After(startsAt) {
		return nil, domain.ErrInvalidCampInput
	}

	now := time.Now().UTC()
	camp := &domain.Camp{
		Name:        input.Name,
		OrganizerID: input.OrganizerID,
		Address:     input.Address,
		StartsAt:    startsAt.UTC(),
		EndsAt:      endsAt.UTC(),
		Capacity:    input.Capacity,
		Approved:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, camp)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("name", camp.Name).Str("organizer_id", camp.OrganizerID).Msg("camp submitted for approval")
	return created, nil
}

func (s *CampService) Get(ctx context.Context, id string) (*domain.Camp, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns approved camps only; pending camps are visible to admins via
// the approval flow, not the public catalog.
func (s *CampService) List(ctx context.Context) ([]domain.Camp, error) {
	return s.repo.List(ctx, true)
}

// Nearby returns approved camps within radiusKm of the given point.
func (s *CampService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]domain.Camp, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, domain.ErrInvalidCampInput
	}
	if radiusKm <= 0 || radiusKm > maxNearbyRadiusKm {
		radiusKm = 25
	}
	return s.repo.FindNearby(ctx, domain.Coordinates{Lat: lat, Lng: lng}, radiusKm)
}
