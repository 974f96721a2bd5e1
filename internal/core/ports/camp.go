package ports

import (
	"context"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

// CampRepository defines persistence for donation camps. ReserveSlot and
// ReleaseSlot adjust the booked counter atomically against the capacity so
// concurrent bookings cannot overshoot.
type CampRepository interface {
	Create(ctx context.Context, camp *domain.Camp) (*domain.Camp, error)
	FindByID(ctx context.Context, id string) (*domain.Camp, error)
	List(ctx context.Context, approvedOnly bool) ([]domain.Camp, error)
	FindNearby(ctx context.Context, center domain.Coordinates, radiusKm float64) ([]domain.Camp, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	ReserveSlot(ctx context.Context, id string) error
	ReleaseSlot(ctx context.Context, id string) error
}

// CreateCampInput carries the fields submitted by a camp organizer.
type CreateCampInput struct {
	Name        string
	OrganizerID string
	Address     domain.Address
	StartsAt    string // RFC 3339
	EndsAt      string // RFC 3339
	Capacity    int
}

// CampService manages the camp catalog and geo discovery.
type CampService interface {
	Create(ctx context.Context, input CreateCampInput) (*domain.Camp, error)
	Get(ctx context.Context, id string) (*domain.Camp, error)
	List(ctx context.Context) ([]domain.Camp, error)
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]domain.Camp, error)
}
