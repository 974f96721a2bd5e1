package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeflow/donation-platform/internal/api/metrics"
	"github.com/lifeflow/donation-platform/internal/core/domain"
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

// EventSink receives appointment events for async processing. Implemented
// by the queue dispatcher; a nil-safe no-op keeps tests simple.
type EventSink interface {
	Enqueue(event ports.AppointmentEvent)
}

// AppointmentService books donors into camps against capacity.
type AppointmentService struct {
	repo   ports.AppointmentRepository
	donors ports.DonorRepository
	camps  ports.CampRepository
	events EventSink
	logger zerolog.Logger
}

func NewAppointmentService(
	repo ports.AppointmentRepository,
	donors ports.DonorRepository,
	camps ports.CampRepository,
	events EventSink,
	logger zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{repo: repo, donors: donors, camps: camps, events: events, logger: logger}
}

// Book creates an appointment for an eligible donor at an approved, open
// camp. The slot is reserved atomically against the camp's capacity before
// the appointment document is written; if the write fails the slot is
// released again.
func (s *AppointmentService) Book(ctx context.Context, input ports.BookAppointmentInput) (*domain.Appointment, error) {
	donor, err := s.donors.FindByID(ctx, input.DonorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if elig := donor.EligibilityAt(now); !elig.Eligible {
		return nil, domain.ErrDonorNotEligible
	}

	camp, err := s.camps.FindByID(ctx, input.CampID)
	if err != nil {
		return nil, err
	}
	if !camp.Approved {
		return nil, domain.ErrCampNotApproved
	}
	if !camp.OpenAt(now) {
		return nil, domain.ErrCampClosed
	}

	scheduledAt := camp.StartsAt
	if input.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, input.ScheduledAt)
		if err != nil {
			return nil, domain.ErrInvalidCampInput
		}
		scheduledAt = t.UTC()
	}

	if err := s.camps.ReserveSlot(ctx, camp.ID); err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		DonorID:     donor.ID,
		CampID:      camp.ID,
		ScheduledAt: scheduledAt,
		Status:      domain.AppointmentScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, appt)
	if err != nil {
		_ = s.camps.ReleaseSlot(ctx, camp.ID)
		return nil, err
	}

	metrics.AppointmentsBookedTotal.Inc()
	s.logger.Info().Str("donor_id", donor.ID).Str("camp_id", camp.ID).Msg("appointment booked")

	if s.events != nil {
		s.events.Enqueue(ports.AppointmentEvent{
			Kind:          ports.AppointmentBooked,
			AppointmentID: created.ID,
			CampID:        camp.ID,
			CampName:      camp.Name,
			DonorEmail:    donor.Email,
			DonorName:     donor.FullName,
			ScheduledAt:   scheduledAt,
		})
	}

	return created, nil
}

// Cancel transitions a scheduled appointment to cancelled and frees the slot.
func (s *AppointmentService) Cancel(ctx context.Context, id string) error {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !appt.Status.CanTransitionTo(domain.AppointmentCancelled) {
		return domain.ErrInvalidTransition
	}

	appt.Status = domain.AppointmentCancelled
	appt.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, appt); err != nil {
		return err
	}

	if err := s.camps.ReleaseSlot(ctx, appt.CampID); err != nil {
		s.logger.Error().Err(err).Str("camp_id", appt.CampID).Msg("failed to release camp slot")
	}

	if s.events != nil {
		donor, err := s.donors.FindByID(ctx, appt.DonorID)
		if err == nil {
			s.events.Enqueue(ports.AppointmentEvent{
				Kind:          ports.AppointmentCancelled,
				AppointmentID: appt.ID,
				CampID:        appt.CampID,
				DonorEmail:    donor.Email,
				DonorName:     donor.FullName,
				ScheduledAt:   appt.ScheduledAt,
			})
		}
	}

	return nil
}

func (s *AppointmentService) ListByDonor(ctx context.Context, donorID string) ([]domain.Appointment, error) {
	return s.repo.ListByDonor(ctx, donorID)
}
