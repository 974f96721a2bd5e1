package ports

import (
	"context"
	"time"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

// AppointmentRepository defines persistence for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByDonor(ctx context.Context, donorID string) ([]domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
}

// AppointmentEventKind discriminates appointment lifecycle events.
type AppointmentEventKind string

const (
	AppointmentBooked    AppointmentEventKind = "booked"
	AppointmentCancelled AppointmentEventKind = "cancelled"
)

// AppointmentEvent is the payload handed to the async dispatcher after a
// booking or cancellation is persisted. Events for the same camp must be
// processed in order.
type AppointmentEvent struct {
	Kind          AppointmentEventKind
	AppointmentID string
	CampID        string
	CampName      string
	DonorEmail    string
	DonorName     string
	ScheduledAt   time.Time
}

// AppointmentEventProcessor consumes appointment events off the dispatcher.
type AppointmentEventProcessor interface {
	Process(ctx context.Context, event AppointmentEvent) error
}

// BookAppointmentInput carries a booking request.
type BookAppointmentInput struct {
	DonorID     string
	CampID      string
	ScheduledAt string // RFC 3339; defaults to the camp start when empty
}

// AppointmentService manages bookings against camp capacity.
type AppointmentService interface {
	Book(ctx context.Context, input BookAppointmentInput) (*domain.Appointment, error)
	Cancel(ctx context.Context, id string) error
	ListByDonor(ctx context.Context, donorID string) ([]domain.Appointment, error)
}
