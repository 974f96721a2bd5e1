package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lifeflow/donation-platform/internal/core/ports"
)

// AppointmentMailer consumes appointment events off the dispatcher and sends
// the donor a confirmation or cancellation email. Delivery is best-effort;
// a failure is logged and counted, never surfaced to the booking request.
type AppointmentMailer struct {
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewAppointmentMailer(notifier ports.Notifier, logger zerolog.Logger) *AppointmentMailer {
	return &AppointmentMailer{notifier: notifier, logger: logger}
}

func (m *AppointmentMailer) Process(ctx context.Context, event ports.AppointmentEvent) error {
	var subject, body string
	switch event.Kind {
	case ports.AppointmentBooked:
		subject = "Your LifeFlow donation appointment is confirmed"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour appointment at %s is confirmed for %s.\n\nThank you for donating.",
			event.DonorName, event.CampName, event.ScheduledAt.Format("Mon, 02 Jan 2006 15:04 MST"),
		)
	case ports.AppointmentCancelled:
		subject = "Your LifeFlow donation appointment was cancelled"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour appointment scheduled for %s has been cancelled.",
			event.DonorName, event.ScheduledAt.Format("Mon, 02 Jan 2006 15:04 MST"),
		)
	default:
		return fmt.Errorf("unknown appointment event kind %q", event.Kind)
	}

	if err := m.notifier.Send(ctx, event.DonorEmail, subject, body); err != nil {
		return fmt.Errorf("appointment mail: %w", err)
	}

	m.logger.Debug().Str("kind", string(event.Kind)).Str("to", event.DonorEmail).Msg("appointment mail sent")
	return nil
}
