package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeflow/donation-platform/internal/core/domain"
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

// TicketService accepts support requests raised by donors and visitors.
type TicketService struct {
	repo   ports.TicketRepository
	logger zerolog.Logger
}

func NewTicketService(repo ports.TicketRepository, logger zerolog.Logger) *TicketService {
	return &TicketService{repo: repo, logger: logger}
}

func (s *TicketService) Create(ctx context.Context, email, subject, message string) (*domain.Ticket, error) {
	now := time.Now().UTC()
	ticket := &domain.Ticket{
		Email:     domain.NormalizeEmail(email),
		Subject:   subject,
		Message:   message,
		Status:    domain.TicketOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", ticket.Email).Str("subject", subject).Msg("support ticket opened")
	return created, nil
}
