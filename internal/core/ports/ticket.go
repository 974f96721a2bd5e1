package ports

import (
	"context"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

// TicketRepository defines persistence for support tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
}

// TicketService accepts support requests from donors and visitors.
type TicketService interface {
	Create(ctx context.Context, email, subject, message string) (*domain.Ticket, error)
}
