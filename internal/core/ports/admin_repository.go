package ports

import (
	"context"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

// ApprovalList names one of the append-only approval logs on an admin record.
type ApprovalList string

const (
	ApprovedUsers      ApprovalList = "approved_users"
	ApprovedOrganizers ApprovalList = "approved_organizers"
	ApprovedCamps      ApprovalList = "approved_camps"
	HandledTickets     ApprovalList = "handled_tickets"
)

// AdminRepository defines persistence for administrator accounts.
type AdminRepository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Admin, error)
	Update(ctx context.Context, admin *domain.Admin) error
	Delete(ctx context.Context, id string) error
	AppendApproval(ctx context.Context, adminID string, list ApprovalList, entry domain.ApprovalEntry) error
}
