package ports

import (
	"context"
	"time"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

// RegisterAdminInput carries the fields needed to create an admin account.
type RegisterAdminInput struct {
	Email      string
	NationalID string
	FullName   string
	FirstName  string
	LastName   string
	Password   string
	Role       string
	Address    domain.Address
}

// UpdateAdminProfileInput carries the self-service mutable fields.
type UpdateAdminProfileInput struct {
	FullName  string
	FirstName string
	LastName  string
	Address   domain.Address
}

// AdminService is the login orchestrator plus the back-office operations
// available to authenticated admins.
type AdminService interface {
	Initialize(ctx context.Context, input RegisterAdminInput) (*domain.Admin, error)
	Login(ctx context.Context, email, password string) error
	VerifyOTP(ctx context.Context, email, code string) (*SessionToken, *domain.Admin, error)
	ResendOTP(ctx context.Context, email string) error
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error

	Profile(ctx context.Context, adminID string) (*domain.Admin, error)
	UpdateProfile(ctx context.Context, adminID string, input UpdateAdminProfileInput) (*domain.Admin, error)
	ChangePassword(ctx context.Context, adminID, current, next string) error

	Register(ctx context.Context, input RegisterAdminInput) (*domain.Admin, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)

	ApproveUser(ctx context.Context, adminID, userID string) error
	ApproveOrganizer(ctx context.Context, adminID, organizerID string) error
	ApproveCamp(ctx context.Context, adminID, campID string) error
	HandleTicket(ctx context.Context, adminID, ticketID string) error

	ListSupportAdmins(ctx context.Context) ([]domain.Admin, error)
	UpdateSupportAdmin(ctx context.Context, id string, input UpdateAdminProfileInput) (*domain.Admin, error)
	DeleteSupportAdmin(ctx context.Context, id string) error
}
