package ports

import (
	"context"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

// OTPRepository defines persistence for one-time passcodes. Upsert must
// atomically replace any existing record for the same email so that the
// at-most-one-active invariant holds without a read-modify-write window.
type OTPRepository interface {
	Upsert(ctx context.Context, record *domain.OTPRecord) error
	FindByEmail(ctx context.Context, email string) (*domain.OTPRecord, error)
	IncrementAttempts(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}
