package ports

import (
	"context"
	"time"
)

// SessionRevoker records token IDs that must no longer be accepted, each
// entry living only as long as the token itself would have.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// SessionToken is a minted session with its absolute expiry, ready to be
// bound to a cookie by the transport layer.
type SessionToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}
