package ports

import "context"

// Notifier delivers a message to a recipient out of band (email).
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
