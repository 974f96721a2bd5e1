package domain

import (
	"errors"
	"time"
)

var ErrTicketNotFound = errors.New("ticket not found")

// TicketStatus represents the handling state of a support ticket.
type TicketStatus string

const (
	TicketOpen    TicketStatus = "open"
	TicketHandled TicketStatus = "handled"
)

// Ticket is a support request raised by a donor or visitor.
type Ticket struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Subject     string       `json:"subject"`
	Message     string       `json:"message"`
	Status      TicketStatus `json:"status"`
	HandledByID string       `json:"handled_by_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
