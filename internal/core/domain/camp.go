package domain

import (
	"errors"
	"time"
)

var ErrCampNotFound = errors.New("camp not found")
var ErrCampNotApproved = errors.New("camp not approved")
var ErrCampFull = errors.New("camp has no free slots")
var ErrCampClosed = errors.New("camp is not accepting appointments")
var ErrInvalidCampInput = errors.New("invalid camp input")

// Camp is a scheduled blood-donation camp at a fixed location.
type Camp struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OrganizerID string    `json:"organizer_id"`
	Address     Address   `json:"address"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
	BookedSlots int       `json:"booked_slots"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AvailableSlots returns the number of unbooked slots, never negative.
func (c *Camp) AvailableSlots() int {
	if n := c.Capacity - c.BookedSlots; n > 0 {
		return n
	}
	return 0
}

// OpenAt reports whether the camp accepts bookings at the given instant:
// approved and not yet ended.
func (c *Camp) OpenAt(now time.Time) bool {
	return c.Approved && now.Before(c.EndsAt)
}
