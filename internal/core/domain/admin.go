package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAdminNotFound = errors.New("admin not found")
var ErrAdminExists = errors.New("admin already exists")
var ErrAlreadyInitialized = errors.New("platform already initialized")
var ErrNotSupportAccount = errors.New("account does not have the support role")
var ErrUserAlreadyApproved = errors.New("user already approved")
var ErrOrganizerAlreadyApproved = errors.New("organizer already approved")
var ErrCampAlreadyApproved = errors.New("camp already approved")
var ErrTicketAlreadyHandled = errors.New("ticket already handled")

// ApprovalEntry records a single approval action taken by an admin.
type ApprovalEntry struct {
	ID string    `json:"id" bson:"id"`
	At time.Time `json:"at" bson:"at"`
}

// HasEntry reports whether the given ID is already present in an approval log.
func HasEntry(entries []ApprovalEntry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Admin models a back-office operator account.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	NationalID   string    `json:"national_id"`
	FullName     string    `json:"full_name"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Address      Address   `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	ApprovedUsers      []ApprovalEntry `json:"approved_users,omitempty"`
	ApprovedOrganizers []ApprovalEntry `json:"approved_organizers,omitempty"`
	ApprovedCamps      []ApprovalEntry `json:"approved_camps,omitempty"`
	HandledTickets     []ApprovalEntry `json:"handled_tickets,omitempty"`
}

// NormalizeEmail applies the canonical form used for all email lookups:
// trimmed and lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
