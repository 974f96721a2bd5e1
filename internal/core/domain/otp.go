package domain

import (
	"errors"
	"time"
)

const (
	// OTPTTL is how long a passcode stays valid after issuance.
	OTPTTL = 5 * time.Minute
	// OTPMaxAttempts is the number of failed submissions allowed before the
	// record is invalidated.
	OTPMaxAttempts = 3
	// OTPResendCooldown is the minimum interval between issuances for the
	// same email via the resend endpoint.
	OTPResendCooldown = 60 * time.Second
)

var ErrOTPNotFound = errors.New("otp not found or expired")
var ErrOTPInvalidCode = errors.New("invalid otp code")
var ErrOTPTooManyAttempts = errors.New("too many failed otp attempts")
var ErrOTPExpired = errors.New("otp expired")
var ErrOTPResendCooldown = errors.New("otp recently sent, retry later")

// OTPRecord is the single live second-factor passcode for an email.
// At most one record exists per email at any time.
type OTPRecord struct {
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Attempts  int       `json:"attempts"`
}

// Expired reports whether the record's validity window has passed.
func (o *OTPRecord) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// WithinCooldown reports whether the record was created too recently for a
// resend to be allowed.
func (o *OTPRecord) WithinCooldown(now time.Time) bool {
	return now.Sub(o.CreatedAt) < OTPResendCooldown
}
