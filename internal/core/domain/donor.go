package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrDonorNotFound = errors.New("donor not found")
var ErrDonorExists = errors.New("donor already registered")
var ErrInvalidBloodGroup = errors.New("invalid blood group")
var ErrDonorNotEligible = errors.New("donor not eligible to donate")

// BloodGroup is one of the eight ABO/Rh types.
type BloodGroup string

const (
	BloodAPos  BloodGroup = "A+"
	BloodANeg  BloodGroup = "A-"
	BloodBPos  BloodGroup = "B+"
	BloodBNeg  BloodGroup = "B-"
	BloodABPos BloodGroup = "AB+"
	BloodABNeg BloodGroup = "AB-"
	BloodOPos  BloodGroup = "O+"
	BloodONeg  BloodGroup = "O-"
)

// Valid reports whether g is one of the eight recognized groups.
func (g BloodGroup) Valid() bool {
	switch g {
	case BloodAPos, BloodANeg, BloodBPos, BloodBNeg, BloodABPos, BloodABNeg, BloodOPos, BloodONeg:
		return true
	}
	return false
}

// Donation eligibility thresholds.
const (
	MinDonorAge      = 18
	MaxDonorAge      = 65
	MinDonorWeightKg = 50.0
	DonationInterval = 90 * 24 * time.Hour
)

// Donor models a registered blood donor.
type Donor struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	BloodGroup     BloodGroup `json:"blood_group"`
	DateOfBirth    time.Time  `json:"date_of_birth"`
	WeightKg       float64    `json:"weight_kg"`
	Phone          string     `json:"phone,omitempty"`
	Address        Address    `json:"address"`
	LastDonationAt time.Time  `json:"last_donation_at,omitempty"`
	Approved       bool       `json:"approved"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Eligibility is the outcome of an eligibility evaluation.
type Eligibility struct {
	Eligible bool     `json:"eligible"`
	Reasons  []string `json:"reasons,omitempty"`
}

// AgeAt returns the donor's age in whole years at the given instant.
func (d *Donor) AgeAt(now time.Time) int {
	age := now.Year() - d.DateOfBirth.Year()
	if now.YearDay() < d.DateOfBirth.YearDay() {
		age--
	}
	return age
}

// EligibilityAt evaluates the standard donation criteria at the given
// instant: age 18–65, weight at least 50 kg, and at least 90 days since the
// last donation. A donor with no recorded donation passes the interval check.
func (d *Donor) EligibilityAt(now time.Time) Eligibility {
	var reasons []string

	age := d.AgeAt(now)
	if age < MinDonorAge {
		reasons = append(reasons, fmt.Sprintf("donor must be at least %d years old", MinDonorAge))
	}
	if age > MaxDonorAge {
		reasons = append(reasons, fmt.Sprintf("donor must be at most %d years old", MaxDonorAge))
	}
	if d.WeightKg < MinDonorWeightKg {
		reasons = append(reasons, fmt.Sprintf("donor must weigh at least %.0f kg", MinDonorWeightKg))
	}
	if !d.LastDonationAt.IsZero() && now.Sub(d.LastDonationAt) < DonationInterval {
		reasons = append(reasons, "at least 90 days must pass since the last donation")
	}

	return Eligibility{Eligible: len(reasons) == 0, Reasons: reasons}
}
