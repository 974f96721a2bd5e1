package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeflow/donation-platform/internal/core/domain"
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

type stubDonorRepo struct {
	donors map[string]*domain.Donor
}

func newStubDonorRepo() *stubDonorRepo {
	return &stubDonorRepo{donors: make(map[string]*domain.Donor)}
}

func cloneDonor(d *domain.Donor) *domain.Donor {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}

func (r *stubDonorRepo) Create(_ context.Context, donor *domain.Donor) (*domain.Donor, error) {
	for _, d := range r.donors {
		if d.Email == donor.Email {
			return nil, domain.ErrDonorExists
		}
	}
	copy := cloneDonor(donor)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("donor_%d", len(r.donors)+1)
	}
	r.donors[copy.ID] = cloneDonor(copy)
	return cloneDonor(copy), nil
}

func (r *stubDonorRepo) FindByID(_ context.Context, id string) (*domain.Donor, error) {
	d, ok := r.donors[id]
	if !ok {
		return nil, domain.ErrDonorNotFound
	}
	return cloneDonor(d), nil
}

func (r *stubDonorRepo) FindByEmail(_ context.Context, email string) (*domain.Donor, error) {
	for _, d := range r.donors {
		if d.Email == email {
			return cloneDonor(d), nil
		}
	}
	return nil, domain.ErrDonorNotFound
}

func (r *stubDonorRepo) Update(_ context.Context, donor *domain.Donor) error {
	if _, ok := r.donors[donor.ID]; !ok {
		return domain.ErrDonorNotFound
	}
	r.donors[donor.ID] = cloneDonor(donor)
	return nil
}

// dob returns a YYYY-MM-DD date of birth for a donor exactly years old today.
func dob(years int) string {
	return time.Now().UTC().AddDate(-years, 0, 0).Format("2006-01-02")
}

func TestDonorService_Register_Success(t *testing.T) {
	repo := newStubDonorRepo()
	svc := NewDonorService(repo, zerolog.Nop())

	donor, err := svc.Register(context.Background(), ports.RegisterDonorInput{
		Email:       "Dana@Example.com",
		FullName:    "Dana Donor",
		BloodGroup:  "O-",
		DateOfBirth: "1990-03-15",
		WeightKg:    62,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if donor.Email != "dana@example.com" {
		t.Fatalf("email not normalized: %s", donor.Email)
	}
	if donor.BloodGroup != domain.BloodONeg {
		t.Fatalf("unexpected blood group: %s", donor.BloodGroup)
	}
}

func TestDonorService_Register_InvalidBloodGroup(t *testing.T) {
	repo := newStubDonorRepo()
	svc := NewDonorService(repo, zerolog.Nop())

	_, err := svc.Register(context.Background(), ports.RegisterDonorInput{
		Email:       "dana@example.com",
		FullName:    "Dana Donor",
		BloodGroup:  "C+",
		DateOfBirth: "1990-03-15",
		WeightKg:    62,
	})
	if err != domain.ErrInvalidBloodGroup {
		t.Fatalf("expected ErrInvalidBloodGroup, got %v", err)
	}
}

func TestDonorService_Register_Duplicate(t *testing.T) {
	repo := newStubDonorRepo()
	svc := NewDonorService(repo, zerolog.Nop())

	input := ports.RegisterDonorInput{
		Email:       "dana@example.com",
		FullName:    "Dana Donor",
		BloodGroup:  "A+",
		DateOfBirth: "1990-03-15",
		WeightKg:    62,
	}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); err != domain.ErrDonorExists {
		t.Fatalf("expected ErrDonorExists, got %v", err)
	}
}

func TestDonorService_Eligibility_Boundaries(t *testing.T) {
	cases := []struct {
		name     string
		dob      string
		weightKg float64
		lastDon  time.Duration // age of last donation; zero means never
		eligible bool
	}{
		{"just old enough", dob(18), 60, 0, true},
		{"too young", dob(17), 60, 0, false},
		{"at max age", dob(65), 60, 0, true},
		{"above max age", dob(66), 60, 0, false},
		{"at min weight", dob(30), 50, 0, true},
		{"below min weight", dob(30), 49.5, 0, false},
		{"donated 89 days ago", dob(30), 60, 89 * 24 * time.Hour, false},
		{"donated 91 days ago", dob(30), 60, 91 * 24 * time.Hour, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubDonorRepo()
			svc := NewDonorService(repo, zerolog.Nop())

			donor, err := svc.Register(context.Background(), ports.RegisterDonorInput{
				Email:       "dana@example.com",
				FullName:    "Dana Donor",
				BloodGroup:  "B+",
				DateOfBirth: tc.dob,
				WeightKg:    tc.weightKg,
			})
			if err != nil {
				t.Fatalf("register failed: %v", err)
			}
			if tc.lastDon > 0 {
				stored := repo.donors[donor.ID]
				stored.LastDonationAt = time.Now().UTC().Add(-tc.lastDon)
			}

			elig, err := svc.Eligibility(context.Background(), donor.ID)
			if err != nil {
				t.Fatalf("eligibility failed: %v", err)
			}
			if elig.Eligible != tc.eligible {
				t.Fatalf("expected eligible=%v, got %v (reasons: %v)", tc.eligible, elig.Eligible, elig.Reasons)
			}
			if !tc.eligible && len(elig.Reasons) == 0 {
				t.Fatalf("ineligible result must carry reasons")
			}
		})
	}
}

func TestDonorService_Update_PartialFields(t *testing.T) {
	repo := newStubDonorRepo()
	svc := NewDonorService(repo, zerolog.Nop())

	donor, err := svc.Register(context.Background(), ports.RegisterDonorInput{
		Email:       "dana@example.com",
		FullName:    "Dana Donor",
		BloodGroup:  "AB+",
		DateOfBirth: "1990-03-15",
		WeightKg:    62,
		Phone:       "555-0100",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), donor.ID, ports.UpdateDonorInput{WeightKg: 64})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.WeightKg != 64 {
		t.Fatalf("weight not updated: %v", updated.WeightKg)
	}
	if updated.FullName != "Dana Donor" || updated.Phone != "555-0100" {
		t.Fatalf("untouched fields were modified: %+v", updated)
	}
}

func TestDonorService_Get_NotFound(t *testing.T) {
	svc := NewDonorService(newStubDonorRepo(), zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); err != domain.ErrDonorNotFound {
		t.Fatalf("expected ErrDonorNotFound, got %v", err)
	}
}
