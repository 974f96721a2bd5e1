package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lifeflow/donation-platform/internal/api/metrics"
	"github.com/lifeflow/donation-platform/internal/core/domain"
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

const otpCodeSpace = 1000000

// AdminService implements the two-step admin login protocol and the
// back-office operations behind it.
type AdminService struct {
	admins   ports.AdminRepository
	otps     ports.OTPRepository
	camps    ports.CampRepository
	tickets  ports.TicketRepository
	notifier ports.Notifier
	revoker  ports.SessionRevoker

	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
}

func NewAdminService(
	admins ports.AdminRepository,
	otps ports.OTPRepository,
	camps ports.CampRepository,
	tickets ports.TicketRepository,
	notifier ports.Notifier,
	revoker ports.SessionRevoker,
	jwtSecret string,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) *AdminService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AdminService{
		admins:     admins,
		otps:       otps,
		camps:      camps,
		tickets:    tickets,
		notifier:   notifier,
		revoker:    revoker,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Initialize creates the very first admin account. It refuses once any admin
// exists, and the role is always forced to superadmin regardless of input.
func (s *AdminService) Initialize(ctx context.Context, input ports.RegisterAdminInput) (*domain.Admin, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, domain.ErrAlreadyInitialized
	}

	input.Role = string(domain.RoleSuperadmin)
	return s.createAdmin(ctx, input, domain.RoleSuperadmin)
}

// Login performs the first factor. An unknown email and a wrong password
// both surface as the same ErrInvalidCredentials so account existence never
// leaks. On success an OTP is issued and emailed; no session exists yet.
func (s *AdminService) Login(ctx context.Context, email, password string) error {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrAdminNotFound {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return domain.ErrInvalidCredentials
	}

	if err := s.issueOTP(ctx, email, "login"); err != nil {
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("otp_required").Inc()
	s.logger.Info().Str("email", email).Msg("first factor accepted, otp issued")
	return nil
}

// ResendOTP re-issues the passcode for an email, refusing when the live
// record is younger than the cooldown window.
func (s *AdminService) ResendOTP(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	if _, err := s.admins.FindByEmail(ctx, email); err != nil {
		return err
	}

	existing, err := s.otps.FindByEmail(ctx, email)
	if err == nil && existing.WithinCooldown(time.Now().UTC()) {
		return domain.ErrOTPResendCooldown
	}
	if err != nil && err != domain.ErrOTPNotFound {
		return err
	}

	return s.issueOTP(ctx, email, "resend")
}

// issueOTP generates a fresh 6-digit code, atomically supersedes any prior
// record for the email, and delivers the code by email. A notifier failure
// propagates unwrapped into the generic server-error path.
func (s *AdminService) issueOTP(ctx context.Context, email, trigger string) error {
	code, err := generateOTPCode()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	record := &domain.OTPRecord{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(domain.OTPTTL),
		CreatedAt: now,
		Attempts:  0,
	}

	if err := s.otps.Upsert(ctx, record); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Your LifeFlow admin verification code is %s.\n\nThe code is valid for 5 minutes. If you did not request it, ignore this email.",
		code,
	)
	if err := s.notifier.Send(ctx, email, "LifeFlow admin login code", body); err != nil {
		return err
	}

	metrics.OTPIssuedTotal.WithLabelValues(trigger).Inc()
	return nil
}

// VerifyOTP performs the second factor. The checks run in a fixed order:
// attempt cap, then code equality, then expiry. An expired code that is also
// wrong therefore reports an invalid code, not expiry.
func (s *AdminService) VerifyOTP(ctx context.Context, email, code string) (*ports.SessionToken, *domain.Admin, error) {
	email = domain.NormalizeEmail(email)

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	record, err := s.otps.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrOTPNotFound {
			metrics.OTPVerificationsTotal.WithLabelValues("not_found").Inc()
		}
		return nil, nil, err
	}

	if record.Attempts >= domain.OTPMaxAttempts {
		_ = s.otps.Delete(ctx, email)
		metrics.OTPVerificationsTotal.WithLabelValues("too_many_attempts").Inc()
		return nil, nil, domain.ErrOTPTooManyAttempts
	}

	if code != record.Code {
		if err := s.otps.IncrementAttempts(ctx, email); err != nil {
			return nil, nil, err
		}
		metrics.OTPVerificationsTotal.WithLabelValues("invalid_code").Inc()
		return nil, nil, domain.ErrOTPInvalidCode
	}

	if record.Expired(time.Now().UTC()) {
		_ = s.otps.Delete(ctx, email)
		metrics.OTPVerificationsTotal.WithLabelValues("expired").Inc()
		return nil, nil, domain.ErrOTPExpired
	}

	if err := s.otps.Delete(ctx, email); err != nil {
		return nil, nil, err
	}

	token, err := s.mintSession(admin)
	if err != nil {
		return nil, nil, err
	}

	metrics.OTPVerificationsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("email", email).Str("role", string(admin.Role)).Msg("admin session issued")
	return token, admin, nil
}

// Logout revokes the token ID for the remainder of its lifetime. The cookie
// itself is cleared by the transport layer.
func (s *AdminService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, tokenID, ttl); err != nil {
		return err
	}
	metrics.SessionsRevokedTotal.Inc()
	return nil
}

func (s *AdminService) mintSession(admin *domain.Admin) (*ports.SessionToken, error) {
	expiresAt := time.Now().Add(s.sessionTTL)
	tokenID := uuid.NewString()

	claims := jwt.MapClaims{
		"sub":  admin.ID,
		"role": string(admin.Role),
		"jti":  tokenID,
		"exp":  expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &ports.SessionToken{Token: signed, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}

func (s *AdminService) Profile(ctx context.Context, adminID string) (*domain.Admin, error) {
	return s.admins.FindByID(ctx, adminID)
}

func (s *AdminService) UpdateProfile(ctx context.Context, adminID string, input ports.UpdateAdminProfileInput) (*domain.Admin, error) {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	applyProfileInput(admin, input)
	admin.UpdatedAt = time.Now().UTC()

	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) ChangePassword(ctx context.Context, adminID, current, next string) error {
	if next == "" {
		return domain.ErrInvalidCredentials
	}

	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin.PasswordHash = string(hash)
	admin.UpdatedAt = time.Now().UTC()
	return s.admins.Update(ctx, admin)
}

// Register creates an admin account with the caller-chosen role. An invalid
// or missing role falls back to moderator.
func (s *AdminService) Register(ctx context.Context, input ports.RegisterAdminInput) (*domain.Admin, error) {
	role := domain.Role(input.Role)
	if !role.Valid() {
		role = domain.RoleModerator
	}
	return s.createAdmin(ctx, input, role)
}

func (s *AdminService) createAdmin(ctx context.Context, input ports.RegisterAdminInput, role domain.Role) (*domain.Admin, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" || input.NationalID == "" || input.FullName == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		Email:        email,
		NationalID:   input.NationalID,
		FullName:     input.FullName,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		Role:         role,
		Address:      input.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.admins.Create(ctx, admin)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Str("role", string(role)).Msg("admin account created")
	return created, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	return s.admins.List(ctx)
}

// ApproveUser appends the user to the admin's approval log. A repeat
// approval of the same user by the same admin is rejected.
func (s *AdminService) ApproveUser(ctx context.Context, adminID, userID string) error {
	return s.approve(ctx, adminID, ports.ApprovedUsers, userID, domain.ErrUserAlreadyApproved)
}

func (s *AdminService) ApproveOrganizer(ctx context.Context, adminID, organizerID string) error {
	return s.approve(ctx, adminID, ports.ApprovedOrganizers, organizerID, domain.ErrOrganizerAlreadyApproved)
}

// ApproveCamp appends the camp to the approval log and flips the camp's
// approved flag so it becomes bookable.
func (s *AdminService) ApproveCamp(ctx context.Context, adminID, campID string) error {
	if _, err := s.camps.FindByID(ctx, campID); err != nil {
		return err
	}
	if err := s.approve(ctx, adminID, ports.ApprovedCamps, campID, domain.ErrCampAlreadyApproved); err != nil {
		return err
	}
	return s.camps.SetApproved(ctx, campID, true)
}

// HandleTicket marks the ticket handled by this admin, guarded against a
// second handling by the same admin.
func (s *AdminService) HandleTicket(ctx context.Context, adminID, ticketID string) error {
	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}

	if err := s.approve(ctx, adminID, ports.HandledTickets, ticketID, domain.ErrTicketAlreadyHandled); err != nil {
		return err
	}

	ticket.Status = domain.TicketHandled
	ticket.HandledByID = adminID
	ticket.UpdatedAt = time.Now().UTC()
	return s.tickets.Update(ctx, ticket)
}

func (s *AdminService) approve(ctx context.Context, adminID string, list ports.ApprovalList, targetID string, dupErr error) error {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return err
	}

	var entries []domain.ApprovalEntry
	switch list {
	case ports.ApprovedUsers:
		entries = admin.ApprovedUsers
	case ports.ApprovedOrganizers:
		entries = admin.ApprovedOrganizers
	case ports.ApprovedCamps:
		entries = admin.ApprovedCamps
	case ports.HandledTickets:
		entries = admin.HandledTickets
	}
	if domain.HasEntry(entries, targetID) {
		return dupErr
	}

	entry := domain.ApprovalEntry{ID: targetID, At: time.Now().UTC()}
	return s.admins.AppendApproval(ctx, adminID, list, entry)
}

func (s *AdminService) ListSupportAdmins(ctx context.Context) ([]domain.Admin, error) {
	return s.admins.ListByRole(ctx, domain.RoleSupport)
}

func (s *AdminService) UpdateSupportAdmin(ctx context.Context, id string, input ports.UpdateAdminProfileInput) (*domain.Admin, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin.Role != domain.RoleSupport {
		return nil, domain.ErrNotSupportAccount
	}

	applyProfileInput(admin, input)
	admin.UpdatedAt = time.Now().UTC()

	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// DeleteSupportAdmin removes an account. Only support-role accounts may be
// hard-deleted.
func (s *AdminService) DeleteSupportAdmin(ctx context.Context, id string) error {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if admin.Role != domain.RoleSupport {
		return domain.ErrNotSupportAccount
	}
	return s.admins.Delete(ctx, id)
}

func applyProfileInput(admin *domain.Admin, input ports.UpdateAdminProfileInput) {
	if input.FullName != "" {
		admin.FullName = input.FullName
	}
	if input.FirstName != "" {
		admin.FirstName = input.FirstName
	}
	if input.LastName != "" {
		admin.LastName = input.LastName
	}
	if input.Address != (domain.Address{}) {
		admin.Address = input.Address
	}
}

// generateOTPCode returns a uniformly random 6-digit decimal code with
// leading zeros preserved.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpCodeSpace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
