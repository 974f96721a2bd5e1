package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/donation-platform/internal/api/middleware"
	"github.com/lifeflow/donation-platform/internal/core/domain"
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

// stubAdminService implements ports.AdminService with per-test overrides.
type stubAdminService struct {
	loginFn     func(ctx context.Context, email, password string) error
	verifyOTPFn func(ctx context.Context, email, code string) (*ports.SessionToken, *domain.Admin, error)
	resendOTPFn func(ctx context.Context, email string) error
	logoutFn    func(ctx context.Context, tokenID string, expiresAt time.Time) error
}

func (s *stubAdminService) Initialize(context.Context, ports.RegisterAdminInput) (*domain.Admin, error) {
	return nil, nil
}

func (s *stubAdminService) Login(ctx context.Context, email, password string) error {
	return s.loginFn(ctx, email, password)
}

func (s *stubAdminService) VerifyOTP(ctx context.Context, email, code string) (*ports.SessionToken, *domain.Admin, error) {
	return s.verifyOTPFn(ctx, email, code)
}

func (s *stubAdminService) ResendOTP(ctx context.Context, email string) error {
	return s.resendOTPFn(ctx, email)
}

func (s *stubAdminService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.logoutFn(ctx, tokenID, expiresAt)
}

func (s *stubAdminService) Profile(context.Context, string) (*domain.Admin, error) {
	return nil, nil
}

func (s *stubAdminService) UpdateProfile(context.Context, string, ports.UpdateAdminProfileInput) (*domain.Admin, error) {
	return nil, nil
}

func (s *stubAdminService) ChangePassword(context.Context, string, string, string) error {
	return nil
}

func (s *stubAdminService) Register(context.Context, ports.RegisterAdminInput) (*domain.Admin, error) {
	return nil, nil
}

func (s *stubAdminService) ListAdmins(context.Context) ([]domain.Admin, error) { return nil, nil }

func (s *stubAdminService) ApproveUser(context.Context, string, string) error      { return nil }
func (s *stubAdminService) ApproveOrganizer(context.Context, string, string) error { return nil }
func (s *stubAdminService) ApproveCamp(context.Context, string, string) error      { return nil }
func (s *stubAdminService) HandleTicket(context.Context, string, string) error     { return nil }

func (s *stubAdminService) ListSupportAdmins(context.Context) ([]domain.Admin, error) {
	return nil, nil
}

func (s *stubAdminService) UpdateSupportAdmin(context.Context, string, ports.UpdateAdminProfileInput) (*domain.Admin, error) {
	return nil, nil
}

func (s *stubAdminService) DeleteSupportAdmin(context.Context, string) error { return nil }

func jsonContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAdminHandler_Login_RequiresOTP(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAdminService{
		loginFn: func(ctx context.Context, email, password string) error {
			if email != "admin@lifeflow.example" || password != "secret-pass" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return nil
		},
	}
	handler := NewAdminHandler(stub, false)

	c, rec := jsonContext(e, http.MethodPost, "/api/admin/login", `{"email":"admin@lifeflow.example","password":"secret-pass"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || !resp.RequireOTP {
		t.Fatalf("expected success with requireOTP, got %+v", resp)
	}

	// No session cookie before the second factor.
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			t.Fatalf("login must not set a session cookie")
		}
	}
}

func TestAdminHandler_Login_InvalidPayload(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAdminService{
		loginFn: func(ctx context.Context, email, password string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAdminHandler(stub, false)

	c, rec := jsonContext(e, http.MethodPost, "/api/admin/login", `{"email":"not-an-email"}`)
	if err := handler.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_VerifyOTP_SetsSessionCookie(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	expires := time.Now().Add(time.Hour)
	stub := &stubAdminService{
		verifyOTPFn: func(ctx context.Context, email, code string) (*ports.SessionToken, *domain.Admin, error) {
			if code != "123456" {
				t.Fatalf("unexpected code: %s", code)
			}
			token := &ports.SessionToken{Token: "signed-token", TokenID: "jti-1", ExpiresAt: expires}
			admin := &domain.Admin{ID: "admin_1", Email: email, Role: domain.RoleSuperadmin}
			return token, admin, nil
		},
	}
	handler := NewAdminHandler(stub, false)

	c, rec := jsonContext(e, http.MethodPost, "/api/admin/verify-otp", `{"email":"admin@lifeflow.example","code":"123456"}`)
	if err := handler.VerifyOTP(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var found *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			found = cookie
		}
	}
	if found == nil {
		t.Fatalf("session cookie not set")
	}
	if found.Value != "signed-token" {
		t.Fatalf("unexpected cookie value: %s", found.Value)
	}
	if !found.HttpOnly {
		t.Fatalf("cookie must be HttpOnly")
	}
	if found.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie must be SameSite=Strict")
	}

	var resp verifyOTPResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Admin == nil || resp.Admin.ID != "admin_1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAdminHandler_VerifyOTP_RejectsShortCode(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAdminService{
		verifyOTPFn: func(ctx context.Context, email, code string) (*ports.SessionToken, *domain.Admin, error) {
			t.Fatalf("should not be called")
			return nil, nil, nil
		},
	}
	handler := NewAdminHandler(stub, false)

	c, rec := jsonContext(e, http.MethodPost, "/api/admin/verify-otp", `{"email":"admin@lifeflow.example","code":"123"}`)
	if err := handler.VerifyOTP(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_ResendOTP_CooldownCarriesRetryAfter(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAdminService{
		resendOTPFn: func(ctx context.Context, email string) error {
			return domain.ErrOTPResendCooldown
		},
	}
	handler := NewAdminHandler(stub, false)

	c, rec := jsonContext(e, http.MethodPost, "/api/admin/resend-otp", `{"email":"admin@lifeflow.example"}`)
	if err := handler.ResendOTP(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}

	var resp resendCooldownResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.RetryAfter != 60 {
		t.Fatalf("expected retryAfter 60, got %d", resp.RetryAfter)
	}
}

func TestAdminHandler_Logout_ClearsCookieAndRevokes(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	var revokedID string
	stub := &stubAdminService{
		logoutFn: func(ctx context.Context, tokenID string, expiresAt time.Time) error {
			revokedID = tokenID
			return nil
		},
	}
	handler := NewAdminHandler(stub, false)

	c, rec := jsonContext(e, http.MethodPost, "/api/admin/logout", "")
	c.Set(middleware.CtxTokenID, "jti-9")
	c.Set(middleware.CtxTokenExpiry, time.Now().Add(time.Hour))

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if revokedID != "jti-9" {
		t.Fatalf("expected revocation of jti-9, got %q", revokedID)
	}

	var cleared *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			cleared = cookie
		}
	}
	if cleared == nil {
		t.Fatalf("expected a clearing cookie")
	}
	if cleared.Value != "" || cleared.MaxAge != -1 {
		t.Fatalf("cookie not cleared: value=%q maxAge=%d", cleared.Value, cleared.MaxAge)
	}
}
