package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

type stubAccounts struct {
	admins map[string]*domain.Admin
}

func (s *stubAccounts) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	a, ok := s.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return a, nil
}

type stubRevoker struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevoker) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	if s.revoked == nil {
		s.revoked = make(map[string]bool)
	}
	s.revoked[tokenID] = true
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[tokenID], nil
}

func signSession(t *testing.T, secret, adminID, role, jti string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  adminID,
		"role": role,
		"jti":  jti,
		"exp":  exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func sessionRequest(token string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	return req, httptest.NewRecorder()
}

func httpErrorMessage(t *testing.T, err error) string {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	msg, ok := he.Message.(string)
	if !ok {
		t.Fatalf("expected string message, got %T", he.Message)
	}
	return msg
}

func TestSession_ValidCookie(t *testing.T) {
	e := echo.New()
	accounts := &stubAccounts{admins: map[string]*domain.Admin{
		"admin_1": {ID: "admin_1", Role: domain.RoleSuperadmin},
	}}
	mw := Session(SessionConfig{Secret: "secret", Accounts: accounts})

	exp := time.Now().Add(time.Hour)
	token := signSession(t, "secret", "admin_1", "superadmin", "jti-1", exp)
	req, rec := sessionRequest(token)
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(CtxAdminID) != "admin_1" {
			t.Fatalf("admin id not set")
		}
		if c.Get(CtxRole) != "superadmin" {
			t.Fatalf("role not set")
		}
		if c.Get(CtxTokenID) != "jti-1" {
			t.Fatalf("token id not set")
		}
		got, ok := c.Get(CtxTokenExpiry).(time.Time)
		if !ok || got.Unix() != exp.Unix() {
			t.Fatalf("expiry not set: %v", c.Get(CtxTokenExpiry))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSession_MissingCookie(t *testing.T) {
	e := echo.New()
	mw := Session(SessionConfig{Secret: "secret", Accounts: &stubAccounts{}})

	req, rec := sessionRequest("")
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)

	if msg := httpErrorMessage(t, err); msg != "authentication required" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestSession_ExpiredToken(t *testing.T) {
	e := echo.New()
	accounts := &stubAccounts{admins: map[string]*domain.Admin{
		"admin_1": {ID: "admin_1", Role: domain.RoleSuperadmin},
	}}
	mw := Session(SessionConfig{Secret: "secret", Accounts: accounts})

	token := signSession(t, "secret", "admin_1", "superadmin", "jti-1", time.Now().Add(-time.Minute))
	req, rec := sessionRequest(token)
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error { return nil })(c)

	if msg := httpErrorMessage(t, err); msg != "session expired" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestSession_BadSignature(t *testing.T) {
	e := echo.New()
	mw := Session(SessionConfig{Secret: "secret", Accounts: &stubAccounts{}})

	token := signSession(t, "other-secret", "admin_1", "superadmin", "jti-1", time.Now().Add(time.Hour))
	req, rec := sessionRequest(token)
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error { return nil })(c)

	if msg := httpErrorMessage(t, err); msg != "invalid session token" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestSession_RevokedToken(t *testing.T) {
	e := echo.New()
	accounts := &stubAccounts{admins: map[string]*domain.Admin{
		"admin_1": {ID: "admin_1", Role: domain.RoleSuperadmin},
	}}
	revoker := &stubRevoker{revoked: map[string]bool{"jti-1": true}}
	mw := Session(SessionConfig{Secret: "secret", Accounts: accounts, Revoker: revoker})

	token := signSession(t, "secret", "admin_1", "superadmin", "jti-1", time.Now().Add(time.Hour))
	req, rec := sessionRequest(token)
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error { return nil })(c)

	if msg := httpErrorMessage(t, err); msg != "session revoked" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestSession_RevokerOutageFailsOpen(t *testing.T) {
	e := echo.New()
	accounts := &stubAccounts{admins: map[string]*domain.Admin{
		"admin_1": {ID: "admin_1", Role: domain.RoleSuperadmin},
	}}
	revoker := &stubRevoker{err: context.DeadlineExceeded}
	mw := Session(SessionConfig{Secret: "secret", Accounts: accounts, Revoker: revoker})

	token := signSession(t, "secret", "admin_1", "superadmin", "jti-1", time.Now().Add(time.Hour))
	req, rec := sessionRequest(token)
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	if err != nil || !called {
		t.Fatalf("revocation-store outage must not block the request: %v", err)
	}
}

func TestSession_DeletedAccount(t *testing.T) {
	e := echo.New()
	mw := Session(SessionConfig{Secret: "secret", Accounts: &stubAccounts{}})

	token := signSession(t, "secret", "admin_gone", "superadmin", "jti-1", time.Now().Add(time.Hour))
	req, rec := sessionRequest(token)
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error { return nil })(c)

	if msg := httpErrorMessage(t, err); msg != "account no longer exists" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestSession_RoleReflectsLiveAccount(t *testing.T) {
	// The role stored in the token is stale once the account changes; the
	// middleware must inject the role currently on record.
	e := echo.New()
	accounts := &stubAccounts{admins: map[string]*domain.Admin{
		"admin_1": {ID: "admin_1", Role: domain.RoleSupport},
	}}
	mw := Session(SessionConfig{Secret: "secret", Accounts: accounts})

	token := signSession(t, "secret", "admin_1", "superadmin", "jti-1", time.Now().Add(time.Hour))
	req, rec := sessionRequest(token)
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error {
		if c.Get(CtxRole) != string(domain.RoleSupport) {
			t.Fatalf("expected live role support, got %v", c.Get(CtxRole))
		}
		return c.NoContent(http.StatusOK)
	})(c)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
