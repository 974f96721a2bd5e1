package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lifeflow/donation-platform/internal/core/domain"
)

func TestRequireCapability_Matrix(t *testing.T) {
	cases := []struct {
		role    domain.Role
		cap     domain.Capability
		allowed bool
	}{
		{domain.RoleSuperadmin, domain.CapManageAdmins, true},
		{domain.RoleSuperadmin, domain.CapApproveRecords, true},
		{domain.RoleSuperadmin, domain.CapHandleTickets, true},
		{domain.RoleModerator, domain.CapManageAdmins, false},
		{domain.RoleModerator, domain.CapApproveRecords, true},
		{domain.RoleModerator, domain.CapHandleTickets, false},
		{domain.RoleSupport, domain.CapManageAdmins, false},
		{domain.RoleSupport, domain.CapApproveRecords, false},
		{domain.RoleSupport, domain.CapHandleTickets, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.role)+"/"+string(tc.cap), func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(CtxRole, string(tc.role))

			called := false
			err := RequireCapability(tc.cap)(func(c echo.Context) error {
				called = true
				return c.NoContent(http.StatusOK)
			})(c)
			if err != nil {
				t.Fatalf("middleware error: %v", err)
			}

			if tc.allowed {
				if !called || rec.Code != http.StatusOK {
					t.Fatalf("expected access, got code %d called=%v", rec.Code, called)
				}
			} else {
				if called {
					t.Fatalf("handler must not run")
				}
				if rec.Code != http.StatusForbidden {
					t.Fatalf("expected 403, got %d", rec.Code)
				}
			}
		})
	}
}

func TestRequireCapability_MissingRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RequireCapability(domain.CapApproveRecords)(func(c echo.Context) error {
		t.Fatalf("handler must not run")
		return nil
	})(c)
	if err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
