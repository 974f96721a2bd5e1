package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/lifeflow/donation-platform/internal/core/domain"
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

// SessionCookieName is the cookie carrying the signed admin session token.
const SessionCookieName = "adminToken"

// Context keys set by the Session middleware.
const (
	CtxAdminID     = "admin_id"
	CtxRole        = "role"
	CtxTokenID     = "token_id"
	CtxTokenExpiry = "token_expires_at"
)

// AccountSource re-confirms that the admin referenced by a token still
// exists, so a deleted account's outstanding tokens are rejected.
type AccountSource interface {
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
}

// SessionConfig wires the Session middleware's dependencies.
type SessionConfig struct {
	Secret   string
	Accounts AccountSource
	// Revoker is optional; when nil, logout is cookie-clearing only.
	Revoker ports.SessionRevoker
}

// Session validates the session cookie and injects the caller's identity
// into the request context. Expired tokens and malformed/invalid ones get
// distinct messages but the same 401 status.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(cfg.Secret), nil
			})
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}
			if !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			adminID, _ := claims["sub"].(string)
			tokenID, _ := claims["jti"].(string)
			if adminID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			ctx := c.Request().Context()

			if cfg.Revoker != nil && tokenID != "" {
				revoked, err := cfg.Revoker.IsRevoked(ctx, tokenID)
				// A revocation-store outage must not lock every admin out.
				if err == nil && revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
				}
			}

			admin, err := cfg.Accounts.FindByID(ctx, adminID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
			}

			c.Set(CtxAdminID, admin.ID)
			c.Set(CtxRole, string(admin.Role))
			c.Set(CtxTokenID, tokenID)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set(CtxTokenExpiry, exp.Time)
			} else {
				c.Set(CtxTokenExpiry, time.Time{})
			}

			return next(c)
		}
	}
}
