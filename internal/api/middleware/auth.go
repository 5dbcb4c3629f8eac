package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
	"github.com/telegram-clone/admin-api/internal/pkg/session"
)

// AdminContextKey is where Auth stores the authenticated *domain.Admin.
const AdminContextKey = "admin"

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "token"

// Auth validates the session token and loads the live admin record into the
// request context. The token is read from the session cookie first, then
// from an Authorization bearer header, so both browser and API clients work.
//
// The permission snapshot inside the token is ignored here: the admin is
// re-read from storage on every request so that a deactivation or permission
// change takes effect immediately, not at token expiry.
func Auth(jwtSecret string, admins ports.AdminRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFrom(c)
			if raw == "" {
				return domain.ErrUnauthenticated
			}

			claims, err := session.Parse(jwtSecret, raw)
			if err != nil {
				return err
			}

			admin, err := admins.FindByID(c.Request().Context(), claims.AdminID)
			if err != nil {
				return domain.ErrTokenInvalid
			}
			if !admin.IsActive {
				return domain.ErrAccountDisabled
			}
			if admin.IsLocked(time.Now().UTC()) {
				return domain.ErrAccountLocked
			}

			c.Set(AdminContextKey, admin)
			return next(c)
		}
	}
}

// AuthOptional resolves the session like Auth but never rejects the request:
// an absent, invalid or orphaned token just leaves the context without an
// admin. Logout runs behind it so the cookie is cleared regardless of
// session state.
func AuthOptional(jwtSecret string, admins ports.AdminRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFrom(c)
			if raw == "" {
				return next(c)
			}

			claims, err := session.Parse(jwtSecret, raw)
			if err != nil {
				return next(c)
			}

			admin, err := admins.FindByID(c.Request().Context(), claims.AdminID)
			if err != nil {
				return next(c)
			}

			c.Set(AdminContextKey, admin)
			return next(c)
		}
	}
}

func tokenFrom(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// AdminFrom returns the admin injected by Auth, or an unauthorized error if
// the middleware did not run on this route.
func AdminFrom(c echo.Context) (*domain.Admin, error) {
	admin, ok := c.Get(AdminContextKey).(*domain.Admin)
	if !ok || admin == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return admin, nil
}
