package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// Authorize enforces the permission matrix for a resource/action pair.
// Superadmins bypass the matrix; everyone else is denied unless their
// matrix explicitly grants the pair. Must run after Auth.
func Authorize(resource domain.Resource, action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin, err := AdminFrom(c)
			if err != nil {
				return err
			}

			if admin.Role != domain.RoleSuperAdmin && !admin.Permissions.Allows(resource, action) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
