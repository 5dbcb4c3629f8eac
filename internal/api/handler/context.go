package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/telegram-clone/admin-api/internal/api/middleware"
	"github.com/telegram-clone/admin-api/internal/core/domain"
	"github.com/telegram-clone/admin-api/internal/core/ports"
)

// adminFrom extracts the authenticated admin injected by the Auth middleware.
func adminFrom(c echo.Context) (*domain.Admin, error) {
	return middleware.AdminFrom(c)
}

// requestMeta captures the client context recorded on audited operations.
// RealIP honours X-Forwarded-For / X-Real-IP when running behind a proxy.
func requestMeta(c echo.Context) ports.RequestMeta {
	return ports.RequestMeta{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

// queryInt parses an integer query parameter, falling back on absence or
// garbage. Bounds are enforced downstream by the pagination normaliser.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
