package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/telegram-clone/admin-api/internal/api/metrics"
	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// Limiter throttles requests per client within a scope.
type Limiter interface {
	Allow(ctx context.Context, scope, clientIP string) (bool, error)
}

// RateLimit throttles a route group per client IP. A limiter backend failure
// fails open: login availability is worth more than throttling precision
// during a Redis outage.
func RateLimit(limiter Limiter, scope string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), scope, c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedRequestsTotal.Inc()
				return domain.ErrRateLimited
			}
			return next(c)
		}
	}
}
