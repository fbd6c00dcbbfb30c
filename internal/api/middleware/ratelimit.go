package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mibiblioteca/catalog-api/internal/api/metrics"
	"github.com/mibiblioteca/catalog-api/internal/core/domain"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
)

// LoginThrottle limits login attempts per client IP. When the limiter itself
// fails the request is let through and the failure logged.
func LoginThrottle(limiter ports.LoginLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, err := limiter.Allow(c.Request().Context(), ip)
			if err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("login throttle unavailable")
				return next(c)
			}
			if !allowed {
				metrics.LoginsTotal.WithLabelValues("throttled").Inc()
				log.Warn().Str("ip", ip).Msg("login attempts exceeded")
				return domain.ErrTooManyAttempts
			}
			return next(c)
		}
	}
}
