package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

// RequireAdmin rejects callers whose credential lacks the admin flag. It must
// run after Auth. The flag is read from the token, not from the store.
func RequireAdmin(message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrMissingToken
			}
			if !p.IsAdmin {
				return domain.Forbidden(message)
			}
			return next(c)
		}
	}
}
