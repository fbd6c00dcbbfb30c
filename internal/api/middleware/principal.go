package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

const principalKey = "principal"

func setPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal injected by Auth. ok is false when the
// route is not behind Auth.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}
