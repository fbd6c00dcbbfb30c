package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mibiblioteca/catalog-api/internal/api/middleware"
	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

// callerFrom returns the principal the Auth middleware attached. Its absence
// means the route was wired without Auth, which is reported as a missing token.
func callerFrom(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, domain.ErrMissingToken
	}
	return p, nil
}
