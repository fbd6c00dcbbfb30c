package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
)

// Auth verifies the bearer credential and injects the principal into context.
// A missing header or an empty token yields "Token requerido"; anything the
// verifier rejects yields "Token inválido". Both render as 401.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			principal, err := verifier.VerifyToken(token)
			if err != nil {
				return err
			}

			setPrincipal(c, *principal)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.ErrMissingToken
	}

	scheme, token, _ := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrMissingToken
	}
	if !strings.EqualFold(scheme, "bearer") {
		return "", domain.ErrInvalidToken
	}
	return token, nil
}
