package ports

import (
	"context"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

// Session is the result of a successful login.
type Session struct {
	Token   string
	IsAdmin bool
}

// TokenVerifier decodes a bearer credential into a principal.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Principal, error)
}

type AuthService interface {
	TokenVerifier
	Register(ctx context.Context, name, email, password string) (int64, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}
