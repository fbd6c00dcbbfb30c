package ports

import (
	"context"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

// UserRepository defines persistence for registered users.
type UserRepository interface {
	// Create inserts the user and returns its new id. A duplicate email
	// yields domain.ErrDuplicate.
	Create(ctx context.Context, user *domain.User) (int64, error)
	// FindByEmail returns domain.ErrUserNotFound when no user matches exactly.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
