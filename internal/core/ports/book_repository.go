package ports

import (
	"context"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

// BookRepository defines persistence for catalog entries.
type BookRepository interface {
	// List returns books newest first (descending id).
	List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
	// Categories returns distinct non-empty categories in ascending order.
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, book *domain.Book) (int64, error)
	// Delete removes one book and reports whether a row existed.
	Delete(ctx context.Context, id int64) (bool, error)
}
