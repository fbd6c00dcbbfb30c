package ports

import (
	"context"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

// AddBookInput carries the multipart form of an admin book upload.
// Cover and Document are nil when the client omitted the file.
type AddBookInput struct {
	Title    string
	Author   string
	Category string
	Cover    *domain.Upload
	Document *domain.Upload
}

type CatalogService interface {
	ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
	ListCategories(ctx context.Context) ([]string, error)
	AddBook(ctx context.Context, caller domain.Principal, in AddBookInput) (*domain.Book, error)
	RemoveBook(ctx context.Context, caller domain.Principal, id int64) error
}
