package service

import (
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
)

type CatalogService struct {
	repo   ports.BookRepository
	assets ports.AssetStore
	logger zerolog.Logger
}

func NewCatalogService(repo ports.BookRepository, assets ports.AssetStore, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, assets: assets, logger: logger}
}

// ListBooks returns the catalog newest first, optionally filtered.
func (s *CatalogService) ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = strings.TrimSpace(filter.Category)

	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.Internal("Error al cargar catálogo", err)
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}

// ListCategories returns the distinct non-empty categories in ascending order.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, domain.Internal("Error al obtener categorías", err)
	}

	out := make([]string, 0, len(cats))
	for _, c := range cats {
		if c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// AddBook stores both assets and then inserts the catalog row. The two steps
// are not atomic: a failed insert leaves the files behind.
func (s *CatalogService) AddBook(ctx context.Context, caller domain.Principal, in ports.AddBookInput) (*domain.Book, error) {
	if !caller.IsAdmin {
		return nil, domain.Forbidden("Solo administradores pueden agregar libros")
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Category = strings.TrimSpace(in.Category)
	if in.Title == "" || in.Author == "" || in.Category == "" || in.Cover == nil || in.Document == nil {
		return nil, domain.ErrMissingBookFields
	}

	coverRef, err := s.assets.Put(ctx, in.Cover)
	if err != nil {
		return nil, domain.Internal("Error al agregar libro", err)
	}
	docRef, err := s.assets.Put(ctx, in.Document)
	if err != nil {
		return nil, domain.Internal("Error al agregar libro", err)
	}

	book := &domain.Book{
		Title:       in.Title,
		Author:      in.Author,
		Category:    in.Category,
		CoverRef:    coverRef,
		DocumentRef: docRef,
	}
	id, err := s.repo.Create(ctx, book)
	if err != nil {
		s.logger.Error().Err(err).Str("cover", coverRef).Str("pdf", docRef).Msg("book insert failed, assets left orphaned")
		return nil, domain.Internal("Error al agregar libro", err)
	}
	book.ID = id

	s.logger.Info().Int64("book_id", id).Int64("admin_id", caller.UserID).Msg("book added")
	return book, nil
}

// RemoveBook hard-deletes one book. Loans and asset files are left as they are.
func (s *CatalogService) RemoveBook(ctx context.Context, caller domain.Principal, id int64) error {
	if !caller.IsAdmin {
		return domain.Forbidden("Solo administradores pueden borrar libros")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return domain.Internal("Error al borrar el libro", err)
	}
	if !deleted {
		return domain.ErrBookNotFound
	}

	s.logger.Info().Int64("book_id", id).Int64("admin_id", caller.UserID).Msg("book deleted")
	return nil
}
