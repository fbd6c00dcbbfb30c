package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

type BookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) *BookRepository {
	return &BookRepository{db: db}
}

// List returns books newest first. Search matches title, author or category
// case-insensitively; Category is an exact case-insensitive match.
func (r *BookRepository) List(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	var (
		where []string
		args  []any
	)
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(titulo ILIKE $%d OR autor ILIKE $%d OR categoria ILIKE $%d)", n, n, n))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("LOWER(categoria) = LOWER($%d)", len(args)))
	}

	query := `SELECT id, titulo, autor, categoria, imagen_url, pdf_url FROM libros`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.CoverRef, &b.DocumentRef); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return books, nil
}

func (r *BookRepository) Categories(ctx context.Context) ([]string, error) {
	query :=
		`SELECT DISTINCT categoria FROM libros
		 WHERE categoria IS NOT NULL AND categoria <> ''
		 ORDER BY categoria`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cats, nil
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (int64, error) {
	query :=
		`INSERT INTO libros (titulo, autor, categoria, imagen_url, pdf_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		book.Title, book.Author, book.Category, book.CoverRef, book.DocumentRef).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

// Delete reports whether a row was removed.
func (r *BookRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM libros WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
