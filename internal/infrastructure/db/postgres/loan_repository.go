package postgres

import (
	"context"
	"fmt"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

type LoanRepository struct {
	db DBTX
}

func NewLoanRepository(db DBTX) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create inserts the loan and fills in its id and timestamp.
func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	query :=
		`INSERT INTO prestamos (libro_id, usuario_id, tiempo_lectura)
		 VALUES ($1, $2, $3)
		 RETURNING id, fecha_prestamo`

	err := r.db.QueryRowContext(ctx, query,
		loan.BookID, loan.UserID, loan.ReadingDuration).Scan(&loan.ID, &loan.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// ListByUser returns the user's loans newest first. Loans whose book no longer
// exists are dropped by the inner join.
func (r *LoanRepository) ListByUser(ctx context.Context, userID int64) ([]domain.LoanWithBook, error) {
	query :=
		`SELECT p.id, p.libro_id, p.usuario_id, p.tiempo_lectura, p.fecha_prestamo,
		        l.titulo, l.autor, l.imagen_url, l.pdf_url
		 FROM prestamos p
		 JOIN libros l ON p.libro_id = l.id
		 WHERE p.usuario_id = $1
		 ORDER BY p.fecha_prestamo DESC, p.id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	loans := []domain.LoanWithBook{}
	for rows.Next() {
		var l domain.LoanWithBook
		if err := rows.Scan(&l.ID, &l.BookID, &l.UserID, &l.ReadingDuration, &l.CreatedAt,
			&l.Title, &l.Author, &l.CoverRef, &l.DocumentRef); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return loans, nil
}
