package ports

import (
	"context"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

// LoanRepository defines persistence for loans.
type LoanRepository interface {
	// Create stores the loan, assigning ID and CreatedAt.
	Create(ctx context.Context, loan *domain.Loan) error
	// ListByUser returns the user's loans joined with their books, most recent
	// first. Loans whose book no longer exists are omitted.
	ListByUser(ctx context.Context, userID int64) ([]domain.LoanWithBook, error)
}
