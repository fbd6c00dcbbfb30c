package ports

import (
	"context"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

type LoanService interface {
	RecordLoan(ctx context.Context, caller domain.Principal, bookID int64, readingDuration int) (*domain.Loan, error)
	ListLoans(ctx context.Context, caller domain.Principal) ([]domain.LoanWithBook, error)
}
