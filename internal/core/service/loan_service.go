package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
	"github.com/mibiblioteca/catalog-api/internal/core/ports"
)

type LoanService struct {
	repo   ports.LoanRepository
	logger zerolog.Logger
}

func NewLoanService(repo ports.LoanRepository, logger zerolog.Logger) *LoanService {
	return &LoanService{repo: repo, logger: logger}
}

// RecordLoan stores a loan for the caller. The book id is taken as given:
// neither its existence nor its availability is checked.
func (s *LoanService) RecordLoan(ctx context.Context, caller domain.Principal, bookID int64, readingDuration int) (*domain.Loan, error) {
	loan := &domain.Loan{
		BookID:          bookID,
		UserID:          caller.UserID,
		ReadingDuration: readingDuration,
	}
	if err := s.repo.Create(ctx, loan); err != nil {
		return nil, domain.Internal("Error al registrar préstamo", err)
	}

	s.logger.Info().Int64("loan_id", loan.ID).Int64("book_id", bookID).Int64("user_id", caller.UserID).Msg("loan recorded")
	return loan, nil
}

// ListLoans returns the caller's loans joined with book metadata, newest first.
func (s *LoanService) ListLoans(ctx context.Context, caller domain.Principal) ([]domain.LoanWithBook, error) {
	loans, err := s.repo.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, domain.Internal("Error al cargar préstamos", err)
	}
	if loans == nil {
		loans = []domain.LoanWithBook{}
	}
	return loans, nil
}
