package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

func newLoanFixture() (*LoanService, *stubBookRepo, *stubLoanRepo) {
	books := newStubBookRepo()
	loans := &stubLoanRepo{books: books, clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewLoanService(loans, zerolog.Nop()), books, loans
}

func TestLoanService_RecordThenListNewestFirst(t *testing.T) {
	svc, books, _ := newLoanFixture()
	first := seedBook(books, "Pedro Páramo", "Ficción")
	second := seedBook(books, "Sapiens", "Historia")

	if _, err := svc.RecordLoan(context.Background(), reader, first, 7); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	loan, err := svc.RecordLoan(context.Background(), reader, second, 14)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if loan.UserID != reader.UserID {
		t.Fatalf("borrower must come from the credential, got %d", loan.UserID)
	}

	list, err := svc.ListLoans(context.Background(), reader)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 loans, got %d", len(list))
	}
	if list[0].BookID != second || list[0].Title != "Sapiens" || list[0].Author != "Autor" {
		t.Fatalf("expected newest loan first with book metadata, got %+v", list[0])
	}
	if list[0].ReadingDuration != 14 {
		t.Fatalf("unexpected reading duration: %d", list[0].ReadingDuration)
	}
}

func TestLoanService_UnknownBookIsAcceptedButHidden(t *testing.T) {
	svc, _, loans := newLoanFixture()

	if _, err := svc.RecordLoan(context.Background(), reader, 424242, 1); err != nil {
		t.Fatalf("loan of unknown book must be accepted, got %v", err)
	}
	if len(loans.loans) != 1 {
		t.Fatalf("expected row to be stored")
	}

	list, _ := svc.ListLoans(context.Background(), reader)
	if len(list) != 0 {
		t.Fatalf("loan without book must be excluded by the join, got %+v", list)
	}
	if list == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestLoanService_DeletedBookDropsFromList(t *testing.T) {
	svc, books, _ := newLoanFixture()
	id := seedBook(books, "1984", "Ficción")
	_, _ = svc.RecordLoan(context.Background(), reader, id, 3)

	_, _ = books.Delete(context.Background(), id)

	list, _ := svc.ListLoans(context.Background(), reader)
	if len(list) != 0 {
		t.Fatalf("expected loan of deleted book to be hidden, got %d", len(list))
	}
}

func TestLoanService_ListIsPerCaller(t *testing.T) {
	svc, books, _ := newLoanFixture()
	id := seedBook(books, "Dune", "Ciencia ficción")
	_, _ = svc.RecordLoan(context.Background(), reader, id, 5)

	list, _ := svc.ListLoans(context.Background(), admin)
	if len(list) != 0 {
		t.Fatalf("other users' loans must not be listed")
	}
}

func TestLoanService_StoreErrors(t *testing.T) {
	svc, _, loans := newLoanFixture()
	loans.err = errors.New("db down")

	if _, err := svc.RecordLoan(context.Background(), reader, 1, 1); domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
	if _, err := svc.ListLoans(context.Background(), reader); domain.KindOf(err) != domain.KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}
