package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  int64
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	if _, exists := r.users[user.Email]; exists {
		return 0, domain.ErrDuplicate
	}
	r.nextID++
	clone := *user
	clone.ID = r.nextID
	r.users[clone.Email] = &clone
	return clone.ID, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubBookRepo struct {
	books  map[int64]domain.Book
	nextID int64
	err    error
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[int64]domain.Book)}
}

func (r *stubBookRepo) List(_ context.Context, f domain.BookFilter) ([]domain.Book, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Book
	for _, b := range r.books {
		if f.Category != "" && !strings.EqualFold(b.Category, f.Category) {
			continue
		}
		if f.Search != "" {
			term := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(b.Title+" "+b.Author+" "+b.Category), term) {
				continue
			}
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Categories deliberately returns raw, unsorted values with duplicates.
func (r *stubBookRepo) Categories(_ context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	ids := make([]int64, 0, len(r.books))
	for id := range r.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.books[id].Category)
	}
	return out, nil
}

func (r *stubBookRepo) Create(_ context.Context, b *domain.Book) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.nextID++
	clone := *b
	clone.ID = r.nextID
	r.books[clone.ID] = clone
	return clone.ID, nil
}

func (r *stubBookRepo) Delete(_ context.Context, id int64) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.books[id]; !ok {
		return false, nil
	}
	delete(r.books, id)
	return true, nil
}

// stubLoanRepo joins against a stubBookRepo the way the SQL inner join does.
type stubLoanRepo struct {
	books  *stubBookRepo
	loans  []domain.Loan
	clock  time.Time
	err    error
	nextID int64
}

func (r *stubLoanRepo) Create(_ context.Context, l *domain.Loan) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	r.clock = r.clock.Add(time.Second)
	l.ID = r.nextID
	l.CreatedAt = r.clock
	r.loans = append(r.loans, *l)
	return nil
}

func (r *stubLoanRepo) ListByUser(_ context.Context, userID int64) ([]domain.LoanWithBook, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.LoanWithBook
	for i := len(r.loans) - 1; i >= 0; i-- {
		l := r.loans[i]
		if l.UserID != userID {
			continue
		}
		b, ok := r.books.books[l.BookID]
		if !ok {
			continue
		}
		out = append(out, domain.LoanWithBook{
			Loan: l, Title: b.Title, Author: b.Author, CoverRef: b.CoverRef, DocumentRef: b.DocumentRef,
		})
	}
	return out, nil
}

type stubAssetStore struct {
	mu     sync.Mutex
	files  map[string][]byte
	putErr error
}

func newStubAssetStore() *stubAssetStore {
	return &stubAssetStore{files: make(map[string][]byte)}
}

func (s *stubAssetStore) Put(_ context.Context, u *domain.Upload) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	data, err := io.ReadAll(u.Content)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := "1700000000000-" + u.Filename
	s.files[ref] = data
	return ref, nil
}

func (s *stubAssetStore) Open(_ context.Context, ref string) (*domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ref == "broken" {
		return nil, errors.New("disk failure")
	}
	data, ok := s.files[ref]
	if !ok {
		return nil, domain.ErrAssetNotFound
	}
	return &domain.Asset{
		Name:    ref,
		Size:    int64(len(data)),
		Content: io.NopCloser(strings.NewReader(string(data))),
	}, nil
}
