package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mibiblioteca/catalog-api/internal/core/domain"
)

func TestLoanRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLoanRepository(db)
	at := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+prestamos\s*\(libro_id,\s*usuario_id,\s*tiempo_lectura\).*RETURNING\s+id,\s*fecha_prestamo$`).
		WithArgs(int64(3), int64(9), 15).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fecha_prestamo"}).AddRow(int64(21), at))

	loan := &domain.Loan{BookID: 3, UserID: 9, ReadingDuration: 15}
	require.NoError(t, repo.Create(context.Background(), loan))
	assert.Equal(t, int64(21), loan.ID)
	assert.Equal(t, at, loan.CreatedAt)
}

func TestLoanRepository_Create_DBError(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLoanRepository(db)

	mock.ExpectQuery(`INSERT\s+INTO\s+prestamos`).WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &domain.Loan{BookID: 3, UserID: 9})
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}

func TestLoanRepository_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLoanRepository(db)
	newer := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(`(?s)FROM\s+prestamos\s+p\s+JOIN\s+libros\s+l\s+ON\s+p\.libro_id\s*=\s*l\.id\s+WHERE\s+p\.usuario_id\s*=\s*\$1\s+ORDER\s+BY\s+p\.fecha_prestamo\s+DESC`).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "libro_id", "usuario_id", "tiempo_lectura", "fecha_prestamo",
			"titulo", "autor", "imagen_url", "pdf_url",
		}).
			AddRow(int64(2), int64(4), int64(9), 30, newer, "Sapiens", "Harari", "c.jpg", "l.pdf").
			AddRow(int64(1), int64(3), int64(9), 10, older, "Rayuela", "Cortázar", "c2.jpg", "l2.pdf"))

	loans, err := repo.ListByUser(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, "Sapiens", loans[0].Title)
	assert.Equal(t, 30, loans[0].ReadingDuration)
	assert.Equal(t, older, loans[1].CreatedAt)
}

func TestLoanRepository_ListByUser_Empty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewLoanRepository(db)

	mock.ExpectQuery(`FROM\s+prestamos`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	loans, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, loans)
	assert.Empty(t, loans)
}
