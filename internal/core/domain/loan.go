package domain

import "time"

// Loan records that a user borrowed a book. BookID is not checked against the
// catalog when the loan is created.
type Loan struct {
	ID              int64     `json:"id"`
	BookID          int64     `json:"libro_id"`
	UserID          int64     `json:"usuario_id"`
	ReadingDuration int       `json:"tiempo_lectura"`
	CreatedAt       time.Time `json:"fecha_prestamo"`
}

// LoanWithBook is a loan joined with the metadata of its book.
type LoanWithBook struct {
	Loan
	Title       string `json:"titulo"`
	Author      string `json:"autor"`
	CoverRef    string `json:"imagen_url"`
	DocumentRef string `json:"pdf_url"`
}
