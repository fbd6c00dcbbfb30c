package domain

import "time"

// User models a registered reader. Admin is set out of band and never changed
// through the API.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"es_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the identity decoded from a verified bearer credential.
// IsAdmin reflects the role at issuance time, not the current stored value.
type Principal struct {
	UserID  int64
	IsAdmin bool
}
