package user

import (
	"time"

	"bookreview/internal/apperr"
)

var (
	ErrNotFound   = apperr.New(apperr.ErrNotFound, "User not found")
	ErrEmailTaken = apperr.New(apperr.ErrConflict, "Email already in use")
)

// User is an account. It is never edited after signup.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public is the representation returned to clients.
type Public struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Name: u.Name, Email: u.Email}
}
