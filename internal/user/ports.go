package user

import (
	"context"
)

// Repository is the credential store. Create must report ErrEmailTaken when
// the email is already registered.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
