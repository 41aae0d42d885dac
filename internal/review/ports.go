package review

import (
	"context"
)

// Repository is the review ledger.
type Repository interface {
	// Create reports ErrDuplicate when the user already reviewed the book
	// and ErrBookNotFound when the book does not exist.
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id string) error
	// ListByBook returns the book's reviews newest first, with reviewer
	// names filled in.
	ListByBook(ctx context.Context, bookID string) ([]Review, error)
	RatingsForBook(ctx context.Context, bookID string) ([]int, error)
}

// BookLookup tells whether a review target exists.
type BookLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Recomputer refreshes a book's cached average rating.
type Recomputer interface {
	Recompute(ctx context.Context, bookID string) (float64, error)
}
