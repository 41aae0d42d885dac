package book

import (
	"context"

	"bookreview/internal/review"
)

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id string) (Book, error)
	List(ctx context.Context, q Query) ([]Book, int, error)
	Update(ctx context.Context, b *Book) error
	// Delete removes the book and all of its reviews atomically.
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	SetAverageRating(ctx context.Context, id string, average float64) error
}

// ReviewLister supplies the reviews shown on a book's detail view.
type ReviewLister interface {
	ListByBook(ctx context.Context, bookID string) ([]review.Review, error)
}
