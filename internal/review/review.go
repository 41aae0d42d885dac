package review

import (
	"time"

	"bookreview/internal/apperr"
)

var (
	ErrNotFound     = apperr.New(apperr.ErrNotFound, "Review not found")
	ErrBookNotFound = apperr.New(apperr.ErrNotFound, "Book not found")
	ErrDuplicate    = apperr.New(apperr.ErrDuplicateReview, "You have already reviewed this book")
)

// Review is one user's rating of one book. A user reviews a book at most
// once.
type Review struct {
	ID           string    `json:"id"`
	BookID       string    `json:"book_id"`
	UserID       string    `json:"user_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Rating       int       `json:"rating"`
	Text         string    `json:"review_text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r Review) OwnerID() string {
	return r.UserID
}
