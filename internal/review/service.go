package review

import (
	"context"
	"fmt"
	"strings"

	"bookreview/internal/access"
	"bookreview/internal/apperr"
	"bookreview/internal/platform/validate"

	"github.com/sirupsen/logrus"
)

type Service struct {
	repo    Repository
	books   BookLookup
	ratings Recomputer
	log     logrus.FieldLogger
}

func NewService(repo Repository, books BookLookup, ratings Recomputer, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, books: books, ratings: ratings, log: log}
}

type CreateInput struct {
	BookID string `json:"book_id" validate:"notblank"`
	Rating *int   `json:"rating" validate:"required,min=1,max=5"`
	Text   string `json:"review_text" validate:"notblank,max=5000"`
}

type UpdateInput struct {
	Rating *int    `json:"rating" validate:"omitnil,min=1,max=5"`
	Text   *string `json:"review_text" validate:"omitnil,notblank,max=5000"`
}

// Create records requesterID's review of a book and refreshes the book's
// average.
func (s *Service) Create(ctx context.Context, requesterID string, in CreateInput) (Review, error) {
	if err := access.RequireUser(requesterID); err != nil {
		return Review{}, err
	}
	in.BookID = strings.TrimSpace(in.BookID)
	if err := validate.Struct(in); err != nil {
		return Review{}, err
	}

	exists, err := s.books.Exists(ctx, in.BookID)
	if err != nil {
		return Review{}, apperr.Internal(fmt.Errorf("lookup book: %w", err))
	}
	if !exists {
		return Review{}, ErrBookNotFound
	}

	rv := &Review{
		BookID: in.BookID,
		UserID: requesterID,
		Rating: *in.Rating,
		Text:   in.Text,
	}
	if err := s.repo.Create(ctx, rv); err != nil {
		return Review{}, apperr.Internal(err)
	}

	if err := s.recompute(ctx, rv.BookID); err != nil {
		return Review{}, err
	}
	return *rv, nil
}

// Update changes the rating or text of a review. Only its author may.
func (s *Service) Update(ctx context.Context, requesterID, id string, in UpdateInput) (Review, error) {
	if err := access.RequireUser(requesterID); err != nil {
		return Review{}, err
	}

	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Review{}, apperr.Internal(err)
	}
	if err := access.Authorize(requesterID, rv); err != nil {
		return Review{}, err
	}
	if err := validate.Struct(in); err != nil {
		return Review{}, err
	}

	if in.Rating != nil {
		rv.Rating = *in.Rating
	}
	if in.Text != nil {
		rv.Text = *in.Text
	}
	if err := s.repo.Update(ctx, &rv); err != nil {
		return Review{}, apperr.Internal(err)
	}

	if err := s.recompute(ctx, rv.BookID); err != nil {
		return Review{}, err
	}
	return rv, nil
}

// Delete removes a review. Only its author may.
func (s *Service) Delete(ctx context.Context, requesterID, id string) error {
	if err := access.RequireUser(requesterID); err != nil {
		return err
	}

	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := access.Authorize(requesterID, rv); err != nil {
		return err
	}

	bookID := rv.BookID
	if err := s.repo.Delete(ctx, rv.ID); err != nil {
		return apperr.Internal(err)
	}
	return s.recompute(ctx, bookID)
}

// ListByBook returns the book's reviews newest first.
func (s *Service) ListByBook(ctx context.Context, bookID string) ([]Review, error) {
	reviews, err := s.repo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return reviews, nil
}

// recompute runs after the review change is stored. A failure leaves the
// cached average stale until the next review change on the same book.
func (s *Service) recompute(ctx context.Context, bookID string) error {
	if _, err := s.ratings.Recompute(ctx, bookID); err != nil {
		s.log.WithError(err).WithField("book_id", bookID).Error("recompute average rating failed")
		return apperr.Internal(err)
	}
	return nil
}
