package book

import (
	"context"
	"fmt"
	"math"
	"strings"

	"bookreview/internal/access"
	"bookreview/internal/apperr"
	"bookreview/internal/platform/validate"
	"bookreview/internal/rating"
)

// DefaultPageSize is used when the service is built with a non-positive size.
const DefaultPageSize = 5

// Service provides book-related business logic.
type Service struct {
	repo     Repository
	reviews  ReviewLister
	pageSize int
}

// NewService creates a new book service.
func NewService(repo Repository, reviews ReviewLister, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{repo: repo, reviews: reviews, pageSize: pageSize}
}

// PageSize is the fixed number of books per page.
func (s *Service) PageSize() int {
	return s.pageSize
}

type ListInput struct {
	Search string `json:"search" validate:"max=200"`
	Genre  string `json:"genre" validate:"max=100"`
	SortBy string `json:"sortBy" validate:"omitempty,oneof=year rating"`
	Page   int    `json:"page" validate:"min=1"`
}

// List returns one page of books matching the filters.
func (s *Service) List(ctx context.Context, in ListInput) (Page, error) {
	in.Search = strings.TrimSpace(in.Search)
	in.Genre = strings.TrimSpace(in.Genre)
	if err := validate.Struct(in); err != nil {
		return Page{}, err
	}

	items, total, err := s.repo.List(ctx, Query{
		Search: in.Search,
		Genre:  in.Genre,
		Sort:   in.SortBy,
		Limit:  s.pageSize,
		Offset: s.offset(in.Page),
	})
	if err != nil {
		return Page{}, apperr.Internal(fmt.Errorf("list books: %w", err))
	}
	if items == nil {
		items = []Book{}
	}

	return Page{
		Items: items,
		Total: total,
		Page:  in.Page,
		Pages: (total + s.pageSize - 1) / s.pageSize,
	}, nil
}

// offset is the row offset of page. Pages too far out to address clamp to
// an offset no store can reach, which still yields an empty page with totals.
func (s *Service) offset(page int) int {
	if page-1 > (math.MaxInt-s.pageSize)/s.pageSize {
		return math.MaxInt - s.pageSize
	}
	return (page - 1) * s.pageSize
}

// GetByID returns the book with its reviews and a freshly computed average.
func (s *Service) GetByID(ctx context.Context, id string) (Detail, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, apperr.Internal(err)
	}

	reviews, err := s.reviews.ListByBook(ctx, b.ID)
	if err != nil {
		return Detail{}, apperr.Internal(fmt.Errorf("list reviews: %w", err))
	}

	ratings := make([]int, len(reviews))
	for i, rv := range reviews {
		ratings[i] = rv.Rating
	}
	b.AverageRating = rating.Average(ratings)

	return Detail{Book: b, Reviews: reviews}, nil
}

type CreateInput struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Author      string `json:"author" validate:"notblank,max=200"`
	Description string `json:"description" validate:"notblank,max=5000"`
	Genre       string `json:"genre" validate:"notblank,max=100"`
	Year        *int   `json:"year" validate:"required,min=0,max=9999"`
}

// Create adds a book owned by requesterID.
func (s *Service) Create(ctx context.Context, requesterID string, in CreateInput) (Book, error) {
	if err := access.RequireUser(requesterID); err != nil {
		return Book{}, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Genre = strings.TrimSpace(in.Genre)
	if err := validate.Struct(in); err != nil {
		return Book{}, err
	}

	b := &Book{
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Genre:       in.Genre,
		Year:        *in.Year,
		AddedBy:     requesterID,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Book{}, apperr.Internal(fmt.Errorf("create book: %w", err))
	}
	return *b, nil
}

type UpdateInput struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	Author      *string `json:"author" validate:"omitnil,notblank,max=200"`
	Description *string `json:"description" validate:"omitnil,notblank,max=5000"`
	Genre       *string `json:"genre" validate:"omitnil,notblank,max=100"`
	Year        *int    `json:"year" validate:"omitnil,min=0,max=9999"`
}

func (in UpdateInput) changes() Changes {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	return Changes{
		Title:       trim(in.Title),
		Author:      trim(in.Author),
		Description: in.Description,
		Genre:       trim(in.Genre),
		Year:        in.Year,
	}
}

// Update applies the fields present in in. Only the owner may update.
func (s *Service) Update(ctx context.Context, requesterID, id string, in UpdateInput) (Book, error) {
	if err := access.RequireUser(requesterID); err != nil {
		return Book{}, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Book{}, apperr.Internal(err)
	}
	if err := access.Authorize(requesterID, b); err != nil {
		return Book{}, err
	}
	if err := validate.Struct(in); err != nil {
		return Book{}, err
	}

	b.apply(in.changes())
	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, apperr.Internal(err)
	}
	return b, nil
}

// Delete removes the book and its reviews. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, requesterID, id string) error {
	if err := access.RequireUser(requesterID); err != nil {
		return err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := access.Authorize(requesterID, b); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, b.ID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Exists reports whether a book with id is in the catalog.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, apperr.Internal(fmt.Errorf("lookup book: %w", err))
	}
	return ok, nil
}
