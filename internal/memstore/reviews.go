package memstore

import (
	"cmp"
	"context"
	"slices"

	"bookreview/internal/review"
)

type reviewEntry struct {
	seq    int64
	review review.Review
}

// ReviewRepo implements review.Repository and rating.Source.
type ReviewRepo struct {
	s *Store
}

func (r *ReviewRepo) Create(ctx context.Context, rv *review.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.books[rv.BookID]; !ok {
		return review.ErrBookNotFound
	}
	for _, e := range r.s.reviews {
		if e.review.BookID == rv.BookID && e.review.UserID == rv.UserID {
			return review.ErrDuplicate
		}
	}

	id, seq := r.s.nextID()
	now := r.s.now()
	rv.ID = id
	rv.CreatedAt = now
	rv.UpdatedAt = now
	r.s.reviews[id] = &reviewEntry{seq: seq, review: *rv}
	return nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id string) (review.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.reviews[id]
	if !ok {
		return review.Review{}, review.ErrNotFound
	}
	return e.review, nil
}

func (r *ReviewRepo) Update(ctx context.Context, rv *review.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.reviews[rv.ID]
	if !ok {
		return review.ErrNotFound
	}
	e.review.Rating = rv.Rating
	e.review.Text = rv.Text
	e.review.UpdatedAt = r.s.now()
	*rv = e.review
	return nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.reviews[id]; !ok {
		return review.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

// ListByBook returns the reviews newest first with reviewer names.
func (r *ReviewRepo) ListByBook(ctx context.Context, bookID string) ([]review.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var hits []*reviewEntry
	for _, e := range r.s.reviews {
		if e.review.BookID == bookID {
			hits = append(hits, e)
		}
	}
	slices.SortFunc(hits, func(a, b *reviewEntry) int {
		return cmp.Compare(b.seq, a.seq)
	})

	out := make([]review.Review, 0, len(hits))
	for _, e := range hits {
		rv := e.review
		rv.ReviewerName = r.s.users[rv.UserID].Name
		out = append(out, rv)
	}
	return out, nil
}

func (r *ReviewRepo) RatingsForBook(ctx context.Context, bookID string) ([]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ratings []int
	for _, e := range r.s.reviews {
		if e.review.BookID == bookID {
			ratings = append(ratings, e.review.Rating)
		}
	}
	return ratings, nil
}
