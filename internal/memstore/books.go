package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"bookreview/internal/book"
)

type bookEntry struct {
	seq  int64
	book book.Book
}

// BookRepo implements book.Repository.
type BookRepo struct {
	s *Store
}

func (r *BookRepo) Create(ctx context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, seq := r.s.nextID()
	now := r.s.now()
	b.ID = id
	b.AverageRating = 0
	b.CreatedAt = now
	b.UpdatedAt = now
	r.s.books[id] = &bookEntry{seq: seq, book: *b}
	return nil
}

func (r *BookRepo) GetByID(ctx context.Context, id string) (book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return e.book, nil
}

func matches(b book.Book, q book.Query) bool {
	if q.Genre != "" && b.Genre != q.Genre {
		return false
	}
	if q.Search == "" {
		return true
	}
	needle := strings.ToLower(q.Search)
	return strings.Contains(strings.ToLower(b.Title), needle) ||
		strings.Contains(strings.ToLower(b.Author), needle)
}

func compareBooks(sort string) func(a, b *bookEntry) int {
	return func(a, b *bookEntry) int {
		switch sort {
		case book.SortYear:
			if c := cmp.Compare(b.book.Year, a.book.Year); c != 0 {
				return c
			}
		case book.SortRating:
			if c := cmp.Compare(b.book.AverageRating, a.book.AverageRating); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.seq, b.seq)
	}
}

func (r *BookRepo) List(ctx context.Context, q book.Query) ([]book.Book, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var hits []*bookEntry
	for _, e := range r.s.books {
		if matches(e.book, q) {
			hits = append(hits, e)
		}
	}
	slices.SortFunc(hits, compareBooks(q.Sort))

	total := len(hits)
	out := []book.Book{}
	if q.Offset < 0 || q.Offset >= total {
		return out, total, nil
	}
	end := min(q.Offset+q.Limit, total)
	for _, e := range hits[q.Offset:end] {
		out = append(out, e.book)
	}
	return out, total, nil
}

func (r *BookRepo) Update(ctx context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.books[b.ID]
	if !ok {
		return book.ErrNotFound
	}
	e.book.Title = b.Title
	e.book.Author = b.Author
	e.book.Description = b.Description
	e.book.Genre = b.Genre
	e.book.Year = b.Year
	e.book.UpdatedAt = r.s.now()
	*b = e.book
	return nil
}

// Delete removes the book and its reviews under a single lock.
func (r *BookRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.books[id]; !ok {
		return book.ErrNotFound
	}
	for rid, rv := range r.s.reviews {
		if rv.review.BookID == id {
			delete(r.s.reviews, rid)
		}
	}
	delete(r.s.books, id)
	return nil
}

func (r *BookRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.books[id]
	return ok, nil
}

func (r *BookRepo) SetAverageRating(ctx context.Context, id string, average float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if e, ok := r.s.books[id]; ok {
		e.book.AverageRating = average
	}
	return nil
}
