package memstore

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"bookreview/internal/book"
	"bookreview/internal/review"
	"bookreview/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addBook(t *testing.T, s *Store, title, author, genre string, year int) book.Book {
	t.Helper()
	b := &book.Book{Title: title, Author: author, Description: "-", Genre: genre, Year: year, AddedBy: "owner"}
	require.NoError(t, s.Books().Create(context.Background(), b))
	return *b
}

func TestCatalogPagination(t *testing.T) {
	ctx := context.Background()
	s := New()
	for i := 1; i <= 12; i++ {
		addBook(t, s, fmt.Sprintf("Book %02d", i), "Author", "Fiction", 2000+i)
	}
	svc := book.NewService(s.Books(), s.Reviews(), 5)

	tests := []struct {
		page  int
		items int
	}{
		{1, 5},
		{2, 5},
		{3, 2},
		{4, 0},
		{2_000_000_000_000_000_001, 0},
		{math.MaxInt, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			p, err := svc.List(ctx, book.ListInput{Page: tt.page})
			require.NoError(t, err)
			assert.Len(t, p.Items, tt.items)
			assert.Equal(t, 12, p.Total)
			assert.Equal(t, 3, p.Pages)
		})
	}

	p, err := svc.List(ctx, book.ListInput{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "Book 01", p.Items[0].Title, "natural order is insertion order")

	items, total, err := s.Books().List(ctx, book.Query{Limit: 5, Offset: -5})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 12, total)
}

func TestBookRepo_ListFilters(t *testing.T) {
	ctx := context.Background()
	s := New()
	addBook(t, s, "The Hobbit", "J.R.R. Tolkien", "Fantasy", 1937)
	addBook(t, s, "Dune", "Frank Herbert", "Sci-Fi", 1965)
	addBook(t, s, "Silmarillion", "J.R.R. Tolkien", "Fantasy", 1977)
	addBook(t, s, "100% Coverage", "Someone", "Tech", 2020)
	repo := s.Books()

	titles := func(bs []book.Book) []string {
		out := make([]string, len(bs))
		for i, b := range bs {
			out[i] = b.Title
		}
		return out
	}

	got, total, err := repo.List(ctx, book.Query{Search: "tolkien", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"The Hobbit", "Silmarillion"}, titles(got))

	got, _, err = repo.List(ctx, book.Query{Search: "HOBB", Genre: "Fantasy", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"The Hobbit"}, titles(got))

	got, _, err = repo.List(ctx, book.Query{Genre: "fantasy", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, got, "genre is an exact match")

	got, _, err = repo.List(ctx, book.Query{Search: "%", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Coverage"}, titles(got), "search is literal")

	got, _, err = repo.List(ctx, book.Query{Sort: book.SortYear, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Coverage", "Silmarillion", "Dune", "The Hobbit"}, titles(got))
}

func TestBookRepo_SortByRatingTiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := addBook(t, s, "A", "x", "g", 1)
	b := addBook(t, s, "B", "x", "g", 1)
	c := addBook(t, s, "C", "x", "g", 1)
	repo := s.Books()
	require.NoError(t, repo.SetAverageRating(ctx, a.ID, 3))
	require.NoError(t, repo.SetAverageRating(ctx, b.ID, 4.5))
	require.NoError(t, repo.SetAverageRating(ctx, c.ID, 3))

	got, _, err := repo.List(ctx, book.Query{Sort: book.SortRating, Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"B", "A", "C"}, []string{got[0].Title, got[1].Title, got[2].Title})
}

func TestBookRepo_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := New()
	b := addBook(t, s, "Dune", "Frank Herbert", "Sci-Fi", 1965)
	other := addBook(t, s, "Emma", "Jane Austen", "Classic", 1815)

	rv := &review.Review{BookID: b.ID, UserID: "u2", Rating: 4, Text: "ok"}
	require.NoError(t, s.Reviews().Create(ctx, rv))
	keep := &review.Review{BookID: other.ID, UserID: "u2", Rating: 5, Text: "ok"}
	require.NoError(t, s.Reviews().Create(ctx, keep))

	require.NoError(t, s.Books().Delete(ctx, b.ID))

	_, err := s.Books().GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, book.ErrNotFound)
	_, err = s.Reviews().GetByID(ctx, rv.ID)
	assert.ErrorIs(t, err, review.ErrNotFound)
	_, err = s.Reviews().GetByID(ctx, keep.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Books().Delete(ctx, b.ID), book.ErrNotFound)
}

func TestReviewRepo(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := &user.User{Name: "Ann", Email: "ann@example.com", PasswordHash: "x"}
	require.NoError(t, s.Users().Create(ctx, u))
	b := addBook(t, s, "Dune", "Frank Herbert", "Sci-Fi", 1965)
	repo := s.Reviews()

	first := &review.Review{BookID: b.ID, UserID: u.ID, Rating: 4, Text: "good"}
	require.NoError(t, repo.Create(ctx, first))

	t.Run("one review per user and book", func(t *testing.T) {
		err := repo.Create(ctx, &review.Review{BookID: b.ID, UserID: u.ID, Rating: 1, Text: "again"})
		assert.ErrorIs(t, err, review.ErrDuplicate)
	})

	t.Run("unknown book", func(t *testing.T) {
		err := repo.Create(ctx, &review.Review{BookID: "missing", UserID: u.ID, Rating: 1, Text: "x"})
		assert.ErrorIs(t, err, review.ErrBookNotFound)
	})

	t.Run("newest first with reviewer name", func(t *testing.T) {
		second := &review.Review{BookID: b.ID, UserID: "u3", Rating: 2, Text: "meh"}
		require.NoError(t, repo.Create(ctx, second))

		got, err := repo.ListByBook(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, "Ann", got[1].ReviewerName)

		ratings, err := repo.RatingsForBook(ctx, b.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{4, 2}, ratings)
	})
}

func TestUserRepo_EmailTaken(t *testing.T) {
	ctx := context.Background()
	repo := New().Users()
	require.NoError(t, repo.Create(ctx, &user.User{Name: "A", Email: "a@example.com"}))

	err := repo.Create(ctx, &user.User{Name: "B", Email: "a@example.com"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestRevocationRepo(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	repo := s.Revocations()

	require.NoError(t, repo.Revoke(ctx, "jti-1", "u1", now.Add(time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "jti-old", "u1", now.Add(-time.Minute)))

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
