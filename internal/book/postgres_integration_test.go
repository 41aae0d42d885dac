package book

import (
	"context"
	"testing"
	"time"

	"bookreview/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPGRepo(t *testing.T) (*PostgresRepo, string) {
	db := testutil.Postgres(t)
	return NewPostgresRepo(db, 5*time.Second), testutil.CreateUser(t, db, "Owner")
}

func TestPostgresRepo_CreateGetUpdate(t *testing.T) {
	repo, owner := newPGRepo(t)
	ctx := context.Background()

	b := &Book{Title: "Dune", Author: "Frank Herbert", Description: "Spice", Genre: "SF", Year: 1965, AddedBy: owner}
	require.NoError(t, repo.Create(ctx, b))
	require.NotEmpty(t, b.ID)
	assert.Zero(t, b.AverageRating)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, owner, got.AddedBy)

	got.Title = "Dune Messiah"
	require.NoError(t, repo.Update(ctx, &got))
	again, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", again.Title)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepo_ListFiltersAndSorts(t *testing.T) {
	repo, owner := newPGRepo(t)
	ctx := context.Background()
	genre := testutil.UniqueLabel("genre")

	for _, b := range []Book{
		{Title: "100% Pure", Author: "A", Year: 1990},
		{Title: "Plain", Author: "B", Year: 2010},
		{Title: "Other", Author: "100 Authors", Year: 2000},
	} {
		b.Description, b.Genre, b.AddedBy = "d", genre, owner
		require.NoError(t, repo.Create(ctx, &b))
	}

	items, total, err := repo.List(ctx, Query{Genre: genre, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"100% Pure", "Plain", "Other"}, titles(items))

	items, total, err = repo.List(ctx, Query{Genre: genre, Search: "100%", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"100% Pure"}, titles(items))

	items, _, err = repo.List(ctx, Query{Genre: genre, Sort: SortYear, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Plain", "Other"}, titles(items))

	items, total, err = repo.List(ctx, Query{Genre: genre, Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"Other"}, titles(items))
}

func TestPostgresRepo_DeleteRemovesReviews(t *testing.T) {
	db := testutil.Postgres(t)
	repo := NewPostgresRepo(db, 5*time.Second)
	owner := testutil.CreateUser(t, db, "Owner")
	reader := testutil.CreateUser(t, db, "Reader")
	ctx := context.Background()

	b := &Book{Title: "T", Author: "A", Description: "D", Genre: "G", Year: 2000, AddedBy: owner}
	require.NoError(t, repo.Create(ctx, b))
	_, err := db.Exec(ctx,
		`INSERT INTO reviews (book_id, user_id, rating, review_text) VALUES ($1, $2, 4, 'ok')`, b.ID, reader)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, b.ID))

	var left int
	require.NoError(t, db.QueryRow(ctx, `SELECT count(*) FROM reviews WHERE book_id = $1`, b.ID).Scan(&left))
	assert.Zero(t, left)

	exists, err := repo.Exists(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), ErrNotFound)
}

func TestPostgresRepo_SetAverageRating(t *testing.T) {
	repo, owner := newPGRepo(t)
	ctx := context.Background()

	b := &Book{Title: "T", Author: "A", Description: "D", Genre: "G", Year: 2000, AddedBy: owner}
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.SetAverageRating(ctx, b.ID, 3.67))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.67, got.AverageRating, 0.001)

	assert.NoError(t, repo.SetAverageRating(ctx, "0b6f1c5e-3f0e-4d8e-9a57-0a8c2d4f1e21", 1))
}

func titles(items []Book) []string {
	out := make([]string, 0, len(items))
	for _, b := range items {
		out = append(out, b.Title)
	}
	return out
}
