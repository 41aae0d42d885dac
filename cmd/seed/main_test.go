package main

import (
	"context"
	"math/rand"
	"testing"

	"bookreview/internal/book"
	"bookreview/internal/memstore"
	"bookreview/internal/platform/logger"
	"bookreview/internal/rating"
	"bookreview/internal/review"
	"bookreview/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemorySeeder(store *memstore.Store) *seeder {
	log := logger.Discard()
	reviews := review.NewService(store.Reviews(), store.Books(), rating.NewAggregator(store.Reviews(), store.Books(), log), log)
	return &seeder{
		users:   user.NewService(store.Users()),
		books:   book.NewService(store.Books(), reviews, 5),
		reviews: reviews,
		log:     log,
		rnd:     rand.New(rand.NewSource(1)),
	}
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	s := newMemorySeeder(store)

	require.NoError(t, s.run(ctx, 3, 12))
	require.NoError(t, s.run(ctx, 3, 1), "existing demo users are reused")

	page, err := s.books.List(ctx, book.ListInput{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, 13, page.Total)

	for _, b := range page.Items {
		detail, err := s.books.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, detail.AverageRating, b.AverageRating, "cached average matches reviews")
		for _, rv := range detail.Reviews {
			assert.NotEqual(t, b.AddedBy, rv.UserID, "owners do not review their own books")
		}
	}
}

func TestSeeder_RequiresUsers(t *testing.T) {
	s := newMemorySeeder(memstore.New())
	assert.Error(t, s.run(context.Background(), 0, 1))
}
