// Package rating keeps a book's cached average rating in step with its
// reviews.
package rating

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Average returns the mean of ratings rounded half-up to two decimal places,
// or 0 for an empty set. Rounding is done on integers so that values such
// as 1.125 round to 1.13 exactly.
func Average(ratings []int) float64 {
	n := len(ratings)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	// floor(100*sum/n + 1/2); ratings are positive so integer division floors.
	hundredths := (200*sum + n) / (2 * n)
	return float64(hundredths) / 100
}

// Source lists the ratings of a book's current reviews.
type Source interface {
	RatingsForBook(ctx context.Context, bookID string) ([]int, error)
}

// Sink stores a book's cached average. Writing to a book that no longer
// exists must succeed without effect.
type Sink interface {
	SetAverageRating(ctx context.Context, bookID string, average float64) error
}

// Aggregator recomputes cached averages from the full review set, so
// concurrent recomputations for one book converge on the same value.
type Aggregator struct {
	source Source
	sink   Sink
	log    logrus.FieldLogger
}

func NewAggregator(source Source, sink Sink, log logrus.FieldLogger) *Aggregator {
	return &Aggregator{source: source, sink: sink, log: log}
}

// Recompute reads every rating of bookID, stores the rounded mean and
// returns it.
func (a *Aggregator) Recompute(ctx context.Context, bookID string) (float64, error) {
	ratings, err := a.source.RatingsForBook(ctx, bookID)
	if err != nil {
		return 0, fmt.Errorf("load ratings for book %s: %w", bookID, err)
	}
	avg := Average(ratings)
	if err := a.sink.SetAverageRating(ctx, bookID, avg); err != nil {
		return 0, fmt.Errorf("store average for book %s: %w", bookID, err)
	}
	a.log.WithFields(logrus.Fields{
		"book_id": bookID,
		"reviews": len(ratings),
		"average": avg,
	}).Debug("average rating recomputed")
	return avg, nil
}
