package rating

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAverage(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{name: "empty", ratings: nil, want: 0},
		{name: "single", ratings: []int{4}, want: 4},
		{name: "two", ratings: []int{4, 2}, want: 3},
		{name: "thirds round down", ratings: []int{1, 1, 2}, want: 1.33},
		{name: "thirds round up", ratings: []int{1, 2, 2}, want: 1.67},
		{name: "half-up at third decimal", ratings: []int{1, 1, 1, 1, 1, 1, 1, 2}, want: 1.13},
		{name: "all fives", ratings: []int{5, 5, 5, 5, 5}, want: 5},
		{name: "seven reviews", ratings: []int{5, 4, 4, 3, 5, 1, 2}, want: 3.43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Average(tt.ratings))
		})
	}
}

func TestAverage_MatchesRoundedMean(t *testing.T) {
	// Exhaustive over small review sets: every value must be the mean
	// rounded to two places.
	var sets [][]int
	var build func(prefix []int, depth int)
	build = func(prefix []int, depth int) {
		if depth == 0 {
			sets = append(sets, append([]int(nil), prefix...))
			return
		}
		for r := 1; r <= 5; r++ {
			build(append(prefix, r), depth-1)
		}
	}
	for n := 1; n <= 5; n++ {
		build(nil, n)
	}

	for _, set := range sets {
		sum := 0
		for _, r := range set {
			sum += r
		}
		mean := float64(sum) / float64(len(set))
		got := Average(set)
		assert.InDelta(t, mean, got, 0.005+1e-9, "set %v", set)
		assert.Equal(t, got, math.Round(got*100)/100, "set %v not at two places", set)
	}
}

type mockSource struct{ mock.Mock }

func (m *mockSource) RatingsForBook(ctx context.Context, bookID string) ([]int, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

type mockSink struct{ mock.Mock }

func (m *mockSink) SetAverageRating(ctx context.Context, bookID string, average float64) error {
	args := m.Called(ctx, bookID, average)
	return args.Error(0)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestAggregator_Recompute(t *testing.T) {
	ctx := context.Background()

	t.Run("stores rounded mean", func(t *testing.T) {
		src, sink := new(mockSource), new(mockSink)
		src.On("RatingsForBook", ctx, "b1").Return([]int{4, 2}, nil)
		sink.On("SetAverageRating", ctx, "b1", 3.0).Return(nil)

		avg, err := NewAggregator(src, sink, quietLogger()).Recompute(ctx, "b1")

		require.NoError(t, err)
		assert.Equal(t, 3.0, avg)
		sink.AssertExpectations(t)
	})

	t.Run("no reviews resets to zero", func(t *testing.T) {
		src, sink := new(mockSource), new(mockSink)
		src.On("RatingsForBook", ctx, "b1").Return([]int{}, nil)
		sink.On("SetAverageRating", ctx, "b1", 0.0).Return(nil)

		avg, err := NewAggregator(src, sink, quietLogger()).Recompute(ctx, "b1")

		require.NoError(t, err)
		assert.Zero(t, avg)
		sink.AssertExpectations(t)
	})

	t.Run("source failure skips write", func(t *testing.T) {
		src, sink := new(mockSource), new(mockSink)
		boom := errors.New("timeout")
		src.On("RatingsForBook", ctx, "b1").Return(nil, boom)

		_, err := NewAggregator(src, sink, quietLogger()).Recompute(ctx, "b1")

		assert.ErrorIs(t, err, boom)
		sink.AssertNotCalled(t, "SetAverageRating", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sink failure is returned", func(t *testing.T) {
		src, sink := new(mockSource), new(mockSink)
		boom := errors.New("write failed")
		src.On("RatingsForBook", ctx, "b1").Return([]int{5}, nil)
		sink.On("SetAverageRating", ctx, "b1", 5.0).Return(boom)

		_, err := NewAggregator(src, sink, quietLogger()).Recompute(ctx, "b1")

		assert.ErrorIs(t, err, boom)
	})
}
