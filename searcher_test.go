package kbest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSearcher_OfferStats(t *testing.T) {
	sr := NewSearcher(2, WithResultSetOptions(WithSeed(42)))

	sr.Offer(5.0, 1)  // admitted (set not full)
	sr.Offer(3.0, 2)  // admitted
	sr.Offer(10.0, 3) // rejected: worse than the bound of 5
	sr.Offer(5.0, 4)  // tied with the current worst
	sr.Offer(1.0, 5)  // admitted: displaces the tie group

	assert.Equal(t, Stats{Offered: 5, Admitted: 3, Ties: 1, Rejected: 1}, sr.Stats())
	assert.Equal(t, float32(3.0), sr.Bound())

	results := sr.Finish(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, Item{ID: 5, Distance: 1.0}, results[0])
	assert.Equal(t, Item{ID: 2, Distance: 3.0}, results[1])
}

func TestSearcher_FinishReportsMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	logger := NewLogger(slog.NewTextHandler(io.Discard, nil))

	sr := NewSearcher(2,
		WithMetricsCollector(metrics),
		WithLogger(logger),
		WithResultSetOptions(WithSeed(1)),
	)

	sr.Offer(2.0, 1)
	sr.Offer(4.0, 2)
	sr.Offer(9.0, 3)

	results := sr.Finish(context.Background())
	require.Len(t, results, 2)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.QueryCount)
	assert.Equal(t, int64(3), stats.Offered)
	assert.Equal(t, int64(2), stats.Admitted)
	assert.Equal(t, int64(1), stats.Rejected)
	assert.Equal(t, int64(0), stats.Ties)
	assert.GreaterOrEqual(t, stats.QueryAvgNanos, int64(0))
}

func TestSearcher_Reset(t *testing.T) {
	sr := NewSearcher(2, WithResultSetOptions(WithSeed(42)))

	sr.Offer(1.0, 1)
	sr.Offer(2.0, 2)
	require.Equal(t, 2, sr.ResultSet().Len())

	sr.Reset()

	assert.Equal(t, Stats{}, sr.Stats())
	assert.Equal(t, 0, sr.ResultSet().Len())
	assert.Equal(t, NullDistance, sr.Bound())

	sr.Offer(7.0, 3)
	sr.Offer(5.0, 4)
	results := sr.Finish(context.Background())
	require.Len(t, results, 2)
	assert.Equal(t, int32(4), results[0].ID)
}

// TestSearcher_ParallelInstances runs independent searchers concurrently,
// one per goroutine, as parallel subtree search would.
func TestSearcher_ParallelInstances(t *testing.T) {
	g := new(errgroup.Group)

	for w := 0; w < 8; w++ {
		w := w
		g.Go(func() error {
			sr := NewSearcher(3, WithResultSetOptions(WithSeed(int64(w))))
			for i := 0; i < 100; i++ {
				// Distinct distances per instance.
				sr.Offer(float32((i*37+w*11)%1000)+0.5, int32(i))
			}

			results := sr.Finish(context.Background())
			if len(results) != 3 {
				return fmt.Errorf("worker %d: got %d results, want 3", w, len(results))
			}
			for i := 1; i < len(results); i++ {
				if results[i-1].Distance > results[i].Distance {
					return fmt.Errorf("worker %d: results out of order", w)
				}
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}
