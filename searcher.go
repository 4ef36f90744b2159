package kbest

import (
	"context"
	"time"
)

// Stats holds per-query candidate accounting, reset with the Searcher.
type Stats struct {
	// Offered is the total number of candidates the traversal presented.
	Offered int
	// Admitted counts candidates that improved on the admitted set.
	Admitted int
	// Ties counts candidates that joined the tie bucket.
	Ties int
	// Rejected counts candidates discarded as strictly worse.
	Rejected int
}

// Searcher is a reusable execution context for one k-NN query. It owns the
// ResultSet and all per-query accounting, so the traversal collaborator only
// has to Offer candidates, consult Bound between subtree visits, and Finish.
//
// Searcher is NOT thread-safe. It is intended to be owned by a single
// goroutine during a query; parallel branches need their own Searcher (or
// ResultSet) each.
type Searcher struct {
	results *ResultSet
	stats   Stats
	logger  *Logger
	metrics MetricsCollector
	start   time.Time
}

type searcherOptions struct {
	logger     *Logger
	metrics    MetricsCollector
	resultOpts []Option
}

// SearcherOption configures a Searcher.
type SearcherOption func(*searcherOptions)

// WithLogger configures structured logging for query completion.
// Pass nil to disable logging.
func WithLogger(logger *Logger) SearcherOption {
	return func(o *searcherOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsCollector configures a metrics collector notified on Finish.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) SearcherOption {
	return func(o *searcherOptions) {
		if mc != nil {
			o.metrics = mc
		}
	}
}

// WithResultSetOptions forwards options to the owned ResultSet.
func WithResultSetOptions(optFns ...Option) SearcherOption {
	return func(o *searcherOptions) {
		o.resultOpts = append(o.resultOpts, optFns...)
	}
}

// NewSearcher creates a Searcher for queries retaining the k smallest
// candidates. k must be >= 1 (caller contract, as in New).
func NewSearcher(k int, optFns ...SearcherOption) *Searcher {
	o := searcherOptions{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	return &Searcher{
		results: New(k, o.resultOpts...),
		logger:  o.logger,
		metrics: o.metrics,
		start:   time.Now(),
	}
}

// Offer presents a candidate to the result set and records its outcome.
func (sr *Searcher) Offer(distance float32, id int32) {
	sr.stats.Offered++

	switch worst := sr.results.items[sr.results.k-1].Distance; {
	case sr.results.nearlyEqual(worst, distance):
		sr.stats.Ties++
	case distance > worst:
		sr.stats.Rejected++
	default:
		sr.stats.Admitted++
	}

	sr.results.Insert(distance, id)
}

// Bound returns the current pruning radius (see ResultSet.MaxDistance).
func (sr *Searcher) Bound() float32 { return sr.results.MaxDistance() }

// ResultSet exposes the owned result set for direct reads.
func (sr *Searcher) ResultSet() *ResultSet { return sr.results }

// Stats returns a snapshot of the per-query counters.
func (sr *Searcher) Stats() Stats { return sr.stats }

// Finish performs the final read-out pass and reports the query through the
// configured logger and metrics collector. Call it once per query, after the
// traversal has offered its last candidate.
func (sr *Searcher) Finish(ctx context.Context) []Item {
	results := sr.results.Results()

	duration := time.Since(sr.start)
	sr.logger.LogQuery(ctx, sr.results.K(), len(results), sr.stats)
	sr.metrics.RecordQuery(sr.results.K(), sr.stats, duration)

	return results
}

// Reset clears the searcher for the next query without freeing memory.
func (sr *Searcher) Reset() {
	sr.results.Reset()
	sr.stats = Stats{}
	sr.start = time.Now()
}
