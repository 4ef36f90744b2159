package kbest

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting query metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    queryCounter prometheus.Counter
//	    tieCounter   prometheus.Counter
//	}
//
//	func (p *PrometheusCollector) RecordQuery(k int, stats kbest.Stats, duration time.Duration) {
//	    p.queryCounter.Inc()
//	    p.tieCounter.Add(float64(stats.Ties))
//	    // ... record duration, rejection ratio, etc.
//	}
type MetricsCollector interface {
	// RecordQuery is called once per finished query. k is the requested
	// neighbor count, stats the candidate accounting for the query and
	// duration the time from Searcher construction (or Reset) to Finish.
	RecordQuery(k int, stats Stats, duration time.Duration)
}

// Compile time checks to ensure the collectors satisfy MetricsCollector.
var (
	_ MetricsCollector = NoopMetricsCollector{}
	_ MetricsCollector = (*BasicMetricsCollector)(nil)
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuery(int, Stats, time.Duration) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	QueryCount      atomic.Int64
	QueryTotalNanos atomic.Int64
	Offered         atomic.Int64
	Admitted        atomic.Int64
	Ties            atomic.Int64
	Rejected        atomic.Int64
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(k int, stats Stats, duration time.Duration) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	b.Offered.Add(int64(stats.Offered))
	b.Admitted.Add(int64(stats.Admitted))
	b.Ties.Add(int64(stats.Ties))
	b.Rejected.Add(int64(stats.Rejected))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		QueryCount:    b.QueryCount.Load(),
		QueryAvgNanos: b.getAvgQueryNanos(),
		Offered:       b.Offered.Load(),
		Admitted:      b.Admitted.Load(),
		Ties:          b.Ties.Load(),
		Rejected:      b.Rejected.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.QueryTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	QueryCount    int64
	QueryAvgNanos int64
	Offered       int64
	Admitted      int64
	Ties          int64
	Rejected      int64
}
