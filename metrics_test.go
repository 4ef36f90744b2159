package kbest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	var mc BasicMetricsCollector

	mc.RecordQuery(10, Stats{Offered: 100, Admitted: 12, Ties: 3, Rejected: 85}, 100*time.Microsecond)
	mc.RecordQuery(10, Stats{Offered: 50, Admitted: 10, Ties: 0, Rejected: 40}, 300*time.Microsecond)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.QueryCount)
	assert.Equal(t, int64(150), stats.Offered)
	assert.Equal(t, int64(22), stats.Admitted)
	assert.Equal(t, int64(3), stats.Ties)
	assert.Equal(t, int64(125), stats.Rejected)
	assert.Equal(t, (200 * time.Microsecond).Nanoseconds(), stats.QueryAvgNanos)
}

func TestBasicMetricsCollector_Empty(t *testing.T) {
	var mc BasicMetricsCollector

	stats := mc.GetStats()
	assert.Equal(t, int64(0), stats.QueryCount)
	assert.Equal(t, int64(0), stats.QueryAvgNanos)
}
