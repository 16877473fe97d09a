package rankdb

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see
// package metrics/prometheus for a Prometheus implementation.
type MetricsCollector interface {
	// RecordRead is called after every read from a backing store.
	// columns is the number of data columns read, rows the number of features.
	RecordRead(database string, columns, rows int, duration time.Duration, err error)

	// RecordResidentLoad is called once when a memory-resident database
	// materializes its table. bytes is the size of the retained table.
	RecordResidentLoad(database string, bytes int64, duration time.Duration, err error)

	// RecordResidentRelease is called when a memory-resident database is
	// closed and drops the bytes reported by RecordResidentLoad.
	RecordResidentRelease(database string, bytes int64)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRead(string, int, int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordResidentLoad(string, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordResidentRelease(string, int64)                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReadCount          atomic.Int64
	ReadErrors         atomic.Int64
	ReadColumns        atomic.Int64
	ReadTotalNanos     atomic.Int64
	ResidentLoadCount  atomic.Int64
	ResidentLoadErrors atomic.Int64
	ResidentBytes      atomic.Int64
	ResidentReleases   atomic.Int64
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(_ string, columns, _ int, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
		return
	}
	b.ReadColumns.Add(int64(columns))
}

// RecordResidentLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResidentLoad(_ string, bytes int64, _ time.Duration, err error) {
	b.ResidentLoadCount.Add(1)
	if err != nil {
		b.ResidentLoadErrors.Add(1)
		return
	}
	b.ResidentBytes.Add(bytes)
}

// RecordResidentRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResidentRelease(_ string, bytes int64) {
	b.ResidentReleases.Add(1)
	b.ResidentBytes.Add(-bytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ReadCount:          b.ReadCount.Load(),
		ReadErrors:         b.ReadErrors.Load(),
		ReadColumns:        b.ReadColumns.Load(),
		ReadAvgNanos:       b.getAvgReadNanos(),
		ResidentLoadCount:  b.ResidentLoadCount.Load(),
		ResidentLoadErrors: b.ResidentLoadErrors.Load(),
		ResidentBytes:      b.ResidentBytes.Load(),
		ResidentReleases:   b.ResidentReleases.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgReadNanos() int64 {
	count := b.ReadCount.Load()
	if count == 0 {
		return 0
	}
	return b.ReadTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ReadCount          int64
	ReadErrors         int64
	ReadColumns        int64
	ReadAvgNanos       int64
	ResidentLoadCount  int64
	ResidentLoadErrors int64
	ResidentBytes      int64
	ResidentReleases   int64
}
