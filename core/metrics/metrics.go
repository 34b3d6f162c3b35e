// Package metrics defines the observability contracts of the search service.
// Sinks live in infra/metrics.
package metrics

import "time"

// SearchEvent captures one completed search call.
type SearchEvent struct {
	RequesterID string
	Profiled    bool
	Located     bool
	Inventory   int
	Results     int
	Duration    time.Duration
	Time        time.Time
}

// MetricsSink records search events for observability purposes.
type MetricsSink interface {
	RecordSearch(ev SearchEvent) error
}

// InventorySizeRecorder records the size of the inventory snapshot. It is
// implemented by sinks that expose a gauge.
type InventorySizeRecorder interface {
	RecordInventorySize(size int) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSearch(SearchEvent) error { return nil }
func (NopSink) RecordInventorySize(int) error  { return nil }
