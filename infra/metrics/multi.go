package metrics

import coremetrics "github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/metrics"

// MultiSink fans search events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSearch forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordSearch(ev coremetrics.SearchEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSearch(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordInventorySize forwards the size to sinks exposing a gauge.
func (m *MultiSink) RecordInventorySize(size int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.InventorySizeRecorder); ok {
			if err := rec.RecordInventorySize(size); err != nil {
				return err
			}
		}
	}
	return nil
}
