package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/metrics"
)

// PromSink records search events in Prometheus metrics.
type PromSink struct {
	searches  *prometheus.CounterVec
	results   *prometheus.HistogramVec
	duration  *prometheus.HistogramVec
	inventory prometheus.Gauge
}

// NewPromSink registers search metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "search_requests_total",
		Help: "Total number of search calls",
	}, []string{"profiled", "located"})
	results := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "search_result_size",
		Help:    "Number of vehicles returned per search",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"profiled"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "search_duration_seconds",
		Help:    "Time spent in the matching pipeline",
		Buckets: prometheus.DefBuckets,
	}, []string{"profiled"})
	inventory := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "inventory_vehicles_total",
		Help: "Number of vehicles in the current inventory snapshot",
	})

	if err := reg.Register(searches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			searches = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(results); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			results = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(inventory); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			inventory = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{searches: searches, results: results, duration: duration, inventory: inventory}, nil
}

// RecordSearch increments the search counter and observes size and duration.
func (s *PromSink) RecordSearch(ev coremetrics.SearchEvent) error {
	profiled := strconv.FormatBool(ev.Profiled)
	s.searches.WithLabelValues(profiled, strconv.FormatBool(ev.Located)).Inc()
	s.results.WithLabelValues(profiled).Observe(float64(ev.Results))
	s.duration.WithLabelValues(profiled).Observe(ev.Duration.Seconds())
	s.inventory.Set(float64(ev.Inventory))
	return nil
}

// RecordInventorySize sets the inventory gauge.
func (s *PromSink) RecordInventorySize(size int) error {
	if s.inventory != nil {
		s.inventory.Set(float64(size))
	}
	return nil
}
