package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	apisearch "github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/api/search"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/config"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/inventory"
	coremetrics "github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/metrics"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/model"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/search"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/infra/logger"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/infra/metrics"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/infra/mongo"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/infra/mqtt"
)

// Store is the combined read/write surface the service needs from a backend.
type Store interface {
	inventory.Inventory
	inventory.History
	mqtt.LocationStore
	InsertVehicle(ctx context.Context, v model.Vehicle) error
	InsertReservation(ctx context.Context, r model.Reservation) error
}

// Service wires the search core to its providers and boundary layers.
type Service struct {
	Analyzer *search.Analyzer
	Matcher  *search.Matcher

	cfg   *config.Config
	store Store
	feed  *mqtt.Feed
	mongo *mongo.Store
	log   logger.Logger
}

// New creates a Service from the configuration.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	var store Store
	var mongoStore *mongo.Store
	switch cfg.Storage.Backend {
	case "mongo":
		s, err := mongo.Connect(ctx, cfg.Storage.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo store: %w", err)
		}
		store, mongoStore = s, s
	default:
		store = inventory.NewMemoryStore()
	}

	sink, err := buildSink(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	matcher, err := search.NewMatcher(store, cfg.Search, sink, log)
	if err != nil {
		return nil, err
	}
	svc := &Service{
		Analyzer: search.NewAnalyzer(store, log),
		Matcher:  matcher,
		cfg:      cfg,
		store:    store,
		mongo:    mongoStore,
		log:      log,
	}

	if cfg.MQTT.Enabled {
		feed, err := mqtt.NewFeed(cfg.MQTT, store)
		if err != nil {
			return nil, fmt.Errorf("mqtt feed: %w", err)
		}
		svc.feed = feed
	}
	return svc, nil
}

func buildSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	var sinks []coremetrics.MetricsSink
	if cfg.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return metrics.NewMultiSink(sinks...), nil
	}
}

// Handler returns the HTTP mux of the service.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/car-search", apisearch.NewHandler(s.Analyzer, s.Matcher, s.log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			s.log.Errorf("healthz write: %v", err)
		}
	})
	return mux
}

// Run serves the search API until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.HTTP.Addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()
	s.log.Infof("search API listening on %s", s.cfg.HTTP.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.feed != nil {
		s.feed.Close()
	}
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.mongo.Close(ctx)
	}
	return nil
}

// Seed loads vehicles and reservations into the configured backend. IDs are
// generated when absent. Used by the seed command.
func (s *Service) Seed(ctx context.Context, vehicles []model.Vehicle, reservations []model.Reservation) error {
	for _, v := range vehicles {
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		if err := s.store.InsertVehicle(ctx, v); err != nil {
			return fmt.Errorf("insert vehicle %s: %w", v.ID, err)
		}
	}
	for _, r := range reservations {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if err := s.store.InsertReservation(ctx, r); err != nil {
			return fmt.Errorf("insert reservation %s: %w", r.ID, err)
		}
	}
	return nil
}
