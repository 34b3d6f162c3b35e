package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/geo"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/inventory"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/logger"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/metrics"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/model"
)

// Matcher applies a preference profile and optional geo constraints to the
// inventory. It holds no mutable state; concurrent searches are safe.
type Matcher struct {
	inv  inventory.Inventory
	cfg  Config
	sink metrics.MetricsSink
	log  logger.Logger
}

// NewMatcher creates a Matcher. A nil sink disables metrics recording.
func NewMatcher(inv inventory.Inventory, cfg Config, sink metrics.MetricsSink, log logger.Logger) (*Matcher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("matcher config: %w", err)
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Matcher{inv: inv, cfg: cfg, sink: sink, log: log}, nil
}

// Search runs one matching pass. With the no-history sentinel the full
// inventory is returned (cold-start fallback); with a profile the inventory
// is filtered on price band, snapped seat count and favorite category. In
// both modes a supplied location triggers distance annotation, ascending
// sort and the inclusive max-distance cutoff.
func (m *Matcher) Search(ctx context.Context, profile Profile, req model.SearchRequest) (model.SearchResult, error) {
	start := time.Now()
	vehicles, err := m.inv.ListVehicles(ctx)
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("list vehicles: %w", err)
	}

	var kept []model.Vehicle
	if !profile.HasHistory {
		kept = vehicles
	} else {
		kept = m.filter(vehicles, profile, m.cfg.PriceHeadroom)
		if len(kept) == 0 && m.cfg.FallbackWidening.Enabled {
			kept = m.widen(vehicles, profile)
		}
	}

	matches := make([]model.Match, 0, len(kept))
	for _, v := range kept {
		matches = append(matches, model.Match{Vehicle: v})
	}
	if req.HasLocation() {
		matches = m.rankByDistance(matches, req)
	}

	res := model.SearchResult{Matches: matches, Profiled: profile.HasHistory}
	if rec, ok := m.sink.(metrics.InventorySizeRecorder); ok {
		if err := rec.RecordInventorySize(len(vehicles)); err != nil {
			m.log.Warnf("record inventory size: %v", err)
		}
	}
	if err := m.sink.RecordSearch(metrics.SearchEvent{
		RequesterID: req.RequesterID,
		Profiled:    profile.HasHistory,
		Located:     req.HasLocation(),
		Inventory:   len(vehicles),
		Results:     len(matches),
		Duration:    time.Since(start),
		Time:        start,
	}); err != nil {
		m.log.Warnf("record search event: %v", err)
	}
	return res, nil
}

// filter keeps vehicles inside the price band with the snapped seat count
// and the favorite category. Category equality is case-sensitive.
func (m *Matcher) filter(vehicles []model.Vehicle, p Profile, headroom float64) []model.Vehicle {
	maxPrice := p.AveragePrice * headroom
	wantSeats := ClosestSeatCount(p.AverageSeats, m.cfg.SeatCatalog)
	var res []model.Vehicle
	for _, v := range vehicles {
		if v.Price > maxPrice {
			continue
		}
		if v.Seats != wantSeats {
			continue
		}
		if v.Category != p.FavoriteCategory {
			continue
		}
		res = append(res, v)
	}
	return res
}

// widen retries the filter with a progressively larger price band. Seats and
// category stay strict; only the price tolerance relaxes.
func (m *Matcher) widen(vehicles []model.Vehicle, p Profile) []model.Vehicle {
	headroom := m.cfg.PriceHeadroom
	for round := 0; round < m.cfg.FallbackWidening.MaxRounds; round++ {
		headroom += m.cfg.FallbackWidening.Step
		if kept := m.filter(vehicles, p, headroom); len(kept) > 0 {
			m.log.Infof("empty result widened after %d round(s), headroom %.2f", round+1, headroom)
			return kept
		}
	}
	return nil
}

// rankByDistance annotates every match with the great-circle distance to the
// query point, sorts ascending and applies the inclusive cutoff. The sort is
// stable so equidistant vehicles keep their enumeration order.
func (m *Matcher) rankByDistance(matches []model.Match, req model.SearchRequest) []model.Match {
	origin := geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	for i := range matches {
		d := geo.DistanceKm(origin, geo.Point{
			Latitude:  matches[i].Vehicle.Latitude,
			Longitude: matches[i].Vehicle.Longitude,
		})
		matches[i].DistanceKm = &d
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return *matches[i].DistanceKm < *matches[j].DistanceKm
	})
	if req.MaxDistanceKm == nil {
		return matches
	}
	// Sorted ascending, so the cutoff is a prefix. The bound is inclusive.
	for i, mt := range matches {
		if *mt.DistanceKm > *req.MaxDistanceKm {
			return matches[:i]
		}
	}
	return matches
}
