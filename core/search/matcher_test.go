package search

import (
	"context"
	"errors"
	"testing"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/geo"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/inventory"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/model"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/infra/logger"
)

type failingInventory struct{ err error }

func (f failingInventory) ListVehicles(context.Context) ([]model.Vehicle, error) {
	return nil, f.err
}

func seedInventory(t *testing.T, vehicles ...model.Vehicle) *inventory.MemoryStore {
	t.Helper()
	store := inventory.NewMemoryStore()
	for _, v := range vehicles {
		if err := store.InsertVehicle(context.Background(), v); err != nil {
			t.Fatalf("seed vehicle: %v", err)
		}
	}
	return store
}

func newMatcher(t *testing.T, inv inventory.Inventory, cfg Config) *Matcher {
	t.Helper()
	m, err := NewMatcher(inv, cfg, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("new matcher: %v", err)
	}
	return m
}

func profiled(avgPrice, avgSeats float64, category string) Profile {
	return Profile{AveragePrice: avgPrice, AverageSeats: avgSeats, FavoriteCategory: category, HasHistory: true}
}

func TestSearch_NoHistoryReturnsFullInventory(t *testing.T) {
	store := seedInventory(t,
		model.Vehicle{ID: "a", Category: "sedan", Price: 50, Seats: 4},
		model.Vehicle{ID: "b", Category: "van", Price: 90, Seats: 6},
		model.Vehicle{ID: "c", Category: "coupe", Price: 120, Seats: 2},
	)
	m := newMatcher(t, store, Config{})

	res, err := m.Search(context.Background(), NoHistory(), model.SearchRequest{RequesterID: "new"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Profiled {
		t.Fatalf("no-history result must not be profiled")
	}
	if len(res.Matches) != 3 {
		t.Fatalf("cold start must see the whole catalog, got %d", len(res.Matches))
	}
	for i, want := range []string{"a", "b", "c"} {
		if res.Matches[i].Vehicle.ID != want {
			t.Errorf("position %d: got %s, want %s (enumeration order)", i, res.Matches[i].Vehicle.ID, want)
		}
		if res.Matches[i].DistanceKm != nil {
			t.Errorf("no location supplied, distance must be absent")
		}
	}
}

func TestSearch_ProfiledFilter(t *testing.T) {
	store := seedInventory(t,
		model.Vehicle{ID: "cheap", Category: "sedan", Price: 60, Seats: 4},
		model.Vehicle{ID: "limit", Category: "sedan", Price: 72, Seats: 4},
		model.Vehicle{ID: "pricey", Category: "sedan", Price: 72.01, Seats: 4},
		model.Vehicle{ID: "wrong-seats", Category: "sedan", Price: 60, Seats: 6},
		model.Vehicle{ID: "wrong-cat", Category: "van", Price: 60, Seats: 4},
		model.Vehicle{ID: "case", Category: "Sedan", Price: 60, Seats: 4},
	)
	m := newMatcher(t, store, Config{})

	// averagePrice 60 with 1.2 headroom admits sedans priced <= 72 with 4 seats.
	res, err := m.Search(context.Background(), profiled(60, 4, "sedan"), model.SearchRequest{RequesterID: "u1"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !res.Profiled {
		t.Fatalf("expected profiled result")
	}
	if len(res.Matches) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(res.Matches), res.Matches)
	}
	if res.Matches[0].Vehicle.ID != "cheap" || res.Matches[1].Vehicle.ID != "limit" {
		t.Fatalf("unexpected matches: %+v", res.Matches)
	}
}

func TestSearch_ProfiledMatchesBruteForce(t *testing.T) {
	vehicles := []model.Vehicle{
		{ID: "1", Category: "sedan", Price: 45, Seats: 4},
		{ID: "2", Category: "sedan", Price: 55, Seats: 2},
		{ID: "3", Category: "van", Price: 50, Seats: 6},
		{ID: "4", Category: "sedan", Price: 71.9, Seats: 4},
		{ID: "5", Category: "sedan", Price: 80, Seats: 4},
		{ID: "6", Category: "coupe", Price: 20, Seats: 2},
		{ID: "7", Category: "sedan", Price: 60, Seats: 4},
	}
	store := seedInventory(t, vehicles...)
	cfg := Config{}
	cfg.SetDefaults()
	m := newMatcher(t, store, cfg)

	p := profiled(60, 3.7, "sedan")
	res, err := m.Search(context.Background(), p, model.SearchRequest{RequesterID: "u1"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	wantSeats := ClosestSeatCount(p.AverageSeats, cfg.SeatCatalog)
	want := map[string]bool{}
	for _, v := range vehicles {
		if v.Price <= p.AveragePrice*cfg.PriceHeadroom && v.Seats == wantSeats && v.Category == p.FavoriteCategory {
			want[v.ID] = true
		}
	}
	if len(res.Matches) != len(want) {
		t.Fatalf("got %d matches, want %d", len(res.Matches), len(want))
	}
	for _, mt := range res.Matches {
		if !want[mt.Vehicle.ID] {
			t.Errorf("false positive %s", mt.Vehicle.ID)
		}
	}
}

func TestSearch_EmptyResultIsValid(t *testing.T) {
	store := seedInventory(t,
		model.Vehicle{ID: "a", Category: "van", Price: 200, Seats: 6},
	)
	m := newMatcher(t, store, Config{})
	res, err := m.Search(context.Background(), profiled(50, 4, "sedan"), model.SearchRequest{RequesterID: "u1"})
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if len(res.Matches) != 0 {
		t.Fatalf("expected no matches, got %+v", res.Matches)
	}
}

func TestSearch_FallbackWidening(t *testing.T) {
	store := seedInventory(t,
		// 30% above average: outside the default band, inside one widening step.
		model.Vehicle{ID: "a", Category: "sedan", Price: 65, Seats: 4},
	)
	cfg := Config{FallbackWidening: WideningConfig{Enabled: true, Step: 0.1, MaxRounds: 3}}
	m := newMatcher(t, store, cfg)
	res, err := m.Search(context.Background(), profiled(50, 4, "sedan"), model.SearchRequest{RequesterID: "u1"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Matches) != 1 {
		t.Fatalf("widening should admit the vehicle, got %+v", res.Matches)
	}

	// Disabled widening keeps the strict band.
	strict := newMatcher(t, store, Config{})
	res, err = strict.Search(context.Background(), profiled(50, 4, "sedan"), model.SearchRequest{RequesterID: "u1"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Matches) != 0 {
		t.Fatalf("widening must never be a hidden default")
	}
}

func TestSearch_DistanceOrdering(t *testing.T) {
	// Vehicles placed roughly 10, 3 and 7 km north of the origin.
	store := seedInventory(t,
		model.Vehicle{ID: "far", Category: "sedan", Price: 50, Seats: 4, Latitude: 0.090, Longitude: 0},
		model.Vehicle{ID: "near", Category: "sedan", Price: 50, Seats: 4, Latitude: 0.027, Longitude: 0},
		model.Vehicle{ID: "mid", Category: "sedan", Price: 50, Seats: 4, Latitude: 0.063, Longitude: 0},
	)
	m := newMatcher(t, store, Config{})

	lat, lon := 0.0, 0.0
	res, err := m.Search(context.Background(), NoHistory(), model.SearchRequest{
		RequesterID: "u1", Latitude: &lat, Longitude: &lon,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var got []string
	for _, mt := range res.Matches {
		if mt.DistanceKm == nil {
			t.Fatalf("distance annotation missing on %s", mt.Vehicle.ID)
		}
		got = append(got, mt.Vehicle.ID)
	}
	want := []string{"near", "mid", "far"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
	for i := 1; i < len(res.Matches); i++ {
		if *res.Matches[i].DistanceKm < *res.Matches[i-1].DistanceKm {
			t.Fatalf("distances not ascending: %v", res.Matches)
		}
	}
}

func TestSearch_MaxDistanceInclusive(t *testing.T) {
	origin := geo.Point{Latitude: 0, Longitude: 0}
	atLimit := model.Vehicle{ID: "limit", Category: "sedan", Price: 50, Seats: 4, Latitude: 0.05, Longitude: 0}
	beyond := model.Vehicle{ID: "beyond", Category: "sedan", Price: 50, Seats: 4, Latitude: 0.10, Longitude: 0}
	store := seedInventory(t, atLimit, beyond)
	m := newMatcher(t, store, Config{})

	threshold := geo.DistanceKm(origin, geo.Point{Latitude: atLimit.Latitude, Longitude: atLimit.Longitude})
	lat, lon := 0.0, 0.0
	res, err := m.Search(context.Background(), NoHistory(), model.SearchRequest{
		RequesterID: "u1", Latitude: &lat, Longitude: &lon, MaxDistanceKm: &threshold,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Matches) != 1 || res.Matches[0].Vehicle.ID != "limit" {
		t.Fatalf("vehicle at exactly the threshold must be retained: %+v", res.Matches)
	}
}

func TestSearch_ZeroDistanceVehicle(t *testing.T) {
	store := seedInventory(t,
		model.Vehicle{ID: "here", Category: "sedan", Price: 50, Seats: 4, Latitude: 48.8566, Longitude: 2.3522},
	)
	m := newMatcher(t, store, Config{})
	lat, lon := 48.8566, 2.3522
	res, err := m.Search(context.Background(), NoHistory(), model.SearchRequest{
		RequesterID: "u1", Latitude: &lat, Longitude: &lon,
	})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(res.Matches) != 1 || *res.Matches[0].DistanceKm != 0 {
		t.Fatalf("co-located vehicle must have distance exactly 0, got %+v", res.Matches)
	}
}

func TestSearch_PropagatesProviderError(t *testing.T) {
	boom := errors.New("timeout")
	m := newMatcher(t, failingInventory{err: boom}, Config{})
	_, err := m.Search(context.Background(), NoHistory(), model.SearchRequest{RequesterID: "u1"})
	if !errors.Is(err, boom) {
		t.Fatalf("provider error must propagate unchanged, got %v", err)
	}
}
