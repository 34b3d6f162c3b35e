// Package inventory defines the read ports the search core consumes and an
// in-memory store used for tests, the CLI and broker-fed deployments.
package inventory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/model"
)

// Inventory lists the vehicles visible to a search call. Implementations
// must return a consistent snapshot for the duration of one call.
type Inventory interface {
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
}

// History lists the reservation history of one requester.
type History interface {
	ListReservationsFor(ctx context.Context, requesterID string) ([]model.Reservation, error)
}

// MemoryStore implements Inventory and History with mutex-guarded maps.
// Listing preserves insertion order so the enumeration order callers observe
// is deterministic.
type MemoryStore struct {
	mu           sync.RWMutex
	vehicles     map[string]int // id -> index into order
	order        []model.Vehicle
	reservations map[string][]model.Reservation
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		vehicles:     map[string]int{},
		reservations: map[string][]model.Reservation{},
	}
}

// InsertVehicle inserts or replaces a vehicle. Replacement keeps the
// original insertion position.
func (s *MemoryStore) InsertVehicle(_ context.Context, v model.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.vehicles[v.ID]; ok {
		s.order[i] = v
		return nil
	}
	s.vehicles[v.ID] = len(s.order)
	s.order = append(s.order, v)
	return nil
}

// SetVehicleLocation updates the coordinates of a stored vehicle. Unknown
// vehicles are ignored; the feed may race ahead of inventory seeding.
func (s *MemoryStore) SetVehicleLocation(id string, lat, lon float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.vehicles[id]
	if !ok {
		return false
	}
	s.order[i].Latitude = lat
	s.order[i].Longitude = lon
	return true
}

// InsertReservation appends a reservation to the requester's history.
func (s *MemoryStore) InsertReservation(_ context.Context, r model.Reservation) error {
	if r.RequesterID == "" {
		return fmt.Errorf("reservation requester id is required")
	}
	s.mu.Lock()
	s.reservations[r.RequesterID] = append(s.reservations[r.RequesterID], r)
	s.mu.Unlock()
	return nil
}

// ListVehicles returns a copy of the inventory snapshot in insertion order.
func (s *MemoryStore) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Vehicle, len(s.order))
	copy(out, s.order)
	return out, nil
}

// ListReservationsFor returns the requester's reservations in insertion
// order. An unknown requester yields an empty slice, not an error.
func (s *MemoryStore) ListReservationsFor(ctx context.Context, requesterID string) ([]model.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.reservations[requesterID]
	out := make([]model.Reservation, len(src))
	copy(out, src)
	return out, nil
}
