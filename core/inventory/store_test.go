package inventory

import (
	"context"
	"testing"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/model"
)

func TestMemoryStore_InsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for _, id := range []string{"b", "a", "c"} {
		if err := s.InsertVehicle(ctx, model.Vehicle{ID: id, Category: "sedan", Price: 10, Seats: 4}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	out, err := s.ListVehicles(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, want := range []string{"b", "a", "c"} {
		if out[i].ID != want {
			t.Fatalf("position %d: got %s, want %s", i, out[i].ID, want)
		}
	}
}

func TestMemoryStore_ReplaceKeepsPosition(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.InsertVehicle(ctx, model.Vehicle{ID: "a", Category: "sedan", Price: 10, Seats: 4}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertVehicle(ctx, model.Vehicle{ID: "b", Category: "van", Price: 20, Seats: 6}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.InsertVehicle(ctx, model.Vehicle{ID: "a", Category: "sedan", Price: 15, Seats: 4}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	out, err := s.ListVehicles(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 2 || out[0].ID != "a" || out[0].Price != 15 {
		t.Fatalf("replacement must keep position and update fields: %+v", out)
	}
}

func TestMemoryStore_InsertVehicleValidates(t *testing.T) {
	s := NewMemoryStore()
	if err := s.InsertVehicle(context.Background(), model.Vehicle{ID: "bad", Seats: 0}); err == nil {
		t.Fatal("expected validation error for zero seats")
	}
}

func TestMemoryStore_SetVehicleLocation(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.InsertVehicle(ctx, model.Vehicle{ID: "a", Category: "sedan", Price: 10, Seats: 4}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !s.SetVehicleLocation("a", 48.85, 2.35) {
		t.Fatal("update of known vehicle must succeed")
	}
	if s.SetVehicleLocation("ghost", 1, 1) {
		t.Fatal("unknown vehicle must report false")
	}
	out, _ := s.ListVehicles(ctx)
	if out[0].Latitude != 48.85 || out[0].Longitude != 2.35 {
		t.Fatalf("coordinates not applied: %+v", out[0])
	}
}

func TestMemoryStore_UnknownRequester(t *testing.T) {
	s := NewMemoryStore()
	out, err := s.ListReservationsFor(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unknown requester must not error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty history, got %+v", out)
	}
}

func TestMemoryStore_ReservationRequiresRequester(t *testing.T) {
	s := NewMemoryStore()
	if err := s.InsertReservation(context.Background(), model.Reservation{VehicleID: "v"}); err == nil {
		t.Fatal("expected error for missing requester id")
	}
}

func TestMemoryStore_ListCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.InsertVehicle(ctx, model.Vehicle{ID: "a", Category: "sedan", Price: 10, Seats: 4}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	out, _ := s.ListVehicles(ctx)
	out[0].Price = 999
	again, _ := s.ListVehicles(ctx)
	if again[0].Price != 10 {
		t.Fatal("listing must return a copy of the snapshot")
	}
}
