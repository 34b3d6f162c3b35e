// Package mongo provides MongoDB-backed implementations of the inventory and
// history ports.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/model"
)

// Config defines the connection parameters for the MongoDB store.
type Config struct {
	URI      string `json:"uri"`
	Database string `json:"database"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.URI == "" {
		c.URI = "mongodb://localhost:27017"
	}
	if c.Database == "" {
		c.Database = "rental"
	}
}

// Store implements the inventory and history ports on two collections.
// Reads use the collection's natural order, which matches insertion order
// for the append-only workload here.
type Store struct {
	client       *mongo.Client
	vehicles     *mongo.Collection
	reservations *mongo.Collection
}

// Connect dials MongoDB, verifies the connection with a ping and returns a
// ready Store.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	cfg.SetDefaults()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(cfg.Database)
	return &Store{
		client:       client,
		vehicles:     db.Collection("vehicles"),
		reservations: db.Collection("reservations"),
	}, nil
}

// ListVehicles returns the full inventory snapshot.
func (s *Store) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	cursor, err := s.vehicles.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find vehicles: %w", err)
	}
	defer cursor.Close(ctx)
	vehicles := []model.Vehicle{}
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return vehicles, nil
}

// ListReservationsFor returns the requester's reservation history. An
// unknown requester yields an empty slice, not an error.
func (s *Store) ListReservationsFor(ctx context.Context, requesterID string) ([]model.Reservation, error) {
	cursor, err := s.reservations.Find(ctx, bson.M{"requester_id": requesterID})
	if err != nil {
		return nil, fmt.Errorf("find reservations: %w", err)
	}
	defer cursor.Close(ctx)
	reservations := []model.Reservation{}
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("decode reservations: %w", err)
	}
	return reservations, nil
}

// InsertVehicle stores a vehicle. Used by the seed command.
func (s *Store) InsertVehicle(ctx context.Context, v model.Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	_, err := s.vehicles.InsertOne(ctx, v)
	return err
}

// InsertReservation stores a reservation. Used by the seed command.
func (s *Store) InsertReservation(ctx context.Context, r model.Reservation) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.reservations.InsertOne(ctx, r)
	return err
}

// SetVehicleLocation updates the coordinates of a stored vehicle. It
// satisfies the location-feed contract; unknown vehicles report false.
func (s *Store) SetVehicleLocation(id string, lat, lon float64) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := s.vehicles.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"latitude": lat, "longitude": lon}},
	)
	if err != nil {
		return false
	}
	return res.MatchedCount > 0
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
