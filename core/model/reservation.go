package model

import "time"

// Reservation records that a requester booked a vehicle. The timestamp is
// used only for existence, never for recency weighting. The vehicle
// attributes relevant to preference inference are denormalized onto the
// record so the analyzer needs no join at read time.
type Reservation struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	RequesterID string    `json:"requester_id" bson:"requester_id"`
	VehicleID   string    `json:"vehicle_id" bson:"vehicle_id"`
	Price       float64   `json:"price" bson:"price"`
	Seats       int       `json:"seats" bson:"seats"`
	Category    string    `json:"category" bson:"category"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
