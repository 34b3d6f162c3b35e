package model

import "fmt"

// Vehicle represents a rentable vehicle in the inventory. It is immutable for
// the duration of a search.
type Vehicle struct {
	ID        string  `json:"id" bson:"_id,omitempty"`
	Category  string  `json:"category" bson:"category"`
	Price     float64 `json:"price" bson:"price"` // currency-agnostic unit
	Seats     int     `json:"seats" bson:"seats"`
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Validate checks that the vehicle attributes are sound.
func (v Vehicle) Validate() error {
	if v.Seats <= 0 {
		return fmt.Errorf("seat capacity must be positive")
	}
	if v.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if v.Latitude < -90 || v.Latitude > 90 {
		return fmt.Errorf("latitude %f out of range [-90,90]", v.Latitude)
	}
	if v.Longitude < -180 || v.Longitude > 180 {
		return fmt.Errorf("longitude %f out of range [-180,180]", v.Longitude)
	}
	return nil
}
