package model

import "fmt"

// SearchRequest carries the parameters of one search call. Latitude and
// longitude must both be present or both absent; MaxDistanceKm is ignored
// when no location is supplied.
type SearchRequest struct {
	RequesterID   string
	Latitude      *float64
	Longitude     *float64
	MaxDistanceKm *float64
}

// HasLocation reports whether the request carries a query point.
func (r SearchRequest) HasLocation() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Validate checks the location invariant and coordinate ranges.
func (r SearchRequest) Validate() error {
	if r.RequesterID == "" {
		return fmt.Errorf("requester id is required")
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be supplied together")
	}
	if r.Latitude != nil {
		if *r.Latitude < -90 || *r.Latitude > 90 {
			return fmt.Errorf("latitude %f out of range [-90,90]", *r.Latitude)
		}
		if *r.Longitude < -180 || *r.Longitude > 180 {
			return fmt.Errorf("longitude %f out of range [-180,180]", *r.Longitude)
		}
	}
	return nil
}

// Match is one vehicle in a search result, annotated with the computed
// distance when the request carried a location.
type Match struct {
	Vehicle    Vehicle  `json:"vehicle"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// SearchResult is the ordered outcome of one search call. An empty result is
// a valid, final outcome.
type SearchResult struct {
	Matches []Match `json:"matches"`
	// Profiled is true when the result was produced from a preference
	// profile rather than the unfiltered catalog.
	Profiled bool `json:"profiled"`
}
