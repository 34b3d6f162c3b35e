// Package geo provides great-circle distance math for ranking vehicles by
// proximity.
package geo

import "math"

// EarthRadiusKm is the spherical Earth radius used for distance computation.
const EarthRadiusKm = 6371.0

// Point is a WGS84-like coordinate pair in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// DistanceKm returns the great-circle distance between two points using the
// spherical law of cosines. The cosine argument is clamped to [-1,1] so that
// identical points yield exactly zero instead of an acos domain error caused
// by floating-point rounding.
func DistanceKm(a, b Point) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	arg := math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon) + math.Sin(lat1)*math.Sin(lat2)
	arg = clamp(arg, -1, 1)
	return EarthRadiusKm * math.Acos(arg)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
