package geo

import (
	"math"
	"testing"
)

func TestDistanceKm_Symmetry(t *testing.T) {
	paris := Point{Latitude: 48.8566, Longitude: 2.3522}
	london := Point{Latitude: 51.5074, Longitude: -0.1278}
	ab := DistanceKm(paris, london)
	ba := DistanceKm(london, paris)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}
	// Paris-London is roughly 344 km.
	if ab < 330 || ab > 360 {
		t.Fatalf("unexpected Paris-London distance: %f", ab)
	}
}

func TestDistanceKm_IdenticalPoints(t *testing.T) {
	p := Point{Latitude: 40.7128, Longitude: -74.0060}
	if d := DistanceKm(p, p); d != 0 {
		t.Fatalf("identical points must yield exactly zero after clamping, got %g", d)
	}
}

func TestDistanceKm_Antipodal(t *testing.T) {
	a := Point{Latitude: 0, Longitude: 0}
	b := Point{Latitude: 0, Longitude: 180}
	d := DistanceKm(a, b)
	want := EarthRadiusKm * math.Pi
	if math.Abs(d-want) > 1 {
		t.Fatalf("antipodal distance %f, want about %f", d, want)
	}
}

func TestDistanceKm_KnownShortDistance(t *testing.T) {
	// One degree of latitude is about 111.19 km on the 6371 km sphere.
	a := Point{Latitude: 0, Longitude: 0}
	b := Point{Latitude: 1, Longitude: 0}
	d := DistanceKm(a, b)
	if math.Abs(d-111.19) > 0.1 {
		t.Fatalf("one degree latitude = %f km, want about 111.19", d)
	}
}
