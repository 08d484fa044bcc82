package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Toulouse (43.6, 1.44) to Andorra la Vella (42.5, 1.52) ~ 120 km
	d := HaversineKm(43.6, 1.44, 42.5, 1.52)
	if d < 100 || d > 140 {
		t.Fatalf("unexpected distance: %v", d)
	}
}

func TestHaversineZero(t *testing.T) {
	if d := HaversineKm(42.5, 1.5, 42.5, 1.5); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}
}

func TestPathLengthKm(t *testing.T) {
	points := []Point{
		{Lat: 42.0, Lon: 1.0},
		{Lat: 42.1, Lon: 1.0},
		{Lat: 42.2, Lon: 1.0},
	}
	got := PathLengthKm(points)
	want := DistanceKm(points[0], points[1]) + DistanceKm(points[1], points[2])
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("path length %v, want %v", got, want)
	}

	if PathLengthKm(points[:1]) != 0 {
		t.Fatalf("expected zero length for single point")
	}
	if PathLengthKm(nil) != 0 {
		t.Fatalf("expected zero length for nil path")
	}
}

func TestMidpoint(t *testing.T) {
	points := []Point{{Lat: 1}, {Lat: 2}, {Lat: 3}}
	if mid := Midpoint(points); mid.Lat != 2 {
		t.Fatalf("unexpected midpoint: %+v", mid)
	}
	if mid := Midpoint(nil); mid != (Point{}) {
		t.Fatalf("expected zero midpoint for empty path")
	}
}
