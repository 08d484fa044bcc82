package routing

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/morepixel/BudgetOverlander/internal/shared/geo"
)

const osrmOk = `{
	"code": "Ok",
	"routes": [{
		"distance": 84500,
		"duration": 4530,
		"geometry": {"type": "LineString", "coordinates": [[1.5, 42.5], [1.6, 42.6]]}
	}]
}`

func TestDrivingRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(osrmOk))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	conn, err := client.DrivingRoute(context.Background(), geo.Point{Lat: 42.5, Lon: 1.5}, geo.Point{Lat: 42.6, Lon: 1.6})
	if err != nil {
		t.Fatalf("driving route: %v", err)
	}
	if math.Abs(conn.DistanceKm-84.5) > 1e-9 {
		t.Fatalf("distance %v, want 84.5", conn.DistanceKm)
	}
	if math.Abs(conn.DurationMin-75.5) > 1e-9 {
		t.Fatalf("duration %v, want 75.5", conn.DurationMin)
	}
	if conn.Source != SourceOSRM {
		t.Fatalf("expected osrm source, got %s", conn.Source)
	}
	if conn.Geometry == nil {
		t.Fatalf("expected geometry")
	}
}

func TestDrivingRouteNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.DrivingRoute(context.Background(), geo.Point{Lat: 42.5, Lon: 1.5}, geo.Point{Lat: 42.6, Lon: 1.6})
	if err != ErrNoRoute {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
}

func TestDrivingRouteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.DrivingRoute(context.Background(), geo.Point{}, geo.Point{}); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestDrivingRouteMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.DrivingRoute(context.Background(), geo.Point{}, geo.Point{}); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFallback(t *testing.T) {
	from := geo.Point{Lat: 42.5, Lon: 1.5}
	to := geo.Point{Lat: 42.6, Lon: 1.6}

	conn := Fallback(from, to)
	air := geo.DistanceKm(from, to)

	if conn.Source != SourceFallback {
		t.Fatalf("expected fallback source")
	}
	if math.Abs(conn.DistanceKm-air*1.3) > 1e-9 {
		t.Fatalf("distance %v, want %v", conn.DistanceKm, air*1.3)
	}
	if conn.DistanceKm < air {
		t.Fatalf("fallback distance below the air line")
	}
	if math.Abs(conn.DurationMin-conn.DistanceKm/70*60) > 1e-9 {
		t.Fatalf("unexpected duration %v", conn.DurationMin)
	}
	if conn.Geometry == nil {
		t.Fatalf("expected straight-line geometry")
	}
}
