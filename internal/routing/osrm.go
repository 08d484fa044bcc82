package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/morepixel/BudgetOverlander/internal/shared/geo"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	// SourceOSRM marks a provider-verified connection.
	SourceOSRM = "osrm"
	// SourceFallback marks an estimated great-circle connection.
	SourceFallback = "fallback"

	// fallback estimation constants: detour factor over the air line
	// and an assumed average onroad speed.
	detourFactor     = 1.3
	fallbackSpeedKmh = 70
)

// ErrNoRoute means the provider answered but found no drivable route.
var ErrNoRoute = errors.New("routing: no route found")

// Connection is the inter-cluster travel segment of a day.
type Connection struct {
	DistanceKm  float64           `json:"distance_km"`
	DurationMin float64           `json:"duration_min"`
	Geometry    *geojson.Geometry `json:"geometry,omitempty"`
	Source      string            `json:"source"`
}

// Client queries an OSRM-style routing service for driving routes
// between two coordinates.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
		Geometry *geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

// DrivingRoute returns the provider route between two points. Any
// non-2xx status, malformed body or empty route set is an error; the
// caller decides whether to fall back.
func (c *Client) DrivingRoute(ctx context.Context, from, to geo.Point) (Connection, error) {
	url := fmt.Sprintf("%s/%f,%f;%f,%f?overview=full&geometries=geojson&steps=false",
		c.baseURL, from.Lon, from.Lat, to.Lon, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Connection{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Connection{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Connection{}, fmt.Errorf("routing: status %d", resp.StatusCode)
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Connection{}, err
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return Connection{}, ErrNoRoute
	}

	route := parsed.Routes[0]
	return Connection{
		DistanceKm:  route.Distance / 1000,
		DurationMin: route.Duration / 60,
		Geometry:    route.Geometry,
		Source:      SourceOSRM,
	}, nil
}

// Fallback estimates a connection when the provider is unavailable:
// air-line distance times a detour factor, straight-line geometry.
func Fallback(from, to geo.Point) Connection {
	distanceKm := geo.DistanceKm(from, to) * detourFactor
	return Connection{
		DistanceKm:  distanceKm,
		DurationMin: distanceKm / fallbackSpeedKmh * 60,
		Geometry: geojson.NewGeometry(orb.LineString{
			{from.Lon, from.Lat},
			{to.Lon, to.Lat},
		}),
		Source: SourceFallback,
	}
}
