package overpass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/morepixel/BudgetOverlander/internal/shared/geo"
	"github.com/morepixel/BudgetOverlander/internal/track"
)

// ErrAllEndpointsFailed means every configured endpoint was tried and
// none returned a usable response.
var ErrAllEndpointsFailed = errors.New("overpass: all endpoints failed")

var defaultEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://overpass.openstreetmap.ru/api/interpreter",
}

// BBox is a south/west/north/east query boundary.
type BBox struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Client queries an Overpass-style geo-data service. Endpoints are
// tried in order; the first usable response wins.
type Client struct {
	endpoints []string
	http      *http.Client
}

func NewClient(endpoints []string) *Client {
	if len(endpoints) == 0 {
		endpoints = defaultEndpoints
	}
	return &Client{
		endpoints: endpoints,
		http:      &http.Client{Timeout: 90 * time.Second},
	}
}

// FindWays returns the raw drivable unpaved ways around a point.
func (c *Client) FindWays(ctx context.Context, lat, lon, radiusKm float64) ([]track.RawWay, error) {
	radiusMeters := radiusKm * 1000
	query := fmt.Sprintf(`
[out:json][timeout:60];
(
  way["highway"~"^(track|path)$"]
     ["surface"~"^(gravel|dirt|ground|unpaved|fine_gravel|compacted)$"]
     ["access"!~"^(private|no)$"]
     ["motor_vehicle"!~"^(no|private)$"]
     ["vehicle"!~"^(no|private)$"]
     ["bicycle"!="designated"]
     ["foot"!="designated"]
     (around:%.0f,%f,%f);
);
out tags geom;
`, radiusMeters, lat, lon)

	return c.run(ctx, query)
}

// FetchBBox returns the raw ways inside a bounding box, restricted to
// the graded tracks the region collector works with.
func (c *Client) FetchBBox(ctx context.Context, bbox BBox) ([]track.RawWay, error) {
	query := fmt.Sprintf(`
[out:json][timeout:300];
(
  way["highway"~"^(track|unclassified)$"]
     ["surface"~"^(gravel|dirt|ground|unpaved|fine_gravel|compacted)$"]
     ["tracktype"~"^(grade1|grade2|grade3)$"]
     ["access"!~"^(private|no)$"]
     ["motor_vehicle"!~"^(no|private)$"]
     (%f,%f,%f,%f);
);
out tags geom;
`, bbox.South, bbox.West, bbox.North, bbox.East)

	return c.run(ctx, query)
}

func (c *Client) run(ctx context.Context, query string) ([]track.RawWay, error) {
	body := url.Values{"data": []string{query}}.Encode()

	for _, endpoint := range c.endpoints {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=UTF-8")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("overpass endpoint %s failed: %v", endpoint, err)
			continue
		}

		ways, err := decodeWays(resp)
		if err != nil {
			log.Printf("overpass endpoint %s unusable: %v", endpoint, err)
			continue
		}
		return ways, nil
	}

	return nil, ErrAllEndpointsFailed
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Geometry []geo.Point       `json:"geometry"`
}

func decodeWays(resp *http.Response) ([]track.RawWay, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ways := make([]track.RawWay, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		if el.Type != "way" || len(el.Geometry) == 0 {
			continue
		}
		ways = append(ways, track.RawWay{
			ID:       el.ID,
			Tags:     el.Tags,
			Geometry: el.Geometry,
		})
	}
	return ways, nil
}
