package trackcache

import (
	"context"
	"fmt"
	"time"
)

// TTL bounds how long a cached track lookup stays valid. Expired rows
// are ignored on read and overwritten by the next put.
const TTL = 30 * 24 * time.Hour

// Entry is one cached track lookup keyed by a quantized region key.
type Entry struct {
	RegionKey     string    `json:"region_key"`
	CenterLat     float64   `json:"center_lat"`
	CenterLon     float64   `json:"center_lon"`
	RadiusKm      float64   `json:"radius_km"`
	Payload       []byte    `json:"payload"`
	TotalKm       float64   `json:"total_km"`
	AvgDifficulty float64   `json:"avg_difficulty"`
	TrackCount    int       `json:"track_count"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// Store is the injected cache abstraction. Implementations must treat
// concurrent puts for the same key as last-write-wins; staleness is
// bounded by the TTL, so no locking beyond that is required.
type Store interface {
	// Get returns the non-expired entry for the quantized key, or
	// ok=false on a miss. An expired row is a miss, not an error.
	Get(ctx context.Context, lat, lon, radiusKm float64) (Entry, bool, error)
	// Put upserts the entry for the quantized key and refreshes its TTL.
	Put(ctx context.Context, lat, lon, radiusKm float64, payload []byte, totalKm, avgDifficulty float64, trackCount int) error
}

// RegionKey quantizes a point-radius query to one decimal degree so
// near-identical queries share a cache row. Precision loss here is a
// deliberate trade for hit rate.
func RegionKey(lat, lon, radiusKm float64) string {
	return fmt.Sprintf("offroad_lat_%.1f_lon_%.1f_radius_%g", lat, lon, radiusKm)
}
