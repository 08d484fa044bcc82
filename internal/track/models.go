package track

import "github.com/morepixel/BudgetOverlander/internal/shared/geo"

// RawWay is one way record as returned by the geo-data provider:
// an ordered point sequence plus its OSM tags.
type RawWay struct {
	ID       int64             `json:"id"`
	Tags     map[string]string `json:"tags"`
	Geometry []geo.Point       `json:"geometry"`
}

// Track is a single drivable way after ingestion.
type Track struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	LengthKm   float64     `json:"length_km"`
	Difficulty int         `json:"difficulty"`
	Surface    string      `json:"surface"`
	Tracktype  string      `json:"tracktype"`
	Center     geo.Point   `json:"center"`
	Points     []geo.Point `json:"points,omitempty"`
}

// SearchResult is the payload of a point-radius track lookup.
type SearchResult struct {
	Tracks        []Track `json:"tracks"`
	TotalKm       float64 `json:"total_km"`
	AvgDifficulty float64 `json:"avg_difficulty"`
	TrackCount    int     `json:"track_count"`
	Cached        bool    `json:"cached"`
}
