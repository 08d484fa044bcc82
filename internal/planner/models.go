package planner

import (
	"time"

	"github.com/morepixel/BudgetOverlander/internal/routing"
	"github.com/morepixel/BudgetOverlander/internal/shared/geo"
)

// Request is the route calculation input. Unknown cluster ids are
// skipped; zero values fall back to defaults.
type Request struct {
	RegionID           string   `json:"region_id"`
	ClusterIDs         []string `json:"cluster_ids"`
	MaxOffroadKmPerDay float64  `json:"max_offroad_km_per_day"`
	FuelPricePerLiter  float64  `json:"fuel_price_per_liter"`
}

// DayOffroad describes the riding share of one day.
type DayOffroad struct {
	AvailableKm float64 `json:"available_km"`
	PlannedKm   float64 `json:"planned_km"`
	TrackCount  int     `json:"track_count"`
}

// DayTotal sums a day's distances.
type DayTotal struct {
	OffroadKm         float64 `json:"offroad_km"`
	OnroadKm          float64 `json:"onroad_km"`
	DistanceKm        float64 `json:"distance_km"`
	OffroadPercentage float64 `json:"offroad_percentage"`
}

// Day is one planned travel day: riding inside a cluster plus the
// connection to the next one. The last day has no connection.
type Day struct {
	Day         int                 `json:"day"`
	ClusterID   string              `json:"cluster_id"`
	Center      geo.Point           `json:"center"`
	NearestTown string              `json:"nearest_town"`
	Difficulty  int                 `json:"difficulty"`
	Offroad     DayOffroad          `json:"offroad"`
	Connection  *routing.Connection `json:"connection,omitempty"`
	ConnectsTo  string              `json:"connects_to,omitempty"`
	Total       DayTotal            `json:"total"`
	Budget      Budget              `json:"budget"`
	OSMLink     string              `json:"osm_link"`
}

// Summary aggregates the whole route.
type Summary struct {
	TotalDays         int     `json:"total_days"`
	TotalDistanceKm   float64 `json:"total_distance_km"`
	OffroadKm         float64 `json:"offroad_km"`
	OnroadKm          float64 `json:"onroad_km"`
	OffroadPercentage float64 `json:"offroad_percentage"`
	AvgDifficulty     int     `json:"avg_difficulty"`
	TotalCost         float64 `json:"total_cost"`
	TotalTimeHours    float64 `json:"total_time_hours"`
	TotalFuelLiters   float64 `json:"total_fuel_liters"`
}

// Route is the assembled multi-day plan.
type Route struct {
	ID         string    `json:"id"`
	RegionID   string    `json:"region_id"`
	RegionName string    `json:"region_name"`
	Days       []Day     `json:"days"`
	Summary    Summary   `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}
