package region

import (
	"time"

	"github.com/morepixel/BudgetOverlander/internal/cluster"
	"github.com/morepixel/BudgetOverlander/internal/overpass"
)

// Definition is a built-in collectable region.
type Definition struct {
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Country     string        `json:"country"`
	BBox        overpass.BBox `json:"bbox"`
}

// Stats summarizes a collected region.
type Stats struct {
	TrackCount    int     `json:"track_count"`
	TotalLengthKm float64 `json:"total_length_km"`
	AvgDifficulty int     `json:"avg_difficulty"`
	ClusterCount  int     `json:"cluster_count"`
}

// Region is one collection snapshot: bounding box, cluster set and
// summary stats. Immutable once written; re-collection replaces it.
type Region struct {
	ID          string            `json:"id"`
	Key         string            `json:"key"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	BBox        overpass.BBox     `json:"bbox"`
	Clusters    []cluster.Cluster `json:"clusters"`
	Stats       Stats             `json:"stats"`
	CollectedAt time.Time         `json:"collected_at"`
}

// ClusterByID returns the cluster with the given id, if present.
func (r Region) ClusterByID(id string) (cluster.Cluster, bool) {
	for _, c := range r.Clusters {
		if c.ID == id {
			return c, true
		}
	}
	return cluster.Cluster{}, false
}
