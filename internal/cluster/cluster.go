package cluster

import (
	"fmt"
	"math"
	"sort"

	"github.com/morepixel/BudgetOverlander/internal/shared/geo"
	"github.com/morepixel/BudgetOverlander/internal/track"
)

const unknownTown = "Unbekannt"

// BoundingBox spans the member track centers of a cluster.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// Cluster is a radius-grouped set of tracks treated as one day-trip
// area. Membership is exclusive: a track belongs to exactly one
// cluster per grouping run.
type Cluster struct {
	ID            string        `json:"id"`
	Tracks        []track.Track `json:"tracks"`
	TrackCount    int           `json:"track_count"`
	Center        geo.Point     `json:"center"`
	BBox          BoundingBox   `json:"bbox"`
	TotalLengthKm float64       `json:"total_length_km"`
	AvgDifficulty int           `json:"avg_difficulty"`
	NearestTown   string        `json:"nearest_town"`
}

// Group performs single-link radius grouping over the tracks in their
// given order. Each unassigned track seeds a new cluster and pulls in
// every remaining track whose center lies within radiusKm of the
// seed's center. Membership distance is measured against the seed, not
// the evolving centroid, so the result is order-dependent but
// deterministic for a fixed input ordering. O(n²), intended for
// offline per-region runs.
func Group(tracks []track.Track, radiusKm float64) []Cluster {
	clusters := []Cluster{}
	assigned := make([]bool, len(tracks))

	for i, seed := range tracks {
		if assigned[i] {
			continue
		}

		members := []track.Track{seed}
		assigned[i] = true

		for j := i + 1; j < len(tracks); j++ {
			if assigned[j] {
				continue
			}
			if geo.DistanceKm(seed.Center, tracks[j].Center) <= radiusKm {
				members = append(members, tracks[j])
				assigned[j] = true
			}
		}

		clusters = append(clusters, build(fmt.Sprintf("cluster_%d", len(clusters)+1), members))
	}

	// largest day-trip areas first; ids keep their creation order
	sort.SliceStable(clusters, func(a, b int) bool {
		return len(clusters[a].Tracks) > len(clusters[b].Tracks)
	})

	return clusters
}

// build finalizes a cluster from its member set: centroid as the mean
// of member centers, bounding box, totals and the nearest-town label.
func build(id string, members []track.Track) Cluster {
	c := Cluster{
		ID:          id,
		Tracks:      members,
		TrackCount:  len(members),
		NearestTown: unknownTown,
		BBox: BoundingBox{
			MinLat: members[0].Center.Lat,
			MaxLat: members[0].Center.Lat,
			MinLon: members[0].Center.Lon,
			MaxLon: members[0].Center.Lon,
		},
	}

	var sumLat, sumLon float64
	var diffSum int
	town := ""

	for _, m := range members {
		sumLat += m.Center.Lat
		sumLon += m.Center.Lon
		c.TotalLengthKm += m.LengthKm
		diffSum += m.Difficulty

		c.BBox.MinLat = math.Min(c.BBox.MinLat, m.Center.Lat)
		c.BBox.MaxLat = math.Max(c.BBox.MaxLat, m.Center.Lat)
		c.BBox.MinLon = math.Min(c.BBox.MinLon, m.Center.Lon)
		c.BBox.MaxLon = math.Max(c.BBox.MaxLon, m.Center.Lon)

		if town == "" && m.Name != "" && m.Name != "Unbenannt" {
			town = m.Name
		}
	}

	n := float64(len(members))
	c.Center = geo.Point{Lat: sumLat / n, Lon: sumLon / n}
	c.AvgDifficulty = int(math.Round(float64(diffSum) / n))
	if town != "" {
		c.NearestTown = town
	}
	return c
}
