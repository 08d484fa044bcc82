package region

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/morepixel/BudgetOverlander/internal/cluster"
	"github.com/morepixel/BudgetOverlander/internal/overpass"
	"github.com/morepixel/BudgetOverlander/internal/track"

	"github.com/google/uuid"
)

// ErrNoTracks means the provider returned no usable ways for the
// region's bounding box.
var ErrNoTracks = errors.New("region: no tracks found")

// DefaultClusterRadiusKm groups tracks into day-trip areas.
const DefaultClusterRadiusKm = 20

// minTrackLengthKm drops stub ways during collection.
const minTrackLengthKm = 0.5

// BBoxProvider is the geo-data boundary used by the collector.
// *overpass.Client satisfies it.
type BBoxProvider interface {
	FetchBBox(ctx context.Context, bbox overpass.BBox) ([]track.RawWay, error)
}

// Broadcaster receives collection progress events. *stream.Hub
// satisfies it; nil-safe via the noop default.
type Broadcaster interface {
	Broadcast(regionKey string, payload []byte)
}

// Progress is one collection progress event.
type Progress struct {
	RegionKey    string `json:"region_key"`
	Stage        string `json:"stage"`
	TrackCount   int    `json:"track_count,omitempty"`
	ClusterCount int    `json:"cluster_count,omitempty"`
}

// Collector runs the offline batch step: fetch the region's raw ways,
// ingest them into tracks, group them into clusters and produce a
// snapshot.
type Collector struct {
	provider BBoxProvider
	hub      Broadcaster
	now      func() time.Time
}

func NewCollector(provider BBoxProvider, hub Broadcaster) *Collector {
	return &Collector{
		provider: provider,
		hub:      hub,
		now:      time.Now,
	}
}

func (c *Collector) Collect(ctx context.Context, def Definition, clusterRadiusKm float64) (Region, error) {
	if clusterRadiusKm <= 0 {
		clusterRadiusKm = DefaultClusterRadiusKm
	}

	c.progress(Progress{RegionKey: def.Key, Stage: "fetching"})
	ways, err := c.provider.FetchBBox(ctx, def.BBox)
	if err != nil {
		return Region{}, err
	}

	tracks := track.IngestWithOptions(ways, track.IngestOptions{MinLengthKm: minTrackLengthKm})
	if len(tracks) == 0 {
		return Region{}, ErrNoTracks
	}
	c.progress(Progress{RegionKey: def.Key, Stage: "clustering", TrackCount: len(tracks)})

	clusters := cluster.Group(tracks, clusterRadiusKm)

	region := Region{
		ID:          uuid.NewString(),
		Key:         def.Key,
		Name:        def.Name,
		Description: def.Description,
		BBox:        def.BBox,
		Clusters:    clusters,
		Stats:       statsFor(tracks, clusters),
		CollectedAt: c.now(),
	}
	c.progress(Progress{RegionKey: def.Key, Stage: "done", TrackCount: len(tracks), ClusterCount: len(clusters)})

	return region, nil
}

func statsFor(tracks []track.Track, clusters []cluster.Cluster) Stats {
	stats := Stats{
		TrackCount:   len(tracks),
		ClusterCount: len(clusters),
	}

	var diffSum int
	for _, t := range tracks {
		stats.TotalLengthKm += t.LengthKm
		diffSum += t.Difficulty
	}
	if len(tracks) > 0 {
		stats.AvgDifficulty = diffSum / len(tracks)
	}
	return stats
}

func (c *Collector) progress(p Progress) {
	if c.hub == nil {
		return
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return
	}
	c.hub.Broadcast(p.RegionKey, payload)
}
