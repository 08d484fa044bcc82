package track

import (
	"context"
	"encoding/json"
	"log"

	"github.com/morepixel/BudgetOverlander/internal/trackcache"
)

// WayProvider is the upstream geo-data boundary. *overpass.Client
// satisfies it.
type WayProvider interface {
	FindWays(ctx context.Context, lat, lon, radiusKm float64) ([]RawWay, error)
}

// Finder serves point-radius track lookups through the query cache.
// The cache is an optimization only: every cache failure degrades to a
// direct provider query, and a total provider failure yields an empty
// result flagged cached:false rather than an error.
type Finder struct {
	cache    trackcache.Store
	provider WayProvider
}

func NewFinder(cache trackcache.Store, provider WayProvider) *Finder {
	return &Finder{cache: cache, provider: provider}
}

func (f *Finder) FindTracks(ctx context.Context, lat, lon, radiusKm float64) (SearchResult, error) {
	if cached, ok := f.fromCache(ctx, lat, lon, radiusKm); ok {
		return cached, nil
	}

	ways, err := f.provider.FindWays(ctx, lat, lon, radiusKm)
	if err != nil {
		if ctx.Err() != nil {
			return SearchResult{}, ctx.Err()
		}
		log.Printf("track lookup failed for (%f, %f, %g km): %v", lat, lon, radiusKm, err)
		return SearchResult{Tracks: []Track{}}, nil
	}

	result := summarize(Ingest(ways))
	f.toCache(ctx, lat, lon, radiusKm, result)
	return result, nil
}

func (f *Finder) fromCache(ctx context.Context, lat, lon, radiusKm float64) (SearchResult, bool) {
	if f.cache == nil {
		return SearchResult{}, false
	}

	entry, ok, err := f.cache.Get(ctx, lat, lon, radiusKm)
	if err != nil {
		log.Printf("track cache lookup error: %v", err)
		return SearchResult{}, false
	}
	if !ok {
		return SearchResult{}, false
	}

	var tracks []Track
	if err := json.Unmarshal(entry.Payload, &tracks); err != nil {
		log.Printf("track cache payload unreadable: %v", err)
		return SearchResult{}, false
	}

	return SearchResult{
		Tracks:        tracks,
		TotalKm:       entry.TotalKm,
		AvgDifficulty: entry.AvgDifficulty,
		TrackCount:    entry.TrackCount,
		Cached:        true,
	}, true
}

func (f *Finder) toCache(ctx context.Context, lat, lon, radiusKm float64, result SearchResult) {
	if f.cache == nil {
		return
	}

	payload, err := json.Marshal(result.Tracks)
	if err != nil {
		log.Printf("track cache encode error: %v", err)
		return
	}
	if err := f.cache.Put(ctx, lat, lon, radiusKm, payload, result.TotalKm, result.AvgDifficulty, result.TrackCount); err != nil {
		log.Printf("track cache save error: %v", err)
	}
}

func summarize(tracks []Track) SearchResult {
	result := SearchResult{Tracks: tracks, TrackCount: len(tracks)}
	if len(tracks) == 0 {
		result.Tracks = []Track{}
		return result
	}

	var diffSum int
	for _, t := range tracks {
		result.TotalKm += t.LengthKm
		diffSum += t.Difficulty
	}
	result.AvgDifficulty = float64(diffSum) / float64(len(tracks))
	return result
}
