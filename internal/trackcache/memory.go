package trackcache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used in tests and as a fallback
// when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: map[string]Entry{},
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, lat, lon, radiusKm float64) (Entry, bool, error) {
	key := RegionKey(lat, lon, radiusKm)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || !entry.ExpiresAt.After(s.now()) {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

func (s *MemoryStore) Put(_ context.Context, lat, lon, radiusKm float64, payload []byte, totalKm, avgDifficulty float64, trackCount int) error {
	key := RegionKey(lat, lon, radiusKm)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Entry{
		RegionKey:     key,
		CenterLat:     lat,
		CenterLon:     lon,
		RadiusKm:      radiusKm,
		Payload:       payload,
		TotalKm:       totalKm,
		AvgDifficulty: avgDifficulty,
		TrackCount:    trackCount,
		CreatedAt:     now,
		ExpiresAt:     now.Add(TTL),
	}
	return nil
}
