package trackcache

import (
	"context"

	"github.com/morepixel/BudgetOverlander/internal/db"
)

// PostgresStore persists cache entries in the offroad_cache table.
type PostgresStore struct {
	db db.Querier
}

func NewPostgresStore(q db.Querier) *PostgresStore {
	return &PostgresStore{db: q}
}

func (s *PostgresStore) Get(ctx context.Context, lat, lon, radiusKm float64) (Entry, bool, error) {
	key := RegionKey(lat, lon, radiusKm)
	row := s.db.QueryRow(ctx, `
		SELECT region_key, center_lat, center_lon, radius_km, tracks, total_km, avg_difficulty, track_count, created_at, expires_at
		FROM offroad_cache
		WHERE region_key = $1 AND expires_at > NOW()
	`, key)

	var entry Entry
	if err := row.Scan(&entry.RegionKey, &entry.CenterLat, &entry.CenterLon, &entry.RadiusKm,
		&entry.Payload, &entry.TotalKm, &entry.AvgDifficulty, &entry.TrackCount,
		&entry.CreatedAt, &entry.ExpiresAt); err != nil {
		if db.IsNoRows(err) {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}
	return entry, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, lat, lon, radiusKm float64, payload []byte, totalKm, avgDifficulty float64, trackCount int) error {
	key := RegionKey(lat, lon, radiusKm)
	_, err := s.db.Exec(ctx, `
		INSERT INTO offroad_cache (region_key, center_lat, center_lon, radius_km, tracks, total_km, avg_difficulty, track_count, created_at, expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW() + INTERVAL '30 days')
		ON CONFLICT (region_key) DO UPDATE SET
			center_lat = EXCLUDED.center_lat,
			center_lon = EXCLUDED.center_lon,
			radius_km = EXCLUDED.radius_km,
			tracks = EXCLUDED.tracks,
			total_km = EXCLUDED.total_km,
			avg_difficulty = EXCLUDED.avg_difficulty,
			track_count = EXCLUDED.track_count,
			created_at = NOW(),
			expires_at = NOW() + INTERVAL '30 days'
	`, key, lat, lon, radiusKm, payload, totalKm, avgDifficulty, trackCount)
	return err
}
