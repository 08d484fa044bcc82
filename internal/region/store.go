package region

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/morepixel/BudgetOverlander/internal/db"

	"github.com/redis/go-redis/v9"
)

// snapshot cache entries are short-lived; postgres stays the authority.
const redisSnapshotTTL = time.Hour

// Store persists region snapshots as opaque blobs in postgres with a
// redis read-through cache. Redis failures are logged and ignored.
type Store struct {
	db    db.Querier
	redis *redis.Client
}

func NewStore(q db.Querier, redisClient *redis.Client) *Store {
	return &Store{db: q, redis: redisClient}
}

func (s *Store) Save(ctx context.Context, region Region) error {
	payload, err := json.Marshal(region)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO regions (id, key, name, payload, collected_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (key) DO UPDATE SET
			id = EXCLUDED.id,
			name = EXCLUDED.name,
			payload = EXCLUDED.payload,
			collected_at = EXCLUDED.collected_at
	`, region.ID, region.Key, region.Name, payload, region.CollectedAt)
	if err != nil {
		return err
	}

	s.cacheSet(ctx, region.ID, payload)
	s.cacheSet(ctx, region.Key, payload)
	return nil
}

// Get loads a snapshot by id or catalog key.
func (s *Store) Get(ctx context.Context, idOrKey string) (Region, error) {
	if cached, ok := s.cacheGet(ctx, idOrKey); ok {
		return cached, nil
	}

	row := s.db.QueryRow(ctx, `
		SELECT payload FROM regions WHERE id = $1 OR key = $1
	`, idOrKey)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		return Region{}, err
	}

	var region Region
	if err := json.Unmarshal(payload, &region); err != nil {
		return Region{}, err
	}

	s.cacheSet(ctx, region.ID, payload)
	s.cacheSet(ctx, region.Key, payload)
	return region, nil
}

func (s *Store) cacheGet(ctx context.Context, idOrKey string) (Region, bool) {
	if s.redis == nil {
		return Region{}, false
	}

	payload, err := s.redis.Get(ctx, snapshotKey(idOrKey)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("region cache read error: %v", err)
		}
		return Region{}, false
	}

	var region Region
	if err := json.Unmarshal(payload, &region); err != nil {
		log.Printf("region cache payload unreadable: %v", err)
		return Region{}, false
	}
	return region, true
}

func (s *Store) cacheSet(ctx context.Context, idOrKey string, payload []byte) {
	if s.redis == nil || idOrKey == "" {
		return
	}
	if err := s.redis.Set(ctx, snapshotKey(idOrKey), payload, redisSnapshotTTL).Err(); err != nil {
		log.Printf("region cache write error: %v", err)
	}
}

func snapshotKey(idOrKey string) string {
	return "region:" + idOrKey
}
