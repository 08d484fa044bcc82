package region

import (
	"context"
	"errors"
)

// ErrUnknownRegion means the requested key is not in the catalog.
var ErrUnknownRegion = errors.New("region: unknown region key")

type Service struct {
	store     *Store
	collector *Collector
}

func NewService(store *Store, collector *Collector) *Service {
	return &Service{store: store, collector: collector}
}

// Collect runs a fresh collection for a catalog region and replaces
// the stored snapshot.
func (s *Service) Collect(ctx context.Context, key string, clusterRadiusKm float64) (Region, error) {
	def, ok := Lookup(key)
	if !ok {
		return Region{}, ErrUnknownRegion
	}

	region, err := s.collector.Collect(ctx, def, clusterRadiusKm)
	if err != nil {
		return Region{}, err
	}

	if err := s.store.Save(ctx, region); err != nil {
		return Region{}, err
	}
	return region, nil
}

// Get loads a stored snapshot by id or catalog key.
func (s *Service) Get(ctx context.Context, idOrKey string) (Region, error) {
	return s.store.Get(ctx, idOrKey)
}
