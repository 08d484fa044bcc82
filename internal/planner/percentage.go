package planner

import (
	"context"
	"math"

	"github.com/morepixel/BudgetOverlander/internal/shared/geo"
	"github.com/morepixel/BudgetOverlander/internal/track"

	"golang.org/x/sync/errgroup"
)

const (
	// waypointSearchRadiusKm is the track lookup radius around each
	// route waypoint.
	waypointSearchRadiusKm = 25

	// maxOffroadShare caps how much of a route can plausibly be ridden
	// offroad, no matter how many tracks surround it.
	maxOffroadShare = 0.7
)

// TrackSearcher is the track lookup boundary. *track.Finder satisfies
// it.
type TrackSearcher interface {
	FindTracks(ctx context.Context, lat, lon, radiusKm float64) (track.SearchResult, error)
}

// OffroadPercentage estimates how much of a waypoint route can be
// ridden offroad. Each waypoint is searched concurrently; the first
// lookup error cancels the rest.
func OffroadPercentage(ctx context.Context, finder TrackSearcher, waypoints []geo.Point) (int, error) {
	if len(waypoints) < 2 {
		return 0, nil
	}

	totals := make([]float64, len(waypoints))
	g, ctx := errgroup.WithContext(ctx)
	for i, wp := range waypoints {
		i, wp := i, wp
		g.Go(func() error {
			result, err := finder.FindTracks(ctx, wp.Lat, wp.Lon, waypointSearchRadiusKm)
			if err != nil {
				return err
			}
			totals[i] = result.TotalKm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var offroadKm float64
	for _, km := range totals {
		offroadKm += km
	}
	routeKm := geo.PathLengthKm(waypoints)
	if routeKm <= 0 {
		return 0, nil
	}

	if capKm := routeKm * maxOffroadShare; offroadKm > capKm {
		offroadKm = capKm
	}
	return int(math.Round(offroadKm / routeKm * 100)), nil
}
