package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/morepixel/BudgetOverlander/internal/cluster"
	"github.com/morepixel/BudgetOverlander/internal/region"
	"github.com/morepixel/BudgetOverlander/internal/routing"
	"github.com/morepixel/BudgetOverlander/internal/shared/geo"

	"github.com/google/uuid"
)

// ErrNoClusters means no cluster could be resolved from the request.
var ErrNoClusters = errors.New("planner: no clusters selected")

// DefaultMaxOffroadKmPerDay caps the riding distance inside a cluster.
const DefaultMaxOffroadKmPerDay = 80

// RouteProvider is the driving-route boundary. *routing.Client
// satisfies it.
type RouteProvider interface {
	DrivingRoute(ctx context.Context, from, to geo.Point) (routing.Connection, error)
}

// Assembler builds a multi-day route out of a region's clusters, one
// cluster per day, connected by provider routes. Provider calls are
// paced; a failed call degrades to a great-circle estimate instead of
// failing the whole route.
type Assembler struct {
	routes    RouteProvider
	delay     time.Duration
	fuelPrice float64
	now       func() time.Time
}

func NewAssembler(routes RouteProvider, delay time.Duration, fuelPricePerLiter float64) *Assembler {
	return &Assembler{
		routes:    routes,
		delay:     delay,
		fuelPrice: fuelPricePerLiter,
		now:       time.Now,
	}
}

// Assemble resolves the requested clusters in order and plans one day
// per cluster. Unknown cluster ids are skipped; an empty resolution is
// rejected before any provider call.
func (a *Assembler) Assemble(ctx context.Context, reg region.Region, req Request) (Route, error) {
	selected := make([]cluster.Cluster, 0, len(req.ClusterIDs))
	for _, id := range req.ClusterIDs {
		c, ok := reg.ClusterByID(id)
		if !ok {
			log.Printf("route assembly: skipping unknown cluster %q", id)
			continue
		}
		selected = append(selected, c)
	}
	if len(selected) == 0 {
		return Route{}, ErrNoClusters
	}

	maxOffroad := req.MaxOffroadKmPerDay
	if maxOffroad <= 0 {
		maxOffroad = DefaultMaxOffroadKmPerDay
	}
	fuelPrice := req.FuelPricePerLiter
	if fuelPrice <= 0 {
		fuelPrice = a.fuelPrice
	}

	pace := newPacer(a.delay)
	days := make([]Day, 0, len(selected))
	for i, c := range selected {
		planned := c.TotalLengthKm
		if planned > maxOffroad {
			planned = maxOffroad
		}

		day := Day{
			Day:         i + 1,
			ClusterID:   c.ID,
			Center:      c.Center,
			NearestTown: c.NearestTown,
			Difficulty:  c.AvgDifficulty,
			Offroad: DayOffroad{
				AvailableKm: c.TotalLengthKm,
				PlannedKm:   planned,
				TrackCount:  c.TrackCount,
			},
			OSMLink: osmLink(c.Center),
		}

		var connectionKm float64
		if i+1 < len(selected) {
			next := selected[i+1]
			conn := a.connect(ctx, pace, c.Center, next.Center)
			day.Connection = &conn
			day.ConnectsTo = next.ID
			connectionKm = conn.DistanceKm
		}

		day.Budget = CalculateBudget(planned, connectionKm, c.AvgDifficulty, fuelPrice)
		day.Total = DayTotal{
			OffroadKm:         planned,
			OnroadKm:          connectionKm,
			DistanceKm:        planned + connectionKm,
			OffroadPercentage: percentage(planned, planned+connectionKm),
		}

		days = append(days, day)
	}

	return Route{
		ID:         uuid.NewString(),
		RegionID:   reg.ID,
		RegionName: reg.Name,
		Days:       days,
		Summary:    summarize(days),
		CreatedAt:  a.now(),
	}, nil
}

// connect asks the provider for a driving route, waiting out the pacing
// delay first. Provider errors and expired contexts degrade to an
// estimated connection.
func (a *Assembler) connect(ctx context.Context, pace *pacer, from, to geo.Point) routing.Connection {
	if err := pace.wait(ctx); err != nil {
		return routing.Fallback(from, to)
	}

	conn, err := a.routes.DrivingRoute(ctx, from, to)
	if err != nil {
		log.Printf("route assembly: provider route failed, using estimate: %v", err)
		return routing.Fallback(from, to)
	}
	return conn
}

func summarize(days []Day) Summary {
	summary := Summary{TotalDays: len(days)}

	var diffSum int
	for _, d := range days {
		summary.OffroadKm += d.Total.OffroadKm
		summary.OnroadKm += d.Total.OnroadKm
		summary.TotalCost += d.Budget.Cost.Total
		summary.TotalTimeHours += d.Budget.Time.TotalHours
		summary.TotalFuelLiters += d.Budget.Fuel.TotalLiters
		diffSum += d.Difficulty
	}
	summary.TotalDistanceKm = summary.OffroadKm + summary.OnroadKm
	summary.OffroadPercentage = percentage(summary.OffroadKm, summary.TotalDistanceKm)
	if len(days) > 0 {
		summary.AvgDifficulty = diffSum / len(days)
	}
	return summary
}

func percentage(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total * 100
}

func osmLink(p geo.Point) string {
	return fmt.Sprintf("https://www.openstreetmap.org/#map=12/%.5f/%.5f", p.Lat, p.Lon)
}

// pacer spaces out consecutive provider calls. The first wait returns
// immediately; later waits block for the configured delay or until the
// context expires.
type pacer struct {
	delay time.Duration
	first bool
}

func newPacer(delay time.Duration) *pacer {
	return &pacer{delay: delay, first: true}
}

func (p *pacer) wait(ctx context.Context) error {
	if p.first {
		p.first = false
		return ctx.Err()
	}
	if p.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
