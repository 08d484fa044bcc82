package region

import (
	"errors"

	"github.com/morepixel/BudgetOverlander/internal/cluster"
	"github.com/morepixel/BudgetOverlander/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

type clusterSummary struct {
	ID            string    `json:"id"`
	TrackCount    int       `json:"track_count"`
	TotalLengthKm float64   `json:"total_length_km"`
	AvgDifficulty int       `json:"avg_difficulty"`
	NearestTown   string    `json:"nearest_town"`
	Center        geo.Point `json:"center"`
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(Catalog)
	})

	r.Post("/:key/collect", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			ClusterRadiusKm float64 `json:"cluster_radius_km"`
		}
		// empty body keeps the default radius
		_ = c.BodyParser(&body)

		region, err := svc.Collect(c.Context(), c.Params("key"), body.ClusterRadiusKm)
		if err != nil {
			if errors.Is(err, ErrUnknownRegion) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			if errors.Is(err, ErrNoTracks) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(region)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		region, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "region not found")
		}
		return c.JSON(region)
	})

	r.Get("/:id/clusters", func(c *fiber.Ctx) error {
		region, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "region not found")
		}
		return c.JSON(summaries(region.Clusters))
	})
}

func summaries(clusters []cluster.Cluster) []clusterSummary {
	out := make([]clusterSummary, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, clusterSummary{
			ID:            c.ID,
			TrackCount:    c.TrackCount,
			TotalLengthKm: c.TotalLengthKm,
			AvgDifficulty: c.AvgDifficulty,
			NearestTown:   c.NearestTown,
			Center:        c.Center,
		})
	}
	return out
}
