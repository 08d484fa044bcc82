package planner

import (
	"errors"

	"github.com/morepixel/BudgetOverlander/internal/region"
	"github.com/morepixel/BudgetOverlander/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, regions *region.Service, assembler *Assembler, finder TrackSearcher, authMiddleware fiber.Handler) {
	r.Post("/calculate", authMiddleware, func(c *fiber.Ctx) error {
		var req Request
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if req.RegionID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "region_id is required")
		}

		reg, err := regions.Get(c.Context(), req.RegionID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "region not found")
		}

		route, err := assembler.Assemble(c.Context(), reg, req)
		if err != nil {
			if errors.Is(err, ErrNoClusters) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(route)
	})

	r.Post("/offroad-percentage", func(c *fiber.Ctx) error {
		var body struct {
			Waypoints []geo.Point `json:"waypoints"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if len(body.Waypoints) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "at least two waypoints are required")
		}

		pct, err := OffroadPercentage(c.Context(), finder, body.Waypoints)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(fiber.Map{"offroad_percentage": pct})
	})
}
