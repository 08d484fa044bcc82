package track

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const defaultSearchRadiusKm = 30

func RegisterRoutes(r fiber.Router, finder *Finder) {
	r.Get("/search", func(c *fiber.Ctx) error {
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil || lat < -90 || lat > 90 {
			return fiber.NewError(fiber.StatusBadRequest, "lat is required and must be between -90 and 90")
		}
		lon, err := strconv.ParseFloat(c.Query("lon"), 64)
		if err != nil || lon < -180 || lon > 180 {
			return fiber.NewError(fiber.StatusBadRequest, "lon is required and must be between -180 and 180")
		}

		radiusKm := float64(defaultSearchRadiusKm)
		if raw := c.Query("radius_km"); raw != "" {
			radiusKm, err = strconv.ParseFloat(raw, 64)
			if err != nil || radiusKm <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "radius_km must be a positive number")
			}
		}

		result, err := finder.FindTracks(c.Context(), lat, lon, radiusKm)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(result)
	})
}
