package handlers

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/brewfinder/internal/models"
	"github.com/example/brewfinder/internal/services"
	"github.com/example/brewfinder/internal/utils"
)

// CafeHandler exposes the cafe listing with proximity search.
type CafeHandler struct {
	cafes *services.CafeService
}

// NewCafeHandler constructs a CafeHandler.
func NewCafeHandler(cafes *services.CafeService) *CafeHandler {
	return &CafeHandler{cafes: cafes}
}

type cafeResponse struct {
	models.Business
	DistanceM *float64 `json:"distance_m,omitempty"`
}

// List returns cafes filtered by text, paged, and optionally annotated
// and sorted by distance from (lat, lng).
func (h *CafeHandler) List(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	filter := services.CafeFilter{
		Query:  c.Query("search"),
		Limit:  pg.Limit,
		Offset: pg.Offset,
	}

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid coordinates")
		}
		filter.Center = &services.Coordinates{Lat: lat, Lng: lng}
	}

	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || radius < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid radius")
		}
		filter.RadiusM = radius
	}

	results, err := h.cafes.Search(filter)
	if err != nil {
		return mapServiceError(err)
	}

	// Full precision drives filtering and sorting; the response rounds
	// to a tenth of a meter.
	data := make([]cafeResponse, 0, len(results))
	for _, result := range results {
		row := cafeResponse{Business: result.Business}
		if result.DistanceM != nil {
			rounded := math.Round(*result.DistanceM*10) / 10
			row.DistanceM = &rounded
		}
		data = append(data, row)
	}

	return c.JSON(fiber.Map{"ok": true, "data": data})
}
