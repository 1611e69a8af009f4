package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Idenfo/UK-PEP-scrape/internal/scrape"
)

// HealthHandler serves GET /health.
func HealthHandler(s *scrape.Scraper) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cacheStatus := "empty"
		if s.Cached() != nil {
			cacheStatus = "populated"
		}
		return c.JSON(fiber.Map{
			"status":       "healthy",
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"cache_status": cacheStatus,
		})
	}
}
