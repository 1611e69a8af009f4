package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Idenfo/UK-PEP-scrape/internal/scrape"
)

// HomeHandler serves GET /: service info and the endpoint map.
func HomeHandler(s *scrape.Scraper) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var lastUpdated any
		if t := s.LastUpdated(); t != nil {
			lastUpdated = t.Format(time.RFC3339)
		}
		return c.JSON(fiber.Map{
			"service": "UK Parliament Members Scraper",
			"status":  "active",
			"version": scrape.Version,
			"endpoints": fiber.Map{
				"/scrape/all":              "Scrape all government members and employees",
				"/scrape/mps":              "Scrape only MPs from House of Commons",
				"/scrape/lords":            "Scrape only members of House of Lords",
				"/scrape/committees":       "Scrape committee memberships",
				"/scrape/government-roles": "Scrape government roles",
				"/health":                  "Service health check",
				"/export/csv":              "Export scraped data to CSV files",
				"/metrics":                 "Prometheus metrics",
			},
			"last_updated": lastUpdated,
		})
	}
}
