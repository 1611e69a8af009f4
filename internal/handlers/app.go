// Package handlers wires the HTTP surface: fiber routes, JSON envelopes,
// and the error taxonomy mapping (validation 400, upstream 502, write
// failures 500).
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/Idenfo/UK-PEP-scrape/internal/export"
	"github.com/Idenfo/UK-PEP-scrape/internal/metrics"
	"github.com/Idenfo/UK-PEP-scrape/internal/scrape"
)

// NewApp builds the fiber application with every route registered.
func NewApp(s *scrape.Scraper, ex *export.Exporter) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "UK Parliament Members Scraper",
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	app.Get("/", HomeHandler(s))
	app.Get("/health", HealthHandler(s))

	app.Get("/scrape/all", ScrapeAllHandler(s))
	app.Get("/scrape/mps", ScrapeMPsHandler(s))
	app.Get("/scrape/lords", ScrapeLordsHandler(s))
	app.Get("/scrape/committees", ScrapeCommitteesHandler(s))
	app.Get("/scrape/government-roles", ScrapeGovernmentRolesHandler(s))

	app.Post("/export/csv", ExportCSVHandler(s, ex))

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	app.Use(NotFoundHandler())
	return app
}
