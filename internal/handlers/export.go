package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Idenfo/UK-PEP-scrape/internal/export"
	"github.com/Idenfo/UK-PEP-scrape/internal/metrics"
	"github.com/Idenfo/UK-PEP-scrape/internal/scrape"
)

// ExportCSVHandler serves POST /export/csv. The type parameter is
// validated against the recognized categories before any upstream fetch;
// an unknown value never reaches the source.
func ExportCSVHandler(s *scrape.Scraper, ex *export.Exporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawType := c.Query("type", "all")
		cat, err := scrape.ParseCategory(rawType)
		if err != nil {
			return mapError(c, "Failed to export CSV files", err)
		}

		withDates := cat == scrape.CategoryMPs || cat == scrape.CategoryLords || cat == scrape.CategoryAll
		o, err := parseOptions(c, withDates)
		if err != nil {
			return mapError(c, "Failed to export CSV files", err)
		}

		datasets, err := s.Datasets(context.Background(), cat, o)
		if err != nil {
			metrics.ExportErrors.Inc()
			return mapError(c, "Failed to export CSV files", err)
		}

		timestamp := export.Timestamp(time.Now())
		files, err := ex.Export(datasets, timestamp)
		if err != nil {
			metrics.ExportErrors.Inc()
			return mapError(c, "Failed to export CSV files", err)
		}

		exportID := uuid.NewString()
		metrics.CSVFilesWritten.Add(float64(len(files)))
		slog.Info("csv export completed",
			"export_id", exportID,
			"type", rawType,
			"files", len(files),
		)

		return c.JSON(fiber.Map{
			"success":          true,
			"message":          fmt.Sprintf("Successfully exported %s data to CSV", rawType),
			"data_type":        rawType,
			"export_id":        exportID,
			"exported_files":   files,
			"file_count":       len(files),
			"output_directory": ex.Dir + "/",
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
		})
	}
}
