package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Idenfo/UK-PEP-scrape/internal/export"
	"github.com/Idenfo/UK-PEP-scrape/internal/parliament"
	"github.com/Idenfo/UK-PEP-scrape/internal/scrape"
)

// errorBody is the error envelope every failure is rendered as.
type errorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func writeError(c *fiber.Ctx, status int, title, message string) error {
	return c.Status(status).JSON(errorBody{
		Error:     title,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// InvalidDateError reports a malformed date query parameter.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return e.Field + " must be a YYYY-MM-DD date, got " + e.Value
}

// mapError renders err as the error envelope: validation failures map to
// 400, upstream failures to 502 with the cause logged but not leaked,
// write failures to 500. title names the failed operation.
func mapError(c *fiber.Ctx, title string, err error) error {
	var invalidDate *InvalidDateError
	if errors.As(err, &invalidDate) {
		return writeError(c, fiber.StatusBadRequest, "Invalid date format", invalidDate.Error())
	}

	var unknownCategory *scrape.UnknownCategoryError
	if errors.As(err, &unknownCategory) {
		return writeError(c, fiber.StatusBadRequest, "Invalid data type", unknownCategory.Error())
	}

	var sourceErr *parliament.SourceError
	if errors.As(err, &sourceErr) {
		slog.Error("upstream fetch failed", "resource", sourceErr.Resource, "error", sourceErr.Err)
		return writeError(c, fiber.StatusBadGateway, title, "upstream data source unavailable")
	}

	var writeErr *export.WriteError
	if errors.As(err, &writeErr) {
		slog.Error("csv write failed", "path", writeErr.Path, "error", writeErr.Err)
		return writeError(c, fiber.StatusInternalServerError, title, "could not write output files")
	}

	slog.Error("request failed", "error", err)
	return writeError(c, fiber.StatusInternalServerError, title, "An unexpected error occurred")
}

// ErrorHandler is the fiber application error handler; it renders
// anything escaping a handler (including panics recovered by the
// middleware) as the JSON envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return writeError(c, fiberErr.Code, fiberErr.Message, fiberErr.Message)
	}
	return mapError(c, "Internal server error", err)
}

// NotFoundHandler renders unknown routes as a 404 envelope. Register it
// after every route.
func NotFoundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return writeError(c, fiber.StatusNotFound, "Endpoint not found",
			"The requested endpoint does not exist")
	}
}
