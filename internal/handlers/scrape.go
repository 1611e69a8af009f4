package handlers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Idenfo/UK-PEP-scrape/internal/model"
	"github.com/Idenfo/UK-PEP-scrape/internal/scrape"
)

// parseOptions reads the filter query parameters. Date parameters are
// validated only when the category supports them (member queries);
// elsewhere they are ignored, matching what the upstream source accepts.
func parseOptions(c *fiber.Ctx, withDates bool) (scrape.Options, error) {
	o := scrape.Options{
		CurrentOnly: strings.EqualFold(c.Query("current"), "true"),
	}
	if !withDates {
		return o, nil
	}

	dates := []struct {
		field string
		dst   *string
	}{
		{"from_date", &o.FromDate},
		{"to_date", &o.ToDate},
		{"on_date", &o.OnDate},
	}
	for _, d := range dates {
		v := c.Query(d.field)
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return scrape.Options{}, &InvalidDateError{Field: d.field, Value: v}
		}
		*d.dst = v
	}
	return o, nil
}

// metadataMap builds the metadata block echoing the applied filters.
func metadataMap(dataType string, o scrape.Options) fiber.Map {
	m := fiber.Map{
		"scraped_at": time.Now().UTC().Format(time.RFC3339),
		"data_type":  dataType,
	}
	if o.CurrentOnly {
		m["filter_current"] = true
	}
	if o.FromDate != "" {
		m["from_date"] = o.FromDate
	}
	if o.ToDate != "" {
		m["to_date"] = o.ToDate
	}
	if o.OnDate != "" {
		m["on_date"] = o.OnDate
	}
	return m
}

// ScrapeAllHandler serves GET /scrape/all. With cache=true the last full
// snapshot is returned as-is when one exists; otherwise a fresh scrape
// runs (and, when unfiltered, replaces the cached snapshot).
func ScrapeAllHandler(s *scrape.Scraper) fiber.Handler {
	return func(c *fiber.Ctx) error {
		useCache := strings.EqualFold(c.Query("cache"), "true")
		if useCache {
			if data := s.Cached(); data != nil {
				slog.Info("returning cached snapshot")
				return c.JSON(data)
			}
		}

		o, err := parseOptions(c, true)
		if err != nil {
			return mapError(c, "Failed to scrape data", err)
		}

		data, err := s.ScrapeAll(context.Background(), o)
		if err != nil {
			return mapError(c, "Failed to scrape data", err)
		}
		return c.JSON(data)
	}
}

// ScrapeMPsHandler serves GET /scrape/mps.
func ScrapeMPsHandler(s *scrape.Scraper) fiber.Handler {
	return memberHandler(s, "Members of Parliament - House of Commons", "members_of_parliament",
		"Failed to scrape MPs data", (*scrape.Scraper).ScrapeMPs)
}

// ScrapeLordsHandler serves GET /scrape/lords.
func ScrapeLordsHandler(s *scrape.Scraper) fiber.Handler {
	return memberHandler(s, "Members of House of Lords", "house_of_lords",
		"Failed to scrape Lords data", (*scrape.Scraper).ScrapeLords)
}

func memberHandler(
	s *scrape.Scraper,
	dataType, collectionKey, errTitle string,
	fetch func(*scrape.Scraper, context.Context, scrape.Options) ([]model.Member, error),
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		o, err := parseOptions(c, true)
		if err != nil {
			return mapError(c, errTitle, err)
		}

		members, err := fetch(s, context.Background(), o)
		if err != nil {
			return mapError(c, errTitle, err)
		}

		return c.JSON(fiber.Map{
			"metadata":    metadataMap(dataType, o),
			collectionKey: members,
			"summary": fiber.Map{
				"total_count":   len(members),
				"current_count": scrape.CountCurrent(members),
			},
		})
	}
}

// ScrapeCommitteesHandler serves GET /scrape/committees.
func ScrapeCommitteesHandler(s *scrape.Scraper) fiber.Handler {
	return func(c *fiber.Ctx) error {
		o, err := parseOptions(c, false)
		if err != nil {
			return mapError(c, "Failed to scrape committees data", err)
		}

		committees, err := s.ScrapeCommitteeMemberships(context.Background(), o)
		if err != nil {
			return mapError(c, "Failed to scrape committees data", err)
		}

		return c.JSON(fiber.Map{
			"metadata":              metadataMap("Committee Memberships", o),
			"committee_memberships": committees,
			"summary": fiber.Map{
				"total_mps_committee_memberships":   len(committees.MPs),
				"total_lords_committee_memberships": len(committees.Lords),
			},
		})
	}
}

// ScrapeGovernmentRolesHandler serves GET /scrape/government-roles.
func ScrapeGovernmentRolesHandler(s *scrape.Scraper) fiber.Handler {
	return func(c *fiber.Ctx) error {
		o, err := parseOptions(c, false)
		if err != nil {
			return mapError(c, "Failed to scrape government roles data", err)
		}

		roles, err := s.ScrapeGovernmentRoles(context.Background(), o)
		if err != nil {
			return mapError(c, "Failed to scrape government roles data", err)
		}

		return c.JSON(fiber.Map{
			"metadata":         metadataMap("Government Roles", o),
			"government_roles": roles,
			"summary": fiber.Map{
				"total_mps_government_roles":   len(roles.MPs),
				"total_lords_government_roles": len(roles.Lords),
			},
		})
	}
}
