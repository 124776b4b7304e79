package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"tracker/internal/logger"
	"tracker/internal/repositories"
	"tracker/internal/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// parseEntryBody splits a tracking request into its calendar date and the
// domain field map. A missing date means "today".
func parseEntryBody(c *fiber.Ctx, dates *utils.DateValidator) (time.Time, map[string]any, error) {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return time.Time{}, nil, fmt.Errorf("failed to parse request body: %w", err)
	}

	date := time.Now().UTC()
	if raw, ok := body["date"]; ok {
		str, ok := raw.(string)
		if !ok {
			return time.Time{}, nil, fmt.Errorf("date must be a string")
		}
		result := dates.ValidateAndConvert(str)
		if !result.IsValid {
			return time.Time{}, nil, fmt.Errorf("invalid date %q", str)
		}
		date = result.ParsedTime
		delete(body, "date")
	}

	return date, body, nil
}

// parseListOptions reads the optional date range and pagination from the
// query string.
func parseListOptions(c *fiber.Ctx, dates *utils.DateValidator) (repositories.ListOptions, int, error) {
	var opts repositories.ListOptions

	for param, target := range map[string]**time.Time{
		"start_date": &opts.StartDate,
		"end_date":   &opts.EndDate,
	} {
		if raw := c.Query(param); raw != "" {
			result := dates.ValidateAndConvert(raw)
			if !result.IsValid {
				return opts, 0, fmt.Errorf("invalid %s %q", param, raw)
			}
			parsed := result.ParsedTime
			*target = &parsed
		}
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	perPage := c.QueryInt("per_page", defaultPerPage)
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	opts.Limit = perPage
	opts.Offset = (page - 1) * perPage

	return opts, page, nil
}

// sendCSV writes the rows as a CSV download attachment.
func sendCSV(c *fiber.Ctx, filename string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	if err := utils.WriteCSV(&buf, header, rows); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// entryError maps store errors to HTTP responses. NotFound and Forbidden
// both answer 404 so entry IDs cannot be probed across owners; BadInput is
// a collaborator defect and answers 500 after logging.
func entryError(c *fiber.Ctx, log logger.Logger, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, repositories.ErrForbidden):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "entry not found"})
	case errors.Is(err, repositories.ErrConflict):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"message": "conflicting write, please retry"})
	case errors.Is(err, repositories.ErrBadInput):
		log.Er("store rejected field data", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error"})
	}
}
