package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
)

// pageFromQuery lee ?limit=&offset=. Los límites por defecto los aplica cada caso de uso.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
}

// timeRangeFromQuery lee ?from=&to= en RFC3339 o YYYY-MM-DD; "to" con solo fecha incluye el día completo.
func timeRangeFromQuery(c *fiber.Ctx) (from, to *time.Time, err error) {
	if from, err = parseQueryTime(c.Query("from"), false); err != nil {
		return nil, nil, domain.Invalid("from: %v", err)
	}
	if to, err = parseQueryTime(c.Query("to"), true); err != nil {
		return nil, nil, domain.Invalid("to: %v", err)
	}
	return from, to, nil
}

func parseQueryTime(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
