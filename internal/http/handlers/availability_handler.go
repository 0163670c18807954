package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tablefinder/internal/domain"
	"tablefinder/internal/log"
	"tablefinder/internal/services"
	"tablefinder/internal/validate"
)

const searchFailedMsg = "could not search tables"

type AvailabilityHandler struct {
	Avail *services.AvailabilityService
}

type searchRequest struct {
	Date   string          `json:"date"`
	Time   string          `json:"time"`
	Guests json.RawMessage `json:"guests"`
}

// Search handles POST /api/tables/available with a JSON body.
func (h *AvailabilityHandler) Search(c *fiber.Ctx) error {
	var req searchRequest
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return h.fail(c, domain.ValidationError{Msg: "request body must be a JSON object with date, time and guests"})
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return h.fail(c, domain.ValidationError{Msg: "request body must be a JSON object with date, time and guests", Err: err})
	}
	guests, err := guestsFromJSON(req.Guests)
	if err != nil {
		return h.fail(c, err)
	}
	return h.search(c, domain.AvailabilityQuery{Date: req.Date, Time: req.Time, Guests: guests})
}

// SearchQuery handles GET /api/v1/tables/available?date=&time=&guests=.
func (h *AvailabilityHandler) SearchQuery(c *fiber.Ctx) error {
	guests, err := guestsFromText(c.Query("guests"))
	if err != nil {
		return h.fail(c, err)
	}
	return h.search(c, domain.AvailabilityQuery{Date: c.Query("date"), Time: c.Query("time"), Guests: guests})
}

func (h *AvailabilityHandler) search(c *fiber.Ctx, q domain.AvailabilityQuery) error {
	tables, err := h.Avail.Search(c.UserContext(), q)
	if err != nil {
		return h.fail(c, err)
	}
	log.Info(c, "tables.search", map[string]any{
		"date": q.Date, "time": q.Time, "guests": q.Guests, "found": len(tables),
	})
	return c.JSON(tables)
}

func (h *AvailabilityHandler) fail(c *fiber.Ctx, err error) error {
	var ve domain.ValidationError
	if errors.As(err, &ve) {
		c.Status(fiber.StatusBadRequest)
		log.Security(c, "validation.fail", map[string]any{"field": ve.Field})
		return c.JSON(fiber.Map{"error": ve.Error()})
	}
	c.Status(fiber.StatusInternalServerError)
	log.Error(c, "tables.search.fail", err, nil)
	return c.JSON(fiber.Map{"error": searchFailedMsg})
}

// guestsFromJSON accepts a JSON integer or a string holding one. Fractions,
// exponents, booleans and null are rejected rather than coerced.
func guestsFromJSON(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, domain.ValidationError{Field: "guests", Msg: "is required"}
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, domain.ValidationError{Field: "guests", Msg: "must be a whole number of at least 1", Err: err}
		}
	}
	return guestsFromText(text)
}

func guestsFromText(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, domain.ValidationError{Field: "guests", Msg: "is required"}
	}
	n, ok := validate.Guests(s)
	if !ok {
		return 0, domain.ValidationError{Field: "guests", Msg: "must be a whole number of at least 1"}
	}
	return n, nil
}
