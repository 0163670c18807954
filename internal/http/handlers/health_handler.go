package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"tablefinder/internal/log"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	Store Pinger
}

func (h *HealthHandler) Ping(c *fiber.Ctx) error { return c.SendString("pong") }

// Healthz reports whether the store answers.
func (h *HealthHandler) Healthz(c *fiber.Ctx) error {
	if err := h.Store.Ping(c.UserContext()); err != nil {
		c.Status(fiber.StatusServiceUnavailable)
		log.Error(c, "health.store.fail", err, nil)
		return c.JSON(fiber.Map{"ok": false})
	}
	return c.JSON(fiber.Map{"ok": true})
}
