package handlers

import (
	"tracker/config"

	"github.com/gofiber/fiber/v2"
)

// StatusHandler registers the public liveness endpoint.
func StatusHandler(router fiber.Router, config config.Config) {
	router.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"environment": config.Environment,
		})
	})
}
