// handlers/event_routes.go
package handlers

import (
	"strconv"

	"github.com/Jayanth4577/CryptoChuck/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App, eventService *services.EventService) {
	// 🔓 Recent events for indexers that poll
	app.Get("/events", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		events, err := eventService.Recent(limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(events)
	})

	// 🔓 Live event stream (SSE), optional ?kind= filter
	app.Get("/events/stream", func(c *fiber.Ctx) error {
		return eventService.StreamSSE(c)
	})
}
