// handlers/racing_routes.go
package handlers

import (
	"strconv"

	"github.com/Jayanth4577/CryptoChuck/middleware"
	"github.com/Jayanth4577/CryptoChuck/models"
	"github.com/Jayanth4577/CryptoChuck/services"

	"github.com/gofiber/fiber/v2"
)

func SetupRacingRoutes(app *fiber.App, racingService *services.RacingService) {
	// 🔓 Public reads
	app.Get("/races", func(c *fiber.Ctx) error {
		status := c.Query("status", models.RaceStatusOpen)
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		races, err := racingService.RacesByStatus(status, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(races)
	})

	app.Get("/races/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid race id"})
		}
		race, err := racingService.GetRace(id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "race not found"})
		}
		return c.JSON(race)
	})

	// 🔐 Authenticated actions
	secured := app.Group("/", middleware.AccountContextMiddleware())

	secured.Post("/races/:id/enter", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid race id"})
		}
		var req struct {
			HenID uint64 `json:"hen_id"`
			Fee   int64  `json:"fee"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if err := racingService.EnterRace(middleware.Account(c), id, req.HenID, req.Fee); err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"message": "entered", "race_id": id, "hen_id": req.HenID})
	})

	// Anyone may settle once the duration has elapsed; the scheduler is just
	// a convenience caller.
	secured.Post("/races/:id/complete", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid race id"})
		}
		if err := racingService.CompleteRace(middleware.Account(c), id); err != nil {
			return engineError(c, err)
		}
		race, err := racingService.GetRace(id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(race)
	})

	// 🔐❗ Admin surface
	admin := app.Group("/admin", middleware.AccountContextMiddleware(), middleware.AdminOnlyMiddleware())

	admin.Post("/races", func(c *fiber.Ctx) error {
		var req struct {
			EntryFee        int64 `json:"entry_fee"`
			MaxParticipants int   `json:"max_participants"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		race, err := racingService.CreateRace(middleware.Account(c), req.EntryFee, req.MaxParticipants)
		if err != nil {
			return engineError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(race)
	})

	admin.Post("/races/:id/start", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid race id"})
		}
		if err := racingService.StartRace(middleware.Account(c), id); err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"message": "started", "race_id": id})
	})
}
