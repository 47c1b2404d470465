// handlers/breeding_routes.go
package handlers

import (
	"strconv"

	"github.com/Jayanth4577/CryptoChuck/middleware"
	"github.com/Jayanth4577/CryptoChuck/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBreedingRoutes(app *fiber.App, breedingService *services.BreedingService) {
	// 🔓 Public reads
	app.Get("/breeding/pairs/:a/:b", func(c *fiber.Ctx) error {
		a, errA := strconv.ParseUint(c.Params("a"), 10, 64)
		b, errB := strconv.ParseUint(c.Params("b"), 10, 64)
		if errA != nil || errB != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid hen ids"})
		}
		bred, err := breedingService.HasBred(a, b)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"has_bred": bred})
	})

	app.Get("/hens/:id/offspring", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid hen id"})
		}
		offspring, err := breedingService.Offspring(id)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"offspring": offspring})
	})

	// 🔐 Breed
	secured := app.Group("/", middleware.AccountContextMiddleware())

	secured.Post("/breeding/breed", func(c *fiber.Ctx) error {
		var req struct {
			ParentA uint64 `json:"parent_a"`
			ParentB uint64 `json:"parent_b"`
			Fee     int64  `json:"fee"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		offspring, err := breedingService.Breed(middleware.Account(c), req.ParentA, req.ParentB, req.Fee)
		if err != nil {
			return engineError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(offspring)
	})
}
