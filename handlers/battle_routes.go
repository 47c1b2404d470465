// handlers/battle_routes.go
package handlers

import (
	"strconv"

	"github.com/Jayanth4577/CryptoChuck/middleware"
	"github.com/Jayanth4577/CryptoChuck/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBattleRoutes(app *fiber.App, battleService *services.BattleService) {
	// 🔓 Public reads
	app.Get("/battles", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		battles, err := battleService.RecentBattles(limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(battles)
	})

	app.Get("/battles/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid battle id"})
		}
		battle, err := battleService.GetBattle(id)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "battle not found"})
		}
		return c.JSON(battle)
	})

	app.Get("/players/:account/battles", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		battles, err := battleService.BattlesByPlayer(c.Params("account"), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(battles)
	})

	// 🔐 Fight, resolves synchronously in one transaction
	secured := app.Group("/", middleware.AccountContextMiddleware())

	secured.Post("/battles", func(c *fiber.Ctx) error {
		var req struct {
			Hen1 uint64 `json:"hen1"`
			Hen2 uint64 `json:"hen2"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		battle, err := battleService.Fight(middleware.Account(c), req.Hen1, req.Hen2)
		if err != nil {
			return engineError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(battle)
	})
}
