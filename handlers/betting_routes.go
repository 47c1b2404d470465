// handlers/betting_routes.go
package handlers

import (
	"strconv"

	"github.com/Jayanth4577/CryptoChuck/middleware"
	"github.com/Jayanth4577/CryptoChuck/models"
	"github.com/Jayanth4577/CryptoChuck/services"
	"github.com/Jayanth4577/CryptoChuck/workers"

	"github.com/gofiber/fiber/v2"
)

func SetupBettingRoutes(app *fiber.App, bettingService *services.BettingService, oddsBoard *workers.OddsBoard) {
	// 🔓 Cached odds board, refreshed by the odds worker
	app.Get("/odds/board", func(c *fiber.Ctx) error {
		board, updatedAt := oddsBoard.Snapshot()
		return c.JSON(fiber.Map{"races": board, "updated_at": updatedAt})
	})

	// 🔓 Current odds, display only. Placement snapshots its own.
	app.Get("/odds/battle/:battleId/:henId", func(c *fiber.Ctx) error {
		battleID, err1 := strconv.ParseUint(c.Params("battleId"), 10, 64)
		henID, err2 := strconv.ParseUint(c.Params("henId"), 10, 64)
		if err1 != nil || err2 != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid ids"})
		}
		odds, err := bettingService.CurrentBattleOdds(battleID, henID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"odds_x100": odds})
	})

	app.Get("/odds/race/:raceId/:henId", func(c *fiber.Ctx) error {
		raceID, err1 := strconv.ParseUint(c.Params("raceId"), 10, 64)
		henID, err2 := strconv.ParseUint(c.Params("henId"), 10, 64)
		if err1 != nil || err2 != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid ids"})
		}
		odds, err := bettingService.CurrentRaceOdds(raceID, henID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"odds_x100": odds})
	})

	app.Get("/bets/limits", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"min_bet": services.MinBet, "max_bet": services.MaxBet})
	})

	// 🔐 Betting
	secured := app.Group("/", middleware.AccountContextMiddleware())

	secured.Get("/bets", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		bets, err := bettingService.BetsByBettor(middleware.Account(c), limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(bets)
	})

	secured.Post("/bets", func(c *fiber.Ctx) error {
		var req struct {
			Kind     string `json:"kind"` // battle | race
			EventID  uint64 `json:"event_id"`
			HenID    uint64 `json:"hen_id"`
			Position int    `json:"position"`
			Amount   int64  `json:"amount"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.Kind != models.BetKindBattle && req.Kind != models.BetKindRace {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be battle or race"})
		}
		if req.Position == 0 {
			req.Position = 1
		}
		bet, err := bettingService.PlaceBet(middleware.Account(c), req.Kind, req.EventID, req.HenID, req.Position, req.Amount)
		if err != nil {
			return engineError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(bet)
	})

	secured.Post("/bets/:id/claim", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bet id"})
		}
		payout, err := bettingService.ClaimBet(middleware.Account(c), id)
		if err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"bet_id": id, "payout": payout})
	})
}
