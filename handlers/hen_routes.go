// handlers/hen_routes.go
package handlers

import (
	"path/filepath"
	"strconv"

	"github.com/Jayanth4577/CryptoChuck/middleware"
	"github.com/Jayanth4577/CryptoChuck/services"
	"github.com/Jayanth4577/CryptoChuck/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

func SetupHenRoutes(app *fiber.App, henService *services.HenService, walletService *services.WalletService) {
	// 🔓 Public reads
	app.Get("/hens/:id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid hen id"})
		}
		hen, err := henService.GetHen(id)
		if err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{
			"hen":       hen,
			"level":     hen.Level(),
			"tier":      services.TierName(services.TierForXP(hen.XP)),
			"power_sum": hen.TotalPower(),
		})
	})

	app.Get("/owners/:account/hens", func(c *fiber.Ctx) error {
		hens, err := henService.HensByOwner(c.Params("account"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(hens)
	})

	app.Get("/marketplace/listings", func(c *fiber.Ctx) error {
		listings, err := henService.ActiveListings()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(listings)
	})

	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		hens, err := henService.Leaderboard(limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(hens)
	})

	app.Get("/wallets/:account", func(c *fiber.Ctx) error {
		balance, err := walletService.BalanceOf(c.Params("account"))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"account": c.Params("account"), "balance": balance})
	})

	// 🔐 Mutations, require a verified caller account
	secured := app.Group("/", middleware.AccountContextMiddleware())

	secured.Post("/hens/mint", func(c *fiber.Ctx) error {
		var req struct {
			Name    string `json:"name"`
			Payment int64  `json:"payment"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		hen, err := henService.MintHen(middleware.Account(c), req.Name, req.Payment)
		if err != nil {
			return engineError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(hen)
	})

	secured.Post("/hens/:id/transfer", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid hen id"})
		}
		var req struct {
			To string `json:"to"`
		}
		if err := c.BodyParser(&req); err != nil || req.To == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to account is required"})
		}
		if err := henService.Transfer(id, middleware.Account(c), req.To); err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"message": "transferred", "hen_id": id, "to": req.To})
	})

	secured.Post("/hens/:id/list", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid hen id"})
		}
		var req struct {
			Price int64 `json:"price"`
		}
		if err := c.BodyParser(&req); err != nil || req.Price <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "positive price is required"})
		}
		if err := henService.ListForSale(id, middleware.Account(c), req.Price); err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"message": "listed", "hen_id": id, "price": req.Price})
	})

	secured.Post("/hens/:id/delist", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid hen id"})
		}
		if err := henService.Delist(id, middleware.Account(c)); err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"message": "delisted", "hen_id": id})
	})

	secured.Post("/hens/:id/buy", func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid hen id"})
		}
		var req struct {
			Payment int64 `json:"payment"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if err := henService.Purchase(id, middleware.Account(c), req.Payment); err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"message": "purchased", "hen_id": id})
	})

	// Portrait upload → R2
	secured.Post("/hens/:id/portrait", func(c *fiber.Ctx) error {
		if !utils.R2Enabled() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "portrait storage not configured"})
		}
		id, err := strconv.ParseUint(c.Params("id"), 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid hen id"})
		}
		hen, err := henService.GetHen(id)
		if err != nil {
			return engineError(c, err)
		}

		portrait, err := c.FormFile("portrait")
		if err != nil || portrait.Size == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "portrait file is required"})
		}
		ext := filepath.Ext(portrait.Filename)
		if ext == "" {
			ext = ".png"
		}
		key := "hens/" + slug.Make(hen.Name) + "-" + uuid.NewString() + ext
		url, err := utils.UploadFileToR2(portrait, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload portrait"})
		}
		if err := henService.SetPortraitURL(id, middleware.Account(c), url); err != nil {
			return engineError(c, err)
		}
		return c.JSON(fiber.Map{"portrait_url": url})
	})

	// 🔐❗ Treasury withdraw
	admin := app.Group("/admin", middleware.AccountContextMiddleware(), middleware.AdminOnlyMiddleware())

	admin.Post("/treasury/withdraw", func(c *fiber.Ctx) error {
		withdrawn, err := walletService.WithdrawTreasury(middleware.Account(c))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"withdrawn": withdrawn})
	})
}
