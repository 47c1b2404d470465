// middleware/admin.go
package middleware

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
)

// AdminOnlyMiddleware gates the administrative surface (race creation, fund
// withdrawal) behind a single configured administrator account. This is an
// explicit capability check against ADMIN_ACCOUNT, not role inheritance.
func AdminOnlyMiddleware() fiber.Handler {
	admin := os.Getenv("ADMIN_ACCOUNT")
	if admin == "" {
		log.Fatal("❌ ADMIN_ACCOUNT is not set; admin surface cannot be gated")
	}

	return func(c *fiber.Ctx) error {
		account := Account(c)
		if account != admin {
			log.Printf("🚫 [ADMIN] %s denied for %s", account, c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "caller is not the administrator",
			})
		}
		return c.Next()
	}
}
