// middleware/account.go
package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// AccountContextMiddleware extracts the caller account set by the Gateway.
// Wallet connection and signature verification happen upstream; by the time
// a request lands here, X-Account names a verified account address.
func AccountContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		account := c.Get("X-Account")
		if account == "" {
			log.Printf("❌ [ACCOUNT_CTX] X-Account required but missing: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-Account, request must come through gateway with a verified account",
			})
		}

		c.Locals("account", account)
		return c.Next()
	}
}

// Account reads the verified caller account out of the request context.
func Account(c *fiber.Ctx) string {
	if acct, ok := c.Locals("account").(string); ok {
		return acct
	}
	return ""
}
