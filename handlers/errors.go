// handlers/errors.go
package handlers

import (
	"errors"

	"github.com/Jayanth4577/CryptoChuck/services"

	"github.com/gofiber/fiber/v2"
)

// engineError maps engine sentinels to HTTP statuses. Every rejected engine
// call left state untouched, so these are safe for the caller to retry with
// corrected input.
func engineError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch {
	case errors.Is(err, services.ErrHenNotFound),
		errors.Is(err, services.ErrRaceNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrNotAdmin),
		errors.Is(err, services.ErrNotBettor):
		status = fiber.StatusForbidden
	case errors.Is(err, services.ErrInsufficientFee),
		errors.Is(err, services.ErrInsufficientPayment),
		errors.Is(err, services.ErrIncorrectEntryFee),
		errors.Is(err, services.ErrBetOutOfRange),
		errors.Is(err, services.ErrInvalidPosition),
		errors.Is(err, services.ErrSelfBreeding),
		errors.Is(err, services.ErrSelfBattle):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrOnCooldown),
		errors.Is(err, services.ErrAlreadyBred),
		errors.Is(err, services.ErrGenerationCap),
		errors.Is(err, services.ErrAlreadyEntered),
		errors.Is(err, services.ErrHenNotAlive),
		errors.Is(err, services.ErrRaceNotOpen),
		errors.Is(err, services.ErrRaceFull),
		errors.Is(err, services.ErrRaceNotStarted),
		errors.Is(err, services.ErrNotEnoughParticipants),
		errors.Is(err, services.ErrTooEarly),
		errors.Is(err, services.ErrAlreadyComplete),
		errors.Is(err, services.ErrBetsClosed),
		errors.Is(err, services.ErrAlreadyClaimed),
		errors.Is(err, services.ErrEventNotComplete),
		errors.Is(err, services.ErrNoActiveListing),
		errors.Is(err, services.ErrTooManyOpenRaces):
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
