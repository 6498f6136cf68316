package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/brewfinder/internal/services"
	"github.com/example/brewfinder/internal/store"
)

// mapServiceError translates domain outcomes into HTTP errors. Anything
// unrecognized bubbles up to Fiber's default handler as a 500 with a
// generic message; the detail stays in the server log.
func mapServiceError(err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return fiber.NewError(fiber.StatusBadRequest, ve.Message)
	case errors.Is(err, services.ErrCodeNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCodeUsed),
		errors.Is(err, services.ErrCodeExpired),
		errors.Is(err, services.ErrCodeMismatch),
		errors.Is(err, services.ErrEmailNotVerified):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "not found")
	}
	return err
}
