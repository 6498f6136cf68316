package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/brewfinder/internal/middleware"
	"github.com/example/brewfinder/internal/services"
)

// ProfileHandler serves the authenticated account's own data.
type ProfileHandler struct {
	accounts *services.AccountService
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(accounts *services.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// Get returns the current account.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	session, ok := middleware.GetCurrentSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}

	account, err := h.accounts.GetAccount(session.AccountID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"ok": true, "account": account})
}
