package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/brewfinder/internal/services"
)

// OTPHandler exposes passcode issuance and verification.
type OTPHandler struct {
	otp *services.OTPService
}

// NewOTPHandler constructs an OTPHandler.
func NewOTPHandler(otp *services.OTPService) *OTPHandler {
	return &OTPHandler{otp: otp}
}

type issueOTPRequest struct {
	Email string `json:"email"`
	Kind  string `json:"kind"`
}

// Issue generates and mails a fresh code. The code itself is never part
// of the response.
func (h *OTPHandler) Issue(c *fiber.Ctx) error {
	var req issueOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if _, err := h.otp.Issue(req.Email, req.Kind); err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
	Kind  string `json:"kind"`
}

// Verify consumes the submitted code.
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.otp.Verify(req.Email, req.Code, req.Kind); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"ok": true})
}
