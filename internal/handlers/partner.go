package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/brewfinder/internal/services"
)

// PartnerHandler exposes partner onboarding.
type PartnerHandler struct {
	registration *services.RegistrationService
}

// NewPartnerHandler constructs a PartnerHandler.
func NewPartnerHandler(registration *services.RegistrationService) *PartnerHandler {
	return &PartnerHandler{registration: registration}
}

type registerPartnerRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Password      string   `json:"password"`
	Phone         string   `json:"phone"`
	BusinessName  string   `json:"business_name"`
	Address       string   `json:"address"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	BusinessPhone string   `json:"business_phone"`
	Website       string   `json:"website"`
}

// Register provisions a partner account and its business atomically.
func (h *PartnerHandler) Register(c *fiber.Ctx) error {
	var req registerPartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.registration.RegisterPartner(services.PartnerInput{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		Phone:         req.Phone,
		BusinessName:  req.BusinessName,
		Address:       req.Address,
		Lat:           req.Lat,
		Lng:           req.Lng,
		BusinessPhone: req.BusinessPhone,
		Website:       req.Website,
	})
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":       true,
		"token":    result.Token,
		"account":  result.Account,
		"business": result.Business,
	})
}
