package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/brewfinder/internal/models"
	"github.com/example/brewfinder/internal/store"
	"github.com/example/brewfinder/internal/utils"
)

// PartnerInput is the full payload for partner onboarding: the owner
// account plus its first business.
type PartnerInput struct {
	Name          string
	Email         string
	Password      string
	Phone         string
	BusinessName  string
	Address       string
	Lat           *float64
	Lng           *float64
	BusinessPhone string
	Website       string
}

// PartnerResult carries both created entities and the minted session
// token.
type PartnerResult struct {
	Account  *models.Account  `json:"account"`
	Business *models.Business `json:"business"`
	Token    string           `json:"token"`
}

// RegistrationService provisions partner accounts together with their
// owned business record as one atomic unit.
type RegistrationService struct {
	store     store.Store
	jwtSecret string
	tokenTTL  time.Duration
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(st store.Store, jwtSecret string, tokenTTL time.Duration) *RegistrationService {
	return &RegistrationService{store: st, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// RegisterPartner creates the account (role partner) and its business
// inside one transaction, then mints a session token. The duplicate
// email lookup is only a fast path; the unique constraint on
// accounts.email is the authoritative signal, so a racing insert rolls
// the whole transaction back instead of leaving partial state.
func (s *RegistrationService) RegisterPartner(input PartnerInput) (*PartnerResult, error) {
	if input.Name == "" || input.Password == "" || input.BusinessName == "" || input.Address == "" {
		return nil, NewValidationError("missing required fields")
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetAccountByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		Name:         input.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        input.Phone,
		Role:         models.RolePartner,
	}
	business := &models.Business{
		Name:    input.BusinessName,
		Address: input.Address,
		Lat:     input.Lat,
		Lng:     input.Lng,
		Phone:   input.BusinessPhone,
		Website: input.Website,
	}

	if err := s.store.RegisterPartner(account, business); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register partner: %w", err)
	}

	token, err := utils.GenerateToken(s.jwtSecret, account, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &PartnerResult{Account: account, Business: business, Token: token}, nil
}
