package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/brewfinder/internal/models"
	"github.com/example/brewfinder/internal/store"
	"github.com/example/brewfinder/internal/utils"
)

// AccountService handles patron registration, login and password reset.
type AccountService struct {
	store     store.Store
	otp       *OTPService
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAccountService constructs an AccountService.
func NewAccountService(st store.Store, otp *OTPService, jwtSecret string, tokenTTL time.Duration) *AccountService {
	return &AccountService{store: st, otp: otp, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// SessionResult is the outcome of a successful login or registration.
type SessionResult struct {
	Account *models.Account `json:"account"`
	Token   string          `json:"token"`
}

// RegisterPatron creates a patron account. The email must carry a
// consumed register code: verification happens as a separate step
// before this call, so only the consumption outcome is checked here.
func (s *AccountService) RegisterPatron(name, email, password, phone string) (*SessionResult, error) {
	if name == "" || password == "" {
		return nil, NewValidationError("missing required fields")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	otp, err := s.store.LatestOTP(email, models.OTPKindRegister)
	if err != nil || !otp.Used() {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, ErrEmailNotVerified
	}

	if _, err := s.store.GetAccountByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        phone,
		Role:         models.RolePatron,
	}
	if err := s.store.CreateAccount(account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	token, err := utils.GenerateToken(s.jwtSecret, account, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &SessionResult{Account: account, Token: token}, nil
}

// Login authenticates by email and password.
func (s *AccountService) Login(email, password string) (*SessionResult, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	account, err := s.store.GetAccountByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, account, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &SessionResult{Account: account, Token: token}, nil
}

// ResetPassword verifies a reset code inline and replaces the account
// password.
func (s *AccountService) ResetPassword(email, code, newPassword string) error {
	if len(newPassword) < 6 {
		return NewValidationError("password must be at least 6 characters")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	account, err := s.store.GetAccountByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCodeNotFound
		}
		return err
	}

	if err := s.otp.Verify(email, code, models.OTPKindReset); err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.UpdateAccountPassword(account.ID, passwordHash)
}

// GetAccount loads an account by id for the profile endpoint.
func (s *AccountService) GetAccount(id uuid.UUID) (*models.Account, error) {
	return s.store.GetAccountByID(id)
}
