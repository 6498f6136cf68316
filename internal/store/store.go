package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/brewfinder/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write violates a uniqueness rule.
var ErrDuplicate = errors.New("duplicate record")

// CafeFilter narrows and pages a cafe listing. Query is matched
// case-insensitively against name and address.
type CafeFilter struct {
	Query  string
	Limit  int
	Offset int
}

// Store defines the persistence operations the services depend on.
type Store interface {
	// Account operations
	CreateAccount(account *models.Account) error
	GetAccountByID(id uuid.UUID) (*models.Account, error)
	GetAccountByEmail(email string) (*models.Account, error)
	UpdateAccountPassword(id uuid.UUID, passwordHash string) error

	// OTP operations
	CreateOTP(otp *models.OTP) error
	// LatestOTP returns the single most recently issued record for
	// (email, kind). Older records are never returned, even when still
	// inside their own TTL.
	LatestOTP(email, kind string) (*models.OTP, error)
	// ConsumeOTP sets used_at if and only if it is still unset. It
	// reports whether this call won the update, so concurrent verifiers
	// of the same record see exactly one success.
	ConsumeOTP(id uuid.UUID, usedAt time.Time) (bool, error)

	// Partner and cafe operations
	// RegisterPartner creates the account and its owned business as one
	// atomic unit; on failure neither row persists.
	RegisterPartner(account *models.Account, business *models.Business) error
	SearchCafes(filter CafeFilter) ([]models.Business, error)
}
