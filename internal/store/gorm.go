package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/brewfinder/internal/models"
)

// GormStore implements Store on top of a Postgres-backed gorm.DB.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an initialized gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CreateAccount persists a new account.
func (s *GormStore) CreateAccount(account *models.Account) error {
	return s.db.Create(account).Error
}

// GetAccountByID loads an account by primary key.
func (s *GormStore) GetAccountByID(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetAccountByEmail loads an account by its unique email.
func (s *GormStore) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// UpdateAccountPassword replaces the stored password hash.
func (s *GormStore) UpdateAccountPassword(id uuid.UUID, passwordHash string) error {
	return s.db.Model(&models.Account{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// CreateOTP persists a freshly issued passcode record.
func (s *GormStore) CreateOTP(otp *models.OTP) error {
	return s.db.Create(otp).Error
}

// LatestOTP fetches the newest record for (email, kind) by issuance time.
func (s *GormStore) LatestOTP(email, kind string) (*models.OTP, error) {
	var otp models.OTP
	err := s.db.Where("email = ? AND kind = ?", email, kind).
		Order("created_at desc").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &otp, nil
}

// ConsumeOTP marks the record used via a conditional update so two
// concurrent verifications cannot both succeed.
func (s *GormStore) ConsumeOTP(id uuid.UUID, usedAt time.Time) (bool, error) {
	res := s.db.Model(&models.OTP{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", usedAt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// RegisterPartner creates the partner account and its business inside a
// single transaction. The unique index on accounts.email is the
// authoritative duplicate signal: a conflicting concurrent insert fails
// the transaction and rolls back both rows.
func (s *GormStore) RegisterPartner(account *models.Account, business *models.Business) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		business.OwnerID = account.ID
		return tx.Create(business).Error
	})
}

// SearchCafes applies the text filter and pagination at the database.
// Geo filtering happens in the service layer, after this page is cut.
func (s *GormStore) SearchCafes(filter CafeFilter) ([]models.Business, error) {
	query := s.db.Model(&models.Business{})

	if filter.Query != "" {
		q := "%" + filter.Query + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ?", q, q)
	}

	var cafes []models.Business
	if err := query.Limit(filter.Limit).Offset(filter.Offset).
		Order("created_at desc").
		Find(&cafes).Error; err != nil {
		return nil, err
	}
	return cafes, nil
}
