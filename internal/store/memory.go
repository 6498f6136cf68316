package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/brewfinder/internal/models"
)

// MemoryStore is a mutex-guarded in-memory Store used by unit tests and
// local development without Postgres. It mirrors the semantics of
// GormStore: unique emails, newest-OTP-wins lookup, compare-and-set
// consumption and all-or-nothing partner registration.
type MemoryStore struct {
	mu         sync.RWMutex
	accounts   map[uuid.UUID]*models.Account
	businesses map[uuid.UUID]*models.Business
	otps       []*models.OTP

	// businessHook, when set, runs before the business insert during
	// RegisterPartner. Tests use it to inject a mid-transaction failure.
	businessHook func(*models.Business) error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts:   make(map[uuid.UUID]*models.Account),
		businesses: make(map[uuid.UUID]*models.Business),
	}
}

// SetBusinessHook installs a failure-injection hook for RegisterPartner.
func (m *MemoryStore) SetBusinessHook(hook func(*models.Business) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.businessHook = hook
}

func stamp(b *models.BaseModel) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// CreateAccount persists a new account, enforcing email uniqueness.
func (m *MemoryStore) CreateAccount(account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.accounts {
		if existing.Email == account.Email {
			return ErrDuplicate
		}
	}

	stamp(&account.BaseModel)
	clone := *account
	m.accounts[account.ID] = &clone
	return nil
}

// GetAccountByID loads an account by primary key.
func (m *MemoryStore) GetAccountByID(id uuid.UUID) (*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *account
	return &clone, nil
}

// GetAccountByEmail loads an account by its unique email.
func (m *MemoryStore) GetAccountByEmail(email string) (*models.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, account := range m.accounts {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateAccountPassword replaces the stored password hash.
func (m *MemoryStore) UpdateAccountPassword(id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	account.PasswordHash = passwordHash
	account.UpdatedAt = time.Now()
	return nil
}

// CreateOTP persists a freshly issued passcode record.
func (m *MemoryStore) CreateOTP(otp *models.OTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stamp(&otp.BaseModel)
	clone := *otp
	m.otps = append(m.otps, &clone)
	return nil
}

// LatestOTP fetches the newest record for (email, kind) by issuance time.
func (m *MemoryStore) LatestOTP(email, kind string) (*models.OTP, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var newest *models.OTP
	for _, otp := range m.otps {
		if otp.Email != email || otp.Kind != kind {
			continue
		}
		if newest == nil || otp.CreatedAt.After(newest.CreatedAt) {
			newest = otp
		}
	}
	if newest == nil {
		return nil, ErrNotFound
	}
	clone := *newest
	return &clone, nil
}

// ConsumeOTP sets used_at if still unset, reporting whether this call
// won the update.
func (m *MemoryStore) ConsumeOTP(id uuid.UUID, usedAt time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, otp := range m.otps {
		if otp.ID != id {
			continue
		}
		if otp.UsedAt != nil {
			return false, nil
		}
		t := usedAt
		otp.UsedAt = &t
		otp.UpdatedAt = usedAt
		return true, nil
	}
	return false, nil
}

// RegisterPartner creates the account and business together or not at all.
func (m *MemoryStore) RegisterPartner(account *models.Account, business *models.Business) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.accounts {
		if existing.Email == account.Email {
			return ErrDuplicate
		}
	}

	stamp(&account.BaseModel)
	business.OwnerID = account.ID
	stamp(&business.BaseModel)

	if m.businessHook != nil {
		if err := m.businessHook(business); err != nil {
			return err
		}
	}

	accountClone := *account
	businessClone := *business
	m.accounts[account.ID] = &accountClone
	m.businesses[business.ID] = &businessClone
	return nil
}

// SearchCafes applies the text filter and pagination, newest first,
// matching the SQL implementation's ordering.
func (m *MemoryStore) SearchCafes(filter CafeFilter) ([]models.Business, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(filter.Query)
	var matched []models.Business
	for _, business := range m.businesses {
		if needle != "" &&
			!strings.Contains(strings.ToLower(business.Name), needle) &&
			!strings.Contains(strings.ToLower(business.Address), needle) {
			continue
		}
		matched = append(matched, *business)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}
