package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/brewfinder/internal/models"
	"github.com/example/brewfinder/internal/store"
	"github.com/example/brewfinder/internal/utils"
)

const testJWTSecret = "test-secret"

func validPartnerInput() PartnerInput {
	lat, lng := 41.2995, 69.2401
	return PartnerInput{
		Name:         "Aziza",
		Email:        "aziza@example.com",
		Password:     "s3cret-pass",
		Phone:        "+998901234567",
		BusinessName: "Crema House",
		Address:      "12 Amir Temur Ave",
		Lat:          &lat,
		Lng:          &lng,
	}
}

func TestRegisterPartnerCreatesAccountBusinessAndToken(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRegistrationService(st, testJWTSecret, time.Hour)

	result, err := svc.RegisterPartner(validPartnerInput())
	require.NoError(t, err)

	assert.Equal(t, models.RolePartner, result.Account.Role)
	assert.Equal(t, "aziza@example.com", result.Account.Email)
	assert.Equal(t, result.Account.ID, result.Business.OwnerID)
	assert.Equal(t, "Crema House", result.Business.Name)

	session, err := utils.ParseToken(testJWTSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Account.ID, session.AccountID)
	assert.Equal(t, models.RolePartner, session.Role)
	assert.Equal(t, "aziza@example.com", session.Email)
}

func TestRegisterPartnerRejectsDuplicateEmail(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.CreateAccount(&models.Account{
		Name:  "Existing",
		Email: "aziza@example.com",
		Role:  models.RolePatron,
	}))

	svc := NewRegistrationService(st, testJWTSecret, time.Hour)
	_, err := svc.RegisterPartner(validPartnerInput())
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Neither a second account nor a business was created.
	cafes, err := st.SearchCafes(store.CafeFilter{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, cafes)
}

func TestRegisterPartnerRollsBackAccountOnBusinessFailure(t *testing.T) {
	st := store.NewMemoryStore()
	st.SetBusinessHook(func(*models.Business) error {
		return errors.New("insert failed")
	})

	svc := NewRegistrationService(st, testJWTSecret, time.Hour)
	_, err := svc.RegisterPartner(validPartnerInput())
	require.Error(t, err)

	// The account insert must not survive the failed business insert.
	_, err = st.GetAccountByEmail("aziza@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRegisterPartnerValidatesRequiredFields(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewRegistrationService(st, testJWTSecret, time.Hour)

	input := validPartnerInput()
	input.BusinessName = ""
	_, err := svc.RegisterPartner(input)
	assert.True(t, IsValidationError(err))

	input = validPartnerInput()
	input.Email = "broken@"
	_, err = svc.RegisterPartner(input)
	assert.True(t, IsValidationError(err))
}
