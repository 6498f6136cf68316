package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/brewfinder/internal/models"
)

func TestLatestOTPReturnsNewestRecordOnly(t *testing.T) {
	st := NewMemoryStore()

	older := &models.OTP{Email: "a@x.com", Kind: models.OTPKindRegister, CodeHash: "old"}
	require.NoError(t, st.CreateOTP(older))
	time.Sleep(2 * time.Millisecond)
	newer := &models.OTP{Email: "a@x.com", Kind: models.OTPKindRegister, CodeHash: "new"}
	require.NoError(t, st.CreateOTP(newer))

	got, err := st.LatestOTP("a@x.com", models.OTPKindRegister)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.Equal(t, "new", got.CodeHash)
}

func TestLatestOTPIsScopedByKind(t *testing.T) {
	st := NewMemoryStore()
	require.NoError(t, st.CreateOTP(&models.OTP{Email: "a@x.com", Kind: models.OTPKindRegister}))

	_, err := st.LatestOTP("a@x.com", models.OTPKindReset)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsumeOTPIsCompareAndSet(t *testing.T) {
	st := NewMemoryStore()
	otp := &models.OTP{Email: "a@x.com", Kind: models.OTPKindRegister}
	require.NoError(t, st.CreateOTP(otp))

	won, err := st.ConsumeOTP(otp.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, won)

	won, err = st.ConsumeOTP(otp.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, won)
}

func TestConsumeOTPConcurrentCallersGetOneWinner(t *testing.T) {
	st := NewMemoryStore()
	otp := &models.OTP{Email: "a@x.com", Kind: models.OTPKindLogin}
	require.NoError(t, st.CreateOTP(otp))

	const callers = 16
	var wg sync.WaitGroup
	wins := make(chan bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := st.ConsumeOTP(otp.ID, time.Now())
			assert.NoError(t, err)
			wins <- won
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestCreateAccountEnforcesUniqueEmail(t *testing.T) {
	st := NewMemoryStore()
	require.NoError(t, st.CreateAccount(&models.Account{Name: "A", Email: "a@x.com"}))

	err := st.CreateAccount(&models.Account{Name: "B", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRegisterPartnerLinksOwnership(t *testing.T) {
	st := NewMemoryStore()
	account := &models.Account{Name: "Owner", Email: "owner@x.com", Role: models.RolePartner}
	business := &models.Business{Name: "Roast Lab", Address: "5 Bean St"}

	require.NoError(t, st.RegisterPartner(account, business))
	assert.Equal(t, account.ID, business.OwnerID)

	cafes, err := st.SearchCafes(CafeFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	assert.Equal(t, "Roast Lab", cafes[0].Name)
}

func TestSearchCafesPagination(t *testing.T) {
	st := NewMemoryStore()
	names := []string{"one", "two", "three"}
	for i, name := range names {
		account := &models.Account{Name: name, Email: name + "@x.com", Role: models.RolePartner}
		require.NoError(t, st.RegisterPartner(account, &models.Business{Name: name, Address: "St"}))
		if i < len(names)-1 {
			time.Sleep(2 * time.Millisecond)
		}
	}

	page, err := st.SearchCafes(CafeFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	// Newest first, matching the SQL store's ordering.
	assert.Equal(t, "three", page[0].Name)

	rest, err := st.SearchCafes(CafeFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "one", rest[0].Name)

	beyond, err := st.SearchCafes(CafeFilter{Limit: 2, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}
