package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/brewfinder/internal/models"
	"github.com/example/brewfinder/internal/store"
)

func newTestAccountService() (*AccountService, *OTPService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	otp := NewOTPService(st, LogMailer{})
	return NewAccountService(st, otp, testJWTSecret, time.Hour), otp, st
}

func verifyRegisterCode(t *testing.T, otp *OTPService, email string) {
	t.Helper()
	code, err := otp.Issue(email, models.OTPKindRegister)
	require.NoError(t, err)
	require.NoError(t, otp.Verify(email, code, models.OTPKindRegister))
}

func TestRegisterPatronRequiresVerifiedEmail(t *testing.T) {
	accounts, _, _ := newTestAccountService()

	_, err := accounts.RegisterPatron("Timur", "timur@example.com", "password1", "")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestRegisterPatronAfterVerification(t *testing.T) {
	accounts, otp, _ := newTestAccountService()
	verifyRegisterCode(t, otp, "timur@example.com")

	result, err := accounts.RegisterPatron("Timur", "timur@example.com", "password1", "+998900000000")
	require.NoError(t, err)
	assert.Equal(t, models.RolePatron, result.Account.Role)
	assert.NotEmpty(t, result.Token)
}

func TestRegisterPatronRejectsTakenEmail(t *testing.T) {
	accounts, otp, _ := newTestAccountService()
	verifyRegisterCode(t, otp, "timur@example.com")

	_, err := accounts.RegisterPatron("Timur", "timur@example.com", "password1", "")
	require.NoError(t, err)

	verifyRegisterCode(t, otp, "timur@example.com")
	_, err = accounts.RegisterPatron("Timur Again", "timur@example.com", "password2", "")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	accounts, otp, _ := newTestAccountService()
	verifyRegisterCode(t, otp, "timur@example.com")
	_, err := accounts.RegisterPatron("Timur", "timur@example.com", "password1", "")
	require.NoError(t, err)

	result, err := accounts.Login("timur@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "timur@example.com", result.Account.Email)

	_, err = accounts.Login("timur@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = accounts.Login("stranger@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResetPassword(t *testing.T) {
	accounts, otp, _ := newTestAccountService()
	verifyRegisterCode(t, otp, "timur@example.com")
	_, err := accounts.RegisterPatron("Timur", "timur@example.com", "password1", "")
	require.NoError(t, err)

	code, err := otp.Issue("timur@example.com", models.OTPKindReset)
	require.NoError(t, err)

	require.NoError(t, accounts.ResetPassword("timur@example.com", code, "newpassword"))

	_, err = accounts.Login("timur@example.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := accounts.Login("timur@example.com", "newpassword")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	// The reset code is single-use.
	err = accounts.ResetPassword("timur@example.com", code, "anotherpass")
	assert.ErrorIs(t, err, ErrCodeUsed)
}
