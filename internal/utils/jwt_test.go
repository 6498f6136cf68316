package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/brewfinder/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	account := &models.Account{
		Name:  "Aziza",
		Email: "aziza@example.com",
		Role:  models.RolePartner,
	}
	account.ID = uuid.New()

	token, err := GenerateToken("secret", account, time.Hour)
	require.NoError(t, err)

	session, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, session.AccountID)
	assert.Equal(t, models.RolePartner, session.Role)
	assert.Equal(t, "aziza@example.com", session.Email)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	account := &models.Account{Email: "a@x.com", Role: models.RolePatron}
	account.ID = uuid.New()

	token, err := GenerateToken("secret", account, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpiredToken(t *testing.T) {
	account := &models.Account{Email: "a@x.com", Role: models.RolePatron}
	account.ID = uuid.New()

	token, err := GenerateToken("secret", account, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.Error(t, err)
}
