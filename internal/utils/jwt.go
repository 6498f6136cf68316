package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/example/brewfinder/internal/models"
)

// SessionClaims is the payload of a stateless session token.
type SessionClaims struct {
	AccountID string `json:"account_id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Session carries the decoded identity of a verified token.
type Session struct {
	AccountID uuid.UUID
	Role      string
	Email     string
}

// GenerateToken creates a signed session token for the account.
func GenerateToken(secret string, account *models.Account, ttl time.Duration) (string, error) {
	claims := &SessionClaims{
		AccountID: account.ID.String(),
		Role:      account.Role,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the embedded session.
func ParseToken(secret, tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &Session{AccountID: accountID, Role: claims.Role, Email: claims.Email}, nil
}
