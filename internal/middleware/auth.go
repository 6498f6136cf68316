package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/brewfinder/internal/config"
	"github.com/example/brewfinder/internal/utils"
)

const sessionContextKey = "currentSession"

// AuthMiddleware validates session tokens and loads the authenticated
// session into the request context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		session, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(sessionContextKey, session)
		return c.Next()
	}
}

// GetCurrentSession extracts the authenticated session from context.
func GetCurrentSession(c *fiber.Ctx) (*utils.Session, bool) {
	value := c.Locals(sessionContextKey)
	if value == nil {
		return nil, false
	}

	if session, ok := value.(*utils.Session); ok {
		return session, true
	}

	return nil, false
}
