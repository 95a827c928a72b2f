package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/Jai-S-Rathore/healthcheck/internal/logging"
	"github.com/Jai-S-Rathore/healthcheck/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// AuthRequired rejects requests without a valid bearer token and stores the token's
// identity in c.Locals under user_id (int64), user_name and user_email.
func AuthRequired(secret string) fiber.Handler {
	return authRequired(secret, time.Now)
}

func authRequired(secret string, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Access denied. No token provided.",
			})
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Access denied. Invalid token format.",
			})
		}

		claims, err := utils.ValidateTokenAt(parts[1], secret, now())
		if err != nil {
			message := "Invalid token."
			switch {
			case errors.Is(err, utils.ErrTokenExpired):
				message = "Token expired. Please login again."
			case errors.Is(err, utils.ErrTokenMalformed):
				message = "Access denied. Invalid token format."
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_name", claims.Name)
		c.Locals("user_email", claims.Email)

		logger := zerolog.Ctx(c.UserContext()).With().Int64(logging.USER_ID, claims.UserID).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext()))

		return c.Next()
	}
}
