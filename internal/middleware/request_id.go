package middleware

import (
	"github.com/Jai-S-Rathore/healthcheck/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxRequestIDLength = 128

// RequestID reuses a sane incoming X-Request-ID or generates a UUID, echoes it on the
// response and attaches a request-scoped logger to the user context.
func RequestID(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Locals("request_id", requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		logger := base.With().Str(logging.REQUEST_ID, requestID).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext()))

		return c.Next()
	}
}
