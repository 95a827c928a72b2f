package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger writes one line per request through the logger installed by RequestID.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startedAt := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				status = fiberErr.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		logger := zerolog.Ctx(c.UserContext())
		event := logger.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			event = logger.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			event = logger.Warn()
		}

		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("latency_ms", time.Since(startedAt).Milliseconds()).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}
