package handlers

import (
	"errors"

	"github.com/Jai-S-Rathore/healthcheck/internal/logging"
	"github.com/Jai-S-Rathore/healthcheck/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// respondError maps a service error onto the JSON error envelope. Only failures that
// end in a 500 are logged; their cause never reaches the client.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrNoData):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	}

	if status == fiber.StatusInternalServerError {
		zerolog.Ctx(c.UserContext()).Error().
			Err(err).
			Str(logging.OP, c.Route().Path).
			Msg(fallback)
	}
	return c.Status(status).JSON(fiber.Map{"error": services.PublicMessage(err, fallback)})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
}

func invalidToken(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token."})
}

// parseBody decodes a JSON body into out. An empty body leaves out untouched so the
// service reports the missing fields itself.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

// currentUserID reads the identity stored by middleware.AuthRequired.
func currentUserID(c *fiber.Ctx) (int64, bool) {
	userID, ok := c.Locals("user_id").(int64)
	return userID, ok && userID > 0
}

func currentUserEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("user_email").(string)
	return email
}
