package handlers

import (
	"context"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/Jai-S-Rathore/healthcheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	service profileApplicationService
}

type profileApplicationService interface {
	Upsert(ctx context.Context, userID int64, input services.UpsertProfileInput) (*models.Profile, error)
	Get(ctx context.Context, userID int64) (*models.Profile, error)
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type upsertProfileRequest struct {
	Weight        *float64 `json:"weight"`
	Height        *float64 `json:"height"`
	Age           *int     `json:"age"`
	ActivityLevel *string  `json:"activity_level"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	profile, err := h.service.Get(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "Error fetching profile")
	}
	return c.JSON(profile)
}

// UpsertProfile serves both POST /api/profile and POST /api/auth/update-profile.
func (h *ProfileHandler) UpsertProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	var req upsertProfileRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	profile, err := h.service.Upsert(c.UserContext(), userID, services.UpsertProfileInput{
		Weight:        req.Weight,
		Height:        req.Height,
		Age:           req.Age,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		return respondError(c, err, "Error updating profile")
	}
	return c.JSON(profile)
}
