package handlers

import (
	"context"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/Jai-S-Rathore/healthcheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service authApplicationService
}

type authApplicationService interface {
	Register(ctx context.Context, input services.RegisterInput) error
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	AccountProfile(ctx context.Context, userID int64) (*models.AccountProfile, error)
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	err := h.service.Register(c.UserContext(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err, "Server error during registration")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully!"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	result, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "Server error during login")
	}

	return c.JSON(result)
}

// Profile returns the caller's account joined with their physical profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	account, err := h.service.AccountProfile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "Database error")
	}

	return c.JSON(account)
}
