package handlers

import (
	"context"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/Jai-S-Rathore/healthcheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

type MealHandler struct {
	meals mealApplicationService
	stats mealStatsService
}

type mealApplicationService interface {
	AddMeal(ctx context.Context, userID int64, input services.AddMealInput) (*models.Meal, error)
	Today(ctx context.Context, userID int64) ([]models.Meal, error)
	History(ctx context.Context, userID int64, limit int) ([]models.Meal, error)
}

type mealStatsService interface {
	DailyStats(ctx context.Context, userID int64) (*models.DailyStats, error)
	WeeklyStats(ctx context.Context, userID int64) ([]models.DateTotal, error)
	MonthlyStats(ctx context.Context, userID int64) ([]models.DateTotal, error)
}

func NewMealHandler(meals *services.MealService, stats *services.StatsService) *MealHandler {
	return &MealHandler{meals: meals, stats: stats}
}

type addMealRequest struct {
	FoodType string `json:"food_type"`
	FoodName string `json:"food_name"`
	Calories *int   `json:"calories"`
}

func (h *MealHandler) AddMeal(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	var req addMealRequest
	if err := parseBody(c, &req); err != nil {
		return invalidBody(c)
	}

	_, err := h.meals.AddMeal(c.UserContext(), userID, services.AddMealInput{
		FoodType: req.FoodType,
		FoodName: req.FoodName,
		Calories: req.Calories,
	})
	if err != nil {
		return respondError(c, err, "Error adding meal")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Meal added successfully!"})
}

func (h *MealHandler) Today(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	meals, err := h.meals.Today(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "Error fetching meals")
	}
	return c.JSON(meals)
}

func (h *MealHandler) History(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	meals, err := h.meals.History(c.UserContext(), userID, parseHistoryLimit(c.Query("limit")))
	if err != nil {
		return respondError(c, err, "Error fetching meal history")
	}
	return c.JSON(meals)
}

func (h *MealHandler) DailyStats(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	stats, err := h.stats.DailyStats(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "Error fetching daily stats")
	}
	return c.JSON(stats)
}

func (h *MealHandler) WeeklyStats(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	totals, err := h.stats.WeeklyStats(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "Error fetching weekly stats")
	}
	return c.JSON(totals)
}

func (h *MealHandler) MonthlyStats(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return invalidToken(c)
	}

	totals, err := h.stats.MonthlyStats(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "Error fetching monthly stats")
	}
	return c.JSON(totals)
}
