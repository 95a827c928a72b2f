package services

import (
	"context"
	"strings"
	"time"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/Jai-S-Rathore/healthcheck/internal/monitoring"
	"github.com/Jai-S-Rathore/healthcheck/internal/repository"
)

const DefaultHistoryLimit = 50

type mealStore interface {
	Create(ctx context.Context, input repository.CreateMealInput) (*models.Meal, error)
	ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Meal, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.Meal, error)
}

type MealService struct {
	meals   mealStore
	clock   Clock
	metrics *monitoring.Metrics
}

func NewMealService(meals mealStore, clock Clock, metrics *monitoring.Metrics) *MealService {
	if clock == nil {
		clock = NewClock(nil)
	}
	return &MealService{meals: meals, clock: clock, metrics: metrics}
}

// AddMealInput mirrors the request body. Calories is a pointer so that an absent
// value can be told apart from an explicit 0.
type AddMealInput struct {
	FoodType string
	FoodName string
	Calories *int
}

func (s *MealService) AddMeal(ctx context.Context, userID int64, input AddMealInput) (*models.Meal, error) {
	foodName := strings.TrimSpace(input.FoodName)
	if strings.TrimSpace(input.FoodType) == "" || foodName == "" || input.Calories == nil {
		return nil, validationError("All fields are required")
	}

	foodType, ok := models.ParseFoodType(input.FoodType)
	if !ok {
		return nil, validationError("Invalid food type")
	}

	calories := *input.Calories
	if calories < models.MinCalories || calories > models.MaxCalories {
		return nil, validationError("Calories must be between 0 and 10000")
	}

	meal, err := s.meals.Create(ctx, repository.CreateMealInput{
		UserID:   userID,
		FoodType: foodType,
		FoodName: foodName,
		Calories: calories,
	})
	if err != nil {
		return nil, upstreamError("Error adding meal", err)
	}

	s.metrics.MealLogged(string(foodType))
	return meal, nil
}

// Today returns the meals logged since local midnight, newest first.
func (s *MealService) Today(ctx context.Context, userID int64) ([]models.Meal, error) {
	from := startOfDay(s.clock.Now())
	meals, err := s.meals.ListBetween(ctx, userID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, upstreamError("Error fetching meals", err)
	}
	return nonNilMeals(meals), nil
}

// History returns up to limit meals, newest first. A non-positive limit selects
// DefaultHistoryLimit.
func (s *MealService) History(ctx context.Context, userID int64, limit int) ([]models.Meal, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	meals, err := s.meals.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, upstreamError("Error fetching meal history", err)
	}
	return nonNilMeals(meals), nil
}

func nonNilMeals(meals []models.Meal) []models.Meal {
	if meals == nil {
		return []models.Meal{}
	}
	return meals
}
