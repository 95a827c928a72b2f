package repository

import (
	"context"
	"time"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/jackc/pgx/v5"
)

const mealColumns = `id, user_id, food_type, food_name, calories, created_at`

type MealRepository struct {
	db DBTX
}

func NewMealRepository(db DBTX) *MealRepository {
	return &MealRepository{db: db}
}

type CreateMealInput struct {
	UserID   int64
	FoodType models.FoodType
	FoodName string
	Calories int
}

func (r *MealRepository) Create(ctx context.Context, input CreateMealInput) (*models.Meal, error) {
	query := `
		INSERT INTO meals (user_id, food_type, food_name, calories)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + mealColumns
	meal, err := scanMeal(r.db.QueryRow(ctx, query, input.UserID, string(input.FoodType), input.FoodName, input.Calories))
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// ListBetween returns the user's meals with from <= created_at < to, newest first.
func (r *MealRepository) ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Meal, error) {
	query := `
		SELECT ` + mealColumns + `
		FROM meals
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	return collectMeals(rows)
}

// ListSince returns the user's meals with created_at >= since, newest first.
func (r *MealRepository) ListSince(ctx context.Context, userID int64, since time.Time) ([]models.Meal, error) {
	query := `
		SELECT ` + mealColumns + `
		FROM meals
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	return collectMeals(rows)
}

// ListRecent returns at most limit meals, newest first. The limit is passed through as is.
func (r *MealRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]models.Meal, error) {
	query := `
		SELECT ` + mealColumns + `
		FROM meals
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return collectMeals(rows)
}

func collectMeals(rows pgx.Rows) ([]models.Meal, error) {
	defer rows.Close()

	meals := make([]models.Meal, 0)
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, err
		}
		meals = append(meals, meal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return meals, nil
}

func scanMeal(row pgx.Row) (models.Meal, error) {
	var meal models.Meal
	var foodType string
	err := row.Scan(
		&meal.ID,
		&meal.UserID,
		&foodType,
		&meal.FoodName,
		&meal.Calories,
		&meal.CreatedAt,
	)
	meal.FoodType = models.FoodType(foodType)
	return meal, err
}
