package models

import (
	"strings"
	"time"
)

type FoodType string

const (
	FoodTypeBreakfast FoodType = "breakfast"
	FoodTypeLunch     FoodType = "lunch"
	FoodTypeDinner    FoodType = "dinner"
	FoodTypeSnack     FoodType = "snack"
)

// FoodTypes lists the accepted meal types in display order.
var FoodTypes = []FoodType{FoodTypeBreakfast, FoodTypeLunch, FoodTypeDinner, FoodTypeSnack}

const (
	MinCalories = 0
	MaxCalories = 10000
)

func ParseFoodType(raw string) (FoodType, bool) {
	candidate := FoodType(strings.ToLower(strings.TrimSpace(raw)))
	for _, ft := range FoodTypes {
		if ft == candidate {
			return ft, true
		}
	}
	return "", false
}

// Rank orders food types breakfast first; unknown types sort last.
func (ft FoodType) Rank() int {
	for i, known := range FoodTypes {
		if known == ft {
			return i
		}
	}
	return len(FoodTypes)
}

type Meal struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FoodType  FoodType  `json:"food_type"`
	FoodName  string    `json:"food_name"`
	Calories  int       `json:"calories"`
	CreatedAt time.Time `json:"created_at"`
}
