package models

type DailyStats struct {
	TotalConsumed int             `json:"totalConsumed"`
	Breakdown     []TypeBreakdown `json:"breakdown"`
}

type TypeBreakdown struct {
	FoodType FoodType `json:"food_type"`
	Calories int      `json:"calories"`
	Count    int      `json:"count"`
}

// DateTotal is one calendar day of a weekly or monthly series. Days without meals
// are absent, so consecutive entries are not necessarily consecutive dates.
type DateTotal struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

type DailyTotal struct {
	Date          string `json:"date"`
	TotalCalories int    `json:"totalCalories"`
	MealCount     int    `json:"mealCount"`
}

type TypeStatistics struct {
	FoodType           FoodType `json:"food_type"`
	TotalMeals         int      `json:"totalMeals"`
	TotalCalories      int      `json:"totalCalories"`
	AvgCaloriesPerMeal float64  `json:"avgCaloriesPerMeal"`
}

type MonthlySummary struct {
	DailyTotals []DailyTotal     `json:"dailyTotals"`
	Statistics  []TypeStatistics `json:"statistics"`
}

type Report struct {
	Period            string           `json:"period"`
	TotalMeals        int              `json:"totalMeals"`
	TotalCalories     int              `json:"totalCalories"`
	AvgCaloriesPerDay int              `json:"avgCaloriesPerDay"`
	MealBreakdown     map[FoodType]int `json:"mealBreakdown"`
	RecentMeals       []Meal           `json:"recentMeals"`
}
