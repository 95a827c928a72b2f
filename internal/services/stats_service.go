package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/Jai-S-Rathore/healthcheck/internal/models"
	"github.com/Jai-S-Rathore/healthcheck/internal/monitoring"
)

const (
	reportPeriod      = "30 Days"
	reportWindowDays  = 30
	weeklyWindowDays  = 7
	monthlyWindowDays = 30
	recentMealsLimit  = 10
)

type mealReader interface {
	ListBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Meal, error)
	ListSince(ctx context.Context, userID int64, since time.Time) ([]models.Meal, error)
}

// StatsService aggregates the meal ledger in memory. Calendar days are taken in the
// clock's location.
type StatsService struct {
	meals   mealReader
	mailer  ReportMailer
	clock   Clock
	metrics *monitoring.Metrics
}

func NewStatsService(meals mealReader, mailer ReportMailer, clock Clock, metrics *monitoring.Metrics) *StatsService {
	if clock == nil {
		clock = NewClock(nil)
	}
	return &StatsService{meals: meals, mailer: mailer, clock: clock, metrics: metrics}
}

type ReportResult struct {
	Report  *models.Report
	Emailed bool
}

func (s *StatsService) DailyStats(ctx context.Context, userID int64) (*models.DailyStats, error) {
	from := startOfDay(s.clock.Now())
	meals, err := s.meals.ListBetween(ctx, userID, from, from.AddDate(0, 0, 1))
	if err != nil {
		return nil, upstreamError("Error fetching daily stats", err)
	}

	stats := &models.DailyStats{Breakdown: []models.TypeBreakdown{}}
	byType := map[models.FoodType]*models.TypeBreakdown{}
	for _, meal := range meals {
		stats.TotalConsumed += meal.Calories
		entry, ok := byType[meal.FoodType]
		if !ok {
			entry = &models.TypeBreakdown{FoodType: meal.FoodType}
			byType[meal.FoodType] = entry
		}
		entry.Calories += meal.Calories
		entry.Count++
	}
	for _, foodType := range sortedFoodTypes(byType) {
		stats.Breakdown = append(stats.Breakdown, *byType[foodType])
	}
	return stats, nil
}

func (s *StatsService) WeeklyStats(ctx context.Context, userID int64) ([]models.DateTotal, error) {
	totals, err := s.dateTotals(ctx, userID, weeklyWindowDays)
	if err != nil {
		return nil, upstreamError("Error fetching weekly stats", err)
	}
	return totals, nil
}

func (s *StatsService) MonthlyStats(ctx context.Context, userID int64) ([]models.DateTotal, error) {
	totals, err := s.dateTotals(ctx, userID, monthlyWindowDays)
	if err != nil {
		return nil, upstreamError("Error fetching monthly stats", err)
	}
	return totals, nil
}

// dateTotals sums calories per calendar date from local midnight days ago up to now,
// ascending by date. Dates without meals are omitted.
func (s *StatsService) dateTotals(ctx context.Context, userID int64, days int) ([]models.DateTotal, error) {
	now := s.clock.Now()
	meals, err := s.meals.ListSince(ctx, userID, startOfDay(now).AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	byDate := map[string]int{}
	for _, meal := range meals {
		byDate[dateKey(meal.CreatedAt, now.Location())] += meal.Calories
	}

	totals := make([]models.DateTotal, 0, len(byDate))
	for date, total := range byDate {
		totals = append(totals, models.DateTotal{Date: date, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date < totals[j].Date })
	return totals, nil
}

func (s *StatsService) MonthlySummary(ctx context.Context, userID int64) (*models.MonthlySummary, error) {
	now := s.clock.Now()
	meals, err := s.rollingWindow(ctx, userID, now)
	if err != nil {
		return nil, upstreamError("Error fetching monthly summary", err)
	}

	summary := &models.MonthlySummary{
		DailyTotals: []models.DailyTotal{},
		Statistics:  []models.TypeStatistics{},
	}

	byDate := map[string]*models.DailyTotal{}
	byType := map[models.FoodType]*models.TypeStatistics{}
	for _, meal := range meals {
		key := dateKey(meal.CreatedAt, now.Location())
		day, ok := byDate[key]
		if !ok {
			day = &models.DailyTotal{Date: key}
			byDate[key] = day
		}
		day.TotalCalories += meal.Calories
		day.MealCount++

		stat, ok := byType[meal.FoodType]
		if !ok {
			stat = &models.TypeStatistics{FoodType: meal.FoodType}
			byType[meal.FoodType] = stat
		}
		stat.TotalMeals++
		stat.TotalCalories += meal.Calories
	}

	for _, day := range byDate {
		summary.DailyTotals = append(summary.DailyTotals, *day)
	}
	sort.Slice(summary.DailyTotals, func(i, j int) bool {
		return summary.DailyTotals[i].Date > summary.DailyTotals[j].Date
	})

	for _, foodType := range sortedFoodTypes(byType) {
		stat := byType[foodType]
		stat.AvgCaloriesPerMeal = roundTo2(float64(stat.TotalCalories) / float64(stat.TotalMeals))
		summary.Statistics = append(summary.Statistics, *stat)
	}
	return summary, nil
}

// Report summarises the trailing 30×24h. A user with no meals in the window gets ErrNoData.
func (s *StatsService) Report(ctx context.Context, userID int64) (*models.Report, error) {
	meals, err := s.rollingWindow(ctx, userID, s.clock.Now())
	if err != nil {
		return nil, upstreamError("Error generating report", err)
	}
	if len(meals) == 0 {
		return nil, noDataError("No meal data available for the past 30 days")
	}

	report := &models.Report{
		Period:        reportPeriod,
		TotalMeals:    len(meals),
		MealBreakdown: map[models.FoodType]int{},
	}
	for _, meal := range meals {
		report.TotalCalories += meal.Calories
		report.MealBreakdown[meal.FoodType]++
	}
	report.AvgCaloriesPerDay = int(math.Round(float64(report.TotalCalories) / reportWindowDays))

	recent := meals
	if len(recent) > recentMealsLimit {
		recent = recent[:recentMealsLimit]
	}
	report.RecentMeals = append([]models.Meal(nil), recent...)
	return report, nil
}

// SendReport builds the report and, when a mailer is configured, e-mails it to email.
func (s *StatsService) SendReport(ctx context.Context, userID int64, email string) (*ReportResult, error) {
	report, err := s.Report(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ReportResult{Report: report}
	if s.mailer != nil {
		if err := s.mailer.SendReport(ctx, email, report); err != nil {
			return nil, upstreamError("Error sending report", err)
		}
		result.Emailed = true
	}

	s.metrics.ReportGenerated(result.Emailed)
	return result, nil
}

// rollingWindow loads meals with created_at strictly after now - 30×24h, newest first.
func (s *StatsService) rollingWindow(ctx context.Context, userID int64, now time.Time) ([]models.Meal, error) {
	since := now.Add(-reportWindowDays * 24 * time.Hour)
	meals, err := s.meals.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	filtered := meals[:0]
	for _, meal := range meals {
		if meal.CreatedAt.After(since) {
			filtered = append(filtered, meal)
		}
	}
	return filtered, nil
}

func sortedFoodTypes[T any](byType map[models.FoodType]T) []models.FoodType {
	types := make([]models.FoodType, 0, len(byType))
	for foodType := range byType {
		types = append(types, foodType)
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Rank() != types[j].Rank() {
			return types[i].Rank() < types[j].Rank()
		}
		return types[i] < types[j]
	})
	return types
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
