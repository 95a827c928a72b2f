package routes

import (
	"errors"
	"time"

	"github.com/Jai-S-Rathore/healthcheck/internal/config"
	"github.com/Jai-S-Rathore/healthcheck/internal/handlers"
	"github.com/Jai-S-Rathore/healthcheck/internal/middleware"
	"github.com/Jai-S-Rathore/healthcheck/internal/monitoring"
	"github.com/Jai-S-Rathore/healthcheck/internal/repository"
	"github.com/Jai-S-Rathore/healthcheck/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Options carries the process-wide collaborators shared by every request.
type Options struct {
	Logger  zerolog.Logger
	Metrics *monitoring.Metrics
	Mailer  services.ReportMailer
	Clock   services.Clock
}

// NewApp builds the fiber app and installs the middleware that runs before routing.
func NewApp(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "healthcheck-api",
		ErrorHandler: jsonErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID(opts.Logger))
	app.Use(middleware.RequestLogger())
	app.Use(opts.Metrics.Middleware())
	return app
}

func RegisterRoutes(app *fiber.App, cfg *config.Config, db repository.DBTX, opts Options) error {
	clock := opts.Clock
	if clock == nil {
		clock = services.NewClock(cfg.Location)
	}

	app.Use(cors.New(corsConfig(cfg.FrontendURL)))

	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewMealRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, clock, opts.Metrics)
	mealService := services.NewMealService(mealRepo, clock, opts.Metrics)
	statsService := services.NewStatsService(mealRepo, opts.Mailer, clock, opts.Metrics)
	profileService := services.NewProfileService(profileRepo)

	authHandler := handlers.NewAuthHandler(authService)
	mealHandler := handlers.NewMealHandler(mealService, statsService)
	reportHandler := handlers.NewReportHandler(statsService)
	profileHandler := handlers.NewProfileHandler(profileService)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "Running",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
	if opts.Metrics != nil {
		app.Get("/metrics", opts.Metrics.Handler())
	}
	if err := registerDocsRoutes(app, cfg); err != nil {
		return err
	}

	requireAuth := middleware.AuthRequired(cfg.JWTSecret)
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/profile", requireAuth, authHandler.Profile)
	auth.Post("/update-profile", requireAuth, profileHandler.UpsertProfile)

	meals := api.Group("/meals", requireAuth)
	meals.Post("/add", mealHandler.AddMeal)
	meals.Get("/today", mealHandler.Today)
	meals.Get("/daily-stats", mealHandler.DailyStats)
	meals.Get("/weekly-stats", mealHandler.WeeklyStats)
	meals.Get("/monthly-stats", mealHandler.MonthlyStats)
	meals.Get("/history", mealHandler.History)

	reports := api.Group("/reports", requireAuth)
	reports.Get("/send", reportHandler.Send)
	reports.Get("/monthly-summary", reportHandler.MonthlySummary)

	profile := api.Group("/profile", requireAuth)
	profile.Get("", profileHandler.GetProfile)
	profile.Post("", profileHandler.UpsertProfile)

	return nil
}

// corsConfig allows credentials only for an explicit origin; browsers reject
// credentialed responses with a wildcard origin.
func corsConfig(frontendURL string) cors.Config {
	if frontendURL == "" || frontendURL == "*" {
		return cors.Config{AllowOrigins: "*"}
	}
	return cors.Config{
		AllowOrigins:     frontendURL,
		AllowCredentials: true,
	}
}

func jsonErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	} else {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Msg("unhandled error")
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
