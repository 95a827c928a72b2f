package main

import (
	"os"

	"github.com/Jai-S-Rathore/healthcheck/internal/database"
	"github.com/Jai-S-Rathore/healthcheck/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	logger := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("No .env file found")
	}

	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		logger.Fatal().Msg("DB_URL environment variable is required")
	}

	migrationsPath, err := database.FindMigrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		logger.Fatal().Err(err).Msg("Migrations directory not found")
	}

	direction := database.Up
	if len(os.Args) > 1 && os.Args[1] == "down" {
		direction = database.Down
	}

	if err := database.Migrate(dbUrl, migrationsPath, direction); err != nil {
		logger.Fatal().Err(err).Msg("Migration failed")
	}
	logger.Info().Str("direction", string(direction)).Str("dir", migrationsPath).Msg("Migration successful")
}
