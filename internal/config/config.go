package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	JWTSecret         string
	AppEnv            string
	EnableDocs        bool
	FrontendURL       string
	LogLevel          string
	Location          *time.Location
	AutoMigrate       bool
	MigrationsDir     string
	AWSRegion         string
	ReportSenderEmail string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || strings.TrimSpace(jwtSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	location, err := loadLocation(getEnv("APP_TIMEZONE", ""))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DBUrl:             getEnv("DB_URL", ""),
		DBMaxConns:        int32(getEnvInt("DB_MAX_CONNS", 10)),
		DBMinConns:        int32(getEnvInt("DB_MIN_CONNS", 2)),
		JWTSecret:         jwtSecret,
		AppEnv:            normalizeEnv(getEnv("APP_ENV", "production")),
		EnableDocs:        getEnvBool("ENABLE_API_DOCS", false),
		FrontendURL:       getEnv("FRONTEND_URL", "*"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Location:          location,
		AutoMigrate:       getEnvBool("AUTO_MIGRATE", false),
		MigrationsDir:     getEnv("MIGRATIONS_DIR", ""),
		AWSRegion:         getEnv("AWS_REGION", ""),
		ReportSenderEmail: getEnv("REPORT_SENDER_EMAIL", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return value
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

// loadLocation resolves APP_TIMEZONE; an empty value keeps the server's local zone,
// which is what "today" means for the meal statistics.
func loadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", name, err)
	}
	return location, nil
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}

func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}

// ReportMailEnabled reports whether 30-day reports should also be e-mailed through SES.
func (c *Config) ReportMailEnabled() bool {
	return c != nil && strings.TrimSpace(c.ReportSenderEmail) != ""
}
