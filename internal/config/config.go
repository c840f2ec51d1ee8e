package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// Ticketing
	TicketPrefix         = "AG"
	TicketMaxRetries     = 5
	AccessPasswordLength = 8

	// Passwords
	BcryptCost        = 12
	MinPasswordLength = 8

	// Sessions
	TokenTTL = 12 * time.Hour

	// Pagination
	ActivityPageSize  = 20
	ComplaintPageSize = 20
	NewsPageSize      = 10

	// Public front rate limiting (per client IP)
	PublicRateLimit = 10
	PublicRateBurst = 20
	PublicRateEvery = time.Minute

	// Dashboard
	DashboardCacheTTL = 30 * time.Second

	// Live feed
	ActivityChannel = "activity:feed"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port      string
	DBHost    string
	DBUser    string
	DBPass    string
	DBName    string
	DBPort    string
	RedisAddr string
	RedisPass string
	JWTSecret string

	// Optional integrations; empty values disable the feature.
	TelegramBotToken    string
	TelegramStaffChatID string

	LocalesDir string
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:                getenv("PORT", "8080"),
		DBHost:              getenv("DB_HOST", "localhost"),
		DBUser:              os.Getenv("DB_USER"),
		DBPass:              os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		DBPort:              getenv("DB_PORT", "5432"),
		RedisAddr:           getenv("REDIS_ADDR", "localhost:6379"),
		RedisPass:           os.Getenv("REDIS_PASSWORD"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramStaffChatID: os.Getenv("TELEGRAM_STAFF_CHAT_ID"),
		LocalesDir:          getenv("LOCALES_DIR", "internal/localization/locales"),
	}
}

// Validate reports the first hard requirement that is missing. Optional
// integrations (Telegram) are allowed to be absent.
func (c *Config) Validate() error {
	if c.DBUser == "" || c.DBName == "" {
		return fmt.Errorf("database configuration incomplete: DB_USER and DB_NAME are required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

// DSN builds the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
