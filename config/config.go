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
	Env         string
	Port        string
	FrontOrigin string
	LogLevel    string
	LogDir      string

	Database DatabaseConfig
	Redis    RedisConfig

	SecretKey      string
	AccessTokenTTL time.Duration

	TossSecretKey string
	TossAPIURL    string

	CloudinaryURL  string
	GoogleClientID string

	InternalAPIToken string
	PriceAlertCron   string
}

type DatabaseConfig struct {
	Driver   string
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
	// SQLitePath is used when Driver is "sqlite". ":memory:" is allowed.
	SQLitePath string
	LogLevel   string
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// LoadEnv loads variables from a .env file when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env not loaded, using process environment: %v", err)
	}
}

func GetEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	LoadEnv()

	ttlMinutes, err := strconv.Atoi(GetEnv("ACCESS_TOKEN_TTL_MINUTES", "1440"))
	if err != nil || ttlMinutes <= 0 {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL_MINUTES: %q", os.Getenv("ACCESS_TOKEN_TTL_MINUTES"))
	}
	redisDB, err := strconv.Atoi(GetEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		Env:         GetEnv("ENV", "dev"),
		Port:        GetEnv("PORT", "8083"),
		FrontOrigin: GetEnv("FRONT_ORIGIN", "http://localhost:5173"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
		LogDir:      GetEnv("LOG_DIR", ""),
		Database: DatabaseConfig{
			Driver:     GetEnv("DB_DRIVER", "postgres"),
			URL:        GetEnv("DATABASE_URL", ""),
			Host:       GetEnv("DB_HOST", "localhost"),
			Port:       GetEnv("DB_PORT", "5432"),
			User:       GetEnv("DB_USER", "postgres"),
			Password:   GetEnv("DB_PASSWORD", ""),
			Name:       GetEnv("DB_NAME", "hotelhub"),
			SSLMode:    GetEnv("DB_SSLMODE", "disable"),
			TimeZone:   GetEnv("DB_TIMEZONE", "Asia/Seoul"),
			SQLitePath: GetEnv("SQLITE_PATH", "hotelhub.db"),
			LogLevel:   GetEnv("DB_LOG_LEVEL", "warn"),
		},
		Redis: RedisConfig{
			Addr:     GetEnv("REDIS_ADDR", ""),
			Username: GetEnv("REDIS_USER", ""),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		SecretKey:        GetEnv("SECRET_KEY_ACCESS_TOKEN", ""),
		AccessTokenTTL:   time.Duration(ttlMinutes) * time.Minute,
		TossSecretKey:    GetEnv("TOSS_SECRET_KEY", ""),
		TossAPIURL:       GetEnv("TOSS_API_URL", "https://api.tosspayments.com"),
		CloudinaryURL:    GetEnv("CLOUDINARY_URL", ""),
		GoogleClientID:   GetEnv("GOOGLE_CLIENT_ID", ""),
		InternalAPIToken: GetEnv("INTERNAL_API_TOKEN", ""),
		PriceAlertCron:   GetEnv("PRICE_ALERT_CRON", "@every 1h"),
	}

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY_ACCESS_TOKEN is required")
	}
	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}
