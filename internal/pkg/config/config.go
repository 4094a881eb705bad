// internal/pkg/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	// Application
	App AppConfig

	// API backend
	API APIConfig

	// Client behavior
	Client ClientConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
}

// APIConfig holds settings for the remote inventory backend
type APIConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	AuthToken      string
}

// ClientConfig holds list/form behavior settings
type ClientConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	SearchDebounce  time.Duration
	SuccessWindow   time.Duration
}

// Load loads configuration from environment variables
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file in development
	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	// Initialize viper
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetTypeByDefaultValue(true)

	// Set defaults
	setDefaults()

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "stockline-client"),
			Environment: env,
			Version:     getEnv("APP_VERSION", "dev"),
			LogLevel:    getEnv("LOG_LEVEL", "debug"),
			LogFormat:   getEnv("LOG_FORMAT", "json"),
			Debug:       getBoolEnv("APP_DEBUG", env == "development"),
		},
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),
			Timeout:        getDurationEnv("API_TIMEOUT", 15*time.Second),
			RateLimitRPS:   getFloatEnv("API_RATE_LIMIT_RPS", 10),
			RateLimitBurst: getIntEnv("API_RATE_LIMIT_BURST", 5),
			AuthToken:      getEnv("API_AUTH_TOKEN", ""),
		},
		Client: ClientConfig{
			DefaultPageSize: getIntEnv("CLIENT_PAGE_SIZE", 20),
			MaxPageSize:     getIntEnv("CLIENT_MAX_PAGE_SIZE", 100),
			SearchDebounce:  getDurationEnv("CLIENT_SEARCH_DEBOUNCE", 300*time.Millisecond),
			SuccessWindow:   getDurationEnv("CLIENT_SUCCESS_WINDOW", 2500*time.Millisecond),
		},
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate required fields
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	if c.API.AuthToken == "" && c.App.Environment == "production" {
		return fmt.Errorf("API auth token must be set in production")
	}

	// Validate numeric ranges
	if c.Client.DefaultPageSize <= 0 {
		return fmt.Errorf("default page size must be positive")
	}
	if c.Client.MaxPageSize < c.Client.DefaultPageSize {
		return fmt.Errorf("max page size must be >= default page size")
	}
	if c.Client.SearchDebounce < 0 {
		return fmt.Errorf("search debounce cannot be negative")
	}

	return nil
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// Helper functions

func setDefaults() {
	viper.SetDefault("app.name", "stockline-client")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
