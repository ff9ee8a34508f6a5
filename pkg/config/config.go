package config

import (
	"os"
	"strconv"
	"time"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// CatalogConfig holds the product feed and catalog policy configuration.
// The default category and comment author are deployment policy rather
// than business logic, so they live here.
type CatalogConfig struct {
	SourceURL            string
	FetchTimeout         time.Duration
	PageSize             int
	DefaultCategoryID    int
	DefaultCategoryName  string
	DefaultCommentAuthor string
}

// RateLimitConfig holds request throttling configuration
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Config holds all configuration
type Config struct {
	ServiceName string
	Server      ServerConfig
	Log         LogConfig
	Metrics     MetricsConfig
	Catalog     CatalogConfig
	RateLimit   RateLimitConfig
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	serviceName := getEnv("SERVICE_NAME", "catalog-service")

	config := &Config{
		ServiceName: serviceName,
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "catalog"),
		},
		Catalog: CatalogConfig{
			SourceURL:            getEnv("CATALOG_SOURCE_URL", "data/products.json"),
			FetchTimeout:         getEnvAsDuration("CATALOG_FETCH_TIMEOUT", 10*time.Second),
			PageSize:             getEnvAsInt("CATALOG_PAGE_SIZE", 10),
			DefaultCategoryID:    getEnvAsInt("CATALOG_DEFAULT_CATEGORY_ID", 1),
			DefaultCategoryName:  getEnv("CATALOG_DEFAULT_CATEGORY_NAME", "Misc"),
			DefaultCommentAuthor: getEnv("CATALOG_DEFAULT_COMMENT_AUTHOR", "anonymous"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("RATE_LIMIT_RPS", 50),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 100),
		},
	}

	return config, nil
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as floats
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
