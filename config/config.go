package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// FeedConfig holds product feed configuration
type FeedConfig struct {
	Source      string        `mapstructure:"source"` // http(s) URL or local file path
	MaxAttempts int           `mapstructure:"max_attempts"`
	RetryUnit   time.Duration `mapstructure:"retry_unit"` // Back-off before attempt n+1 is n*RetryUnit
	Timeout     time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // Requests per minute
}

// CatalogConfig holds load-time catalog ordering rules
type CatalogConfig struct {
	PinnedIDs        []string `mapstructure:"pinned_ids"`
	PriorityKeywords []string `mapstructure:"priority_keywords"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/storefront/")

	// Environment variable settings: feed.max_attempts <- STOREFRONT_FEED_MAX_ATTEMPTS
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env without overriding variables already set.
// A missing file is not an error.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Feed defaults
	v.SetDefault("feed.source", "")
	v.SetDefault("feed.max_attempts", 3)
	v.SetDefault("feed.retry_unit", "1s")
	v.SetDefault("feed.timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Catalog defaults
	v.SetDefault("catalog.pinned_ids", []string{"PROD-0910", "PROD-0434"})
	v.SetDefault("catalog.priority_keywords", []string{"valentine", "rose", "teddy", "love", "couple"})

	// Logger defaults
	v.SetDefault("logger.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if strings.TrimSpace(config.Feed.Source) == "" {
		return fmt.Errorf("feed source is required (set STOREFRONT_FEED_SOURCE)")
	}

	if config.Feed.MaxAttempts < 1 {
		return fmt.Errorf("feed max attempts must be at least 1, got: %d", config.Feed.MaxAttempts)
	}

	if config.Feed.RetryUnit < 0 || config.Feed.Timeout < 0 {
		return fmt.Errorf("feed retry unit and timeout must not be negative")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("per-IP rate limit must not be negative, got: %d", config.RateLimit.PerIP)
	}

	if len(config.Catalog.PinnedIDs) > 2 {
		return fmt.Errorf("at most two pinned product IDs are supported, got: %d", len(config.Catalog.PinnedIDs))
	}

	return nil
}
