package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Cache     CacheConfig     `mapstructure:"cache"`
	SNS       SNSConfig       `mapstructure:"sns"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// AuthConfig holds API key authentication settings for the lookup endpoint.
// The SNS ingestion endpoint is always unauthenticated — the notification
// source does not send credentials.
type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
}

// CORSConfig holds CORS policy settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// DatabaseConfig holds the storage backend selection and connection settings.
// Driver is "mysql" or "postgres"; the choice is made once at startup.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	OpTimeoutSec int    `mapstructure:"op_timeout_sec"`
}

// CacheConfig holds the optional Redis lookup cache settings.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttl_sec"`
}

// SNSConfig holds settings for interacting with the notification source.
type SNSConfig struct {
	ConfirmTimeoutSec int `mapstructure:"confirm_timeout_sec"`
}

// Load reads configuration from config.yaml and environment variables.
// Environment variables use the BOUNCELIST_ prefix and underscore separators.
// Example: BOUNCELIST_DATABASE_DRIVER overrides database.driver in config.yaml.
func Load() (*Config, error) {
	v := viper.New()

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Load .env file if it exists
	_ = godotenv.Load()

	// Environment variable settings
	v.SetEnvPrefix("BOUNCELIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("rate_limit.requests_per_second", 50)
	v.SetDefault("rate_limit.burst", 100)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.op_timeout_sec", 5)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl_sec", 60)
	v.SetDefault("sns.confirm_timeout_sec", 10)

	// Read config file (optional — env vars can provide everything)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Database.Driver != "mysql" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database.dsn must be set")
	}

	// Handle comma-separated API keys from env var
	if apiKeysStr := v.GetString("auth.api_keys"); apiKeysStr != "" && len(cfg.Auth.APIKeys) == 0 {
		keys := strings.Split(apiKeysStr, ",")
		for i := range keys {
			keys[i] = strings.TrimSpace(keys[i])
		}
		cfg.Auth.APIKeys = keys
	}

	return &cfg, nil
}
