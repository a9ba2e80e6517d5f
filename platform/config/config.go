// Package config loads application configuration from the environment.
// Values are read once at startup and injected into component constructors;
// there is no ambient settings lookup anywhere below main.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Narrow per-module interfaces keep each consumer on the smallest possible
// config surface.

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides token validation settings for the auth middleware.
type JWTConfig interface {
	GetJWTSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// QuoteConfig provides quote-level defaults.
type QuoteConfig interface {
	GetDefaultCurrency() string
}

// Config holds all application configuration values.
type Config struct {
	Env             string
	HTTPAddr        string
	DatabaseURL     string
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CORSAllowAll    bool
	CORSOrigins     []string
	CORSAllowCreds  bool
	DefaultCurrency string
}

func (c *Config) GetDatabaseURL() string           { return c.DatabaseURL }
func (c *Config) GetJWTSecret() string             { return c.JWTSecret }
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetRefreshTokenTTL() time.Duration {
	return c.RefreshTokenTTL
}
func (c *Config) GetHTTPAddr() string        { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool      { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string   { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool    { return c.CORSAllowCreds }
func (c *Config) GetDefaultCurrency() string { return c.DefaultCurrency }

// Load reads configuration from the environment, consulting .env first when
// present (development convenience; real deployments set real variables).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "*"))
	corsAllowAll := containsWildcard(corsOrigins)
	if corsAllowAll {
		corsOrigins = nil
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		AccessTokenTTL:  mustDuration(getEnv("JWT_ACCESS_TTL", "15m")),
		RefreshTokenTTL: mustDuration(getEnv("JWT_REFRESH_TTL", "168h")),
		CORSAllowAll:    corsAllowAll,
		CORSOrigins:     corsOrigins,
		CORSAllowCreds:  strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "BRL"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be valid durations")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS allows all origins")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
