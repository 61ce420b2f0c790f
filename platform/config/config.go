// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SchedulerConfig provides settings for the asynq scheduler and redis.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// EmailConfig provides settings for SMTP email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// EnrichmentConfig provides settings for the public registry client.
type EnrichmentConfig interface {
	GetRegistryBaseURL() string
	IsEnrichmentEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	DatabaseURL      string
	JWTAccessSecret  string
	AccessTokenTTL   time.Duration
	CORSAllowAll     bool
	CORSOrigins      []string
	CORSAllowCreds   bool
	RedisURL         string
	AsynqQueueName   string
	AsynqConcurrency int
	EmailEnabled     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
	RegistryBaseURL  string
	EnrichmentOn     bool
}

// =============================================================================
// Interface Implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string         { return c.DatabaseURL }
func (c *Config) GetJWTAccessSecret() string     { return c.JWTAccessSecret }
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetHTTPAddr() string            { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool          { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string       { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool        { return c.CORSAllowCreds }
func (c *Config) GetRedisURL() string            { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string      { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int       { return c.AsynqConcurrency }
func (c *Config) GetEmailEnabled() bool          { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string            { return c.SMTPHost }
func (c *Config) GetSMTPPort() int               { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string        { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string        { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string       { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string    { return c.EmailFromAddress }
func (c *Config) GetRegistryBaseURL() string     { return c.RegistryBaseURL }
func (c *Config) IsEnrichmentEnabled() bool      { return c.EnrichmentOn }

// Load reads configuration from the environment. A .env file is loaded when
// present (development convenience); real deployments set env vars directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTAccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		AccessTokenTTL:   getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		CORSAllowAll:     getBool("CORS_ALLOW_ALL", false),
		CORSOrigins:      getList("CORS_ORIGINS"),
		CORSAllowCreds:   getBool("CORS_ALLOW_CREDENTIALS", true),
		RedisURL:         os.Getenv("REDIS_URL"),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: getInt("ASYNQ_CONCURRENCY", 10),
		EmailEnabled:     getBool("EMAIL_ENABLED", false),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getInt("SMTP_PORT", 587),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Equipe Comercial"),
		EmailFromAddress: os.Getenv("EMAIL_FROM_ADDRESS"),
		RegistryBaseURL:  getEnv("REGISTRY_BASE_URL", "https://brasilapi.com.br"),
		EnrichmentOn:     getBool("ENRICHMENT_ENABLED", true),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
