// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types and
// validates that required values are present so they can be
// reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (pagination, observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
//
// Keys are lowercased and the prefix is removed; nesting uses ".":
//
//	PHARMACY_SERVER.PORT -> server.port -> Config.Server.Port
const EnvPrefix = "PHARMACY_"

// ServiceName is the name reported to logs and APM.
const ServiceName = "pharmacy-service"

// Config is the root configuration object for the application.
//
// Pagination, Integration and Observability are pointers because they are
// optional. When missing, defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Pagination    *PaginationConfig    `koanf:"pagination"`
	Integration   *IntegrationConfig   `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the sustained number of requests per second allowed per
	// client IP. Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig configures HTTP Basic authentication.
//
// When both bootstrap values are set, the user is created (or its password
// reset) at startup so a fresh deployment has at least one principal.
type AuthConfig struct {
	Realm             string `koanf:"realm" validate:"required"`
	BootstrapUsername string `koanf:"bootstrap_username" validate:"required_with=BootstrapPassword"`
	BootstrapPassword string `koanf:"bootstrap_password" validate:"required_with=BootstrapUsername"`
}

// HasBootstrapUser reports whether a bootstrap principal is configured.
func (a AuthConfig) HasBootstrapUser() bool {
	return a.BootstrapUsername != "" && a.BootstrapPassword != ""
}

// PaginationConfig controls page-number pagination of list endpoints.
type PaginationConfig struct {
	PageSize    int `koanf:"page_size" validate:"min=1"`
	MaxPageSize int `koanf:"max_page_size" validate:"min=1,gtefield=PageSize"`
}

// DefaultPaginationConfig returns the pagination used when none is configured.
func DefaultPaginationConfig() *PaginationConfig {
	return &PaginationConfig{
		PageSize:    10,
		MaxPageSize: 100,
	}
}

// IntegrationConfig holds third-party integration credentials.
//
// NotificationEmail receives a notice whenever a pharmacy is registered.
// Leave it empty to disable notifications.
type IntegrationConfig struct {
	ResendAPIKey      string `koanf:"resend_api_key"`
	NotificationEmail string `koanf:"notification_email" validate:"omitempty,email"`
}

// NotificationsEnabled reports whether registration notices should be sent.
func (i *IntegrationConfig) NotificationsEnabled() bool {
	return i != nil && i.ResendAPIKey != "" && i.NotificationEmail != ""
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults for optional blocks and validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := mainConfig.finalize(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// finalize injects defaults and runs every validation step.
//
// Split from LoadConfig so configs built in code (tests, tools) go through
// the same rules.
func (c *Config) finalize() error {
	if c.Pagination == nil {
		c.Pagination = DefaultPaginationConfig()
	}

	if c.Integration == nil {
		c.Integration = &IntegrationConfig{}
	}

	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 30
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// every log line and trace is labelled consistently.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
