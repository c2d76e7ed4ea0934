package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"PHARMACY_PRIMARY.ENV":                   "local",
		"PHARMACY_SERVER.PORT":                   "8080",
		"PHARMACY_SERVER.READ_TIMEOUT":           "30",
		"PHARMACY_SERVER.WRITE_TIMEOUT":          "30",
		"PHARMACY_SERVER.IDLE_TIMEOUT":           "60",
		"PHARMACY_SERVER.CORS_ALLOWED_ORIGINS":   "http://localhost:3000",
		"PHARMACY_DATABASE.HOST":                 "localhost",
		"PHARMACY_DATABASE.PORT":                 "5432",
		"PHARMACY_DATABASE.USER":                 "postgres",
		"PHARMACY_DATABASE.PASSWORD":             "postgres",
		"PHARMACY_DATABASE.NAME":                 "pharmacy",
		"PHARMACY_DATABASE.SSL_MODE":             "disable",
		"PHARMACY_DATABASE.MAX_OPEN_CONNS":       "25",
		"PHARMACY_DATABASE.MAX_IDLE_CONNS":       "25",
		"PHARMACY_DATABASE.CONN_MAX_LIFETIME":    "300",
		"PHARMACY_DATABASE.CONN_MAX_IDLE_TIME":   "300",
		"PHARMACY_REDIS.ADDRESS":                 "localhost:6379",
		"PHARMACY_AUTH.REALM":                    "pharmacy",
		"PHARMACY_AUTH.BOOTSTRAP_USERNAME":       "admin",
		"PHARMACY_AUTH.BOOTSTRAP_PASSWORD":       "secret",
		"PHARMACY_INTEGRATION.NOTIFICATION_EMAIL": "ops@example.com",
	}
	for key, value := range vars {
		t.Setenv(key, value)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.True(t, cfg.Auth.HasBootstrapUser())
	assert.Equal(t, "ops@example.com", cfg.Integration.NotificationEmail)
	assert.False(t, cfg.Integration.NotificationsEnabled(), "no resend key configured")

	// Defaults for optional blocks.
	require.NotNil(t, cfg.Pagination)
	assert.Equal(t, 10, cfg.Pagination.PageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeout)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PHARMACY_DATABASE.HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Host")
}

func TestLoadConfigBootstrapUserNeedsBothValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PHARMACY_AUTH.BOOTSTRAP_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *ObservabilityConfig) {}},
		{
			name:    "unknown level",
			mutate:  func(c *ObservabilityConfig) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "unknown format",
			mutate:  func(c *ObservabilityConfig) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
		{
			name:    "negative slow query threshold",
			mutate:  func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -1 },
			wantErr: "slow_query_threshold",
		},
		{
			name:    "health check timeout too short",
			mutate:  func(c *ObservabilityConfig) { c.HealthChecks.Timeout = 0 },
			wantErr: "health_checks timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestObservabilityChecksEnabled(t *testing.T) {
	c := DefaultObservabilityConfig()
	assert.True(t, c.ChecksEnabled("database"))
	assert.True(t, c.ChecksEnabled("redis"))
	assert.False(t, c.ChecksEnabled("smtp"))

	c.HealthChecks.Enabled = false
	assert.False(t, c.ChecksEnabled("database"))
}
