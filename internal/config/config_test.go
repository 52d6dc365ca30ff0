package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

var configEnvVars = []string{
	"PORT", "DATAFORSEO_LOGIN", "DATAFORSEO_PASSWORD", "DATAFORSEO_BASE_URL",
	"CACHE_TYPE", "LOCATION_CACHE_FILE", "LOCATION_CACHE_TTL", "REDIS_URL",
	"DATABASE_URL", "FETCH_TIMEOUT_SECONDS",
	"GLOBAL_RATE_LIMIT_PER_SEC", "PER_IP_RATE_LIMIT_PER_SEC",
	"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://api.dataforseo.com", cfg.ProviderBaseURL)
	assert.Equal(t, "file", cfg.CacheType)
	assert.Equal(t, "locations_cache.json", cfg.CacheFile)
	// File-backed deployments refresh monthly
	assert.Equal(t, 30*24*time.Hour, cfg.LocationCacheTTL)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, 30, cfg.FetchTimeoutSeconds)
	assert.Equal(t, 100, cfg.GlobalRateLimitPerSec)
	assert.Equal(t, 10, cfg.PerIPRateLimitPerSec)
	assert.Equal(t, 15*time.Second, cfg.ServerReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.ServerWriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.ServerShutdownTimeout)
}

func TestLoad_MemoryCacheDefaultsToDailyWindow(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_TYPE", "memory")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.LocationCacheTTL)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DATAFORSEO_LOGIN", "user@example.com")
	t.Setenv("DATAFORSEO_PASSWORD", "secret")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("LOCATION_CACHE_TTL", "7200")
	t.Setenv("REDIS_URL", "redis://custom:6380")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "15")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "user@example.com", cfg.ProviderLogin)
	assert.Equal(t, "secret", cfg.ProviderPassword)
	assert.Equal(t, "redis", cfg.CacheType)
	assert.Equal(t, 7200*time.Second, cfg.LocationCacheTTL)
	assert.Equal(t, "redis://custom:6380", cfg.RedisURL)
	assert.Equal(t, 15, cfg.FetchTimeoutSeconds)
}

func TestValidate_MissingCredentials(t *testing.T) {
	tests := []struct {
		name     string
		login    string
		password string
		wantErr  error
	}{
		{"both present", "user", "pass", nil},
		{"missing login", "", "pass", models.ErrMissingCredentials},
		{"missing password", "user", "", models.ErrMissingCredentials},
		{"both missing", "", "", models.ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ProviderLogin: tt.login, ProviderPassword: tt.password}
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("FETCH_TIMEOUT_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, 30, cfg.FetchTimeoutSeconds)
}
