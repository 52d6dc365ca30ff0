package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/joefancyai/localizedKWvolume/internal/models"
)

type Config struct {
	Port                  string
	ProviderLogin         string
	ProviderPassword      string
	ProviderBaseURL       string
	CacheType             string
	CacheFile             string
	LocationCacheTTL      time.Duration
	RedisURL              string
	DatabaseURL           string
	FetchTimeoutSeconds   int
	GlobalRateLimitPerSec int
	PerIPRateLimitPerSec  int
	ServerReadTimeout     time.Duration
	ServerWriteTimeout    time.Duration
	ServerShutdownTimeout time.Duration
}

// Default freshness windows per deployment mode: a durable file cache is
// refreshed monthly, a process-lifetime cache daily.
const (
	defaultFileCacheTTL   = 30 * 24 * time.Hour
	defaultMemoryCacheTTL = 24 * time.Hour
)

func Load() *Config {
	// Load .env file if it exists (optional)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}

	cacheType := getEnv("CACHE_TYPE", "file")

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		ProviderLogin:         getEnv("DATAFORSEO_LOGIN", ""),
		ProviderPassword:      getEnv("DATAFORSEO_PASSWORD", ""),
		ProviderBaseURL:       getEnv("DATAFORSEO_BASE_URL", "https://api.dataforseo.com"),
		CacheType:             cacheType,
		CacheFile:             getEnv("LOCATION_CACHE_FILE", "locations_cache.json"),
		LocationCacheTTL:      getDurationEnv("LOCATION_CACHE_TTL", defaultCacheTTL(cacheType)),
		RedisURL:              getEnv("REDIS_URL", "redis://localhost:6379"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		FetchTimeoutSeconds:   getIntEnv("FETCH_TIMEOUT_SECONDS", 30),
		GlobalRateLimitPerSec: getIntEnv("GLOBAL_RATE_LIMIT_PER_SEC", 100),
		PerIPRateLimitPerSec:  getIntEnv("PER_IP_RATE_LIMIT_PER_SEC", 10),
		ServerReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
		ServerShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// Validate checks the startup-fatal conditions
func (c *Config) Validate() error {
	if c.ProviderLogin == "" || c.ProviderPassword == "" {
		return models.ErrMissingCredentials
	}
	return nil
}

func defaultCacheTTL(cacheType string) time.Duration {
	if cacheType == "file" {
		return defaultFileCacheTTL
	}
	return defaultMemoryCacheTTL
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal) * time.Second
		}
	}
	return defaultValue
}
