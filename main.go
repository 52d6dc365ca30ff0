package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joefancyai/localizedKWvolume/internal/cache"
	"github.com/joefancyai/localizedKWvolume/internal/config"
	"github.com/joefancyai/localizedKWvolume/internal/fetcher"
	"github.com/joefancyai/localizedKWvolume/internal/http"
	"github.com/joefancyai/localizedKWvolume/internal/locations"
	"github.com/joefancyai/localizedKWvolume/internal/logger"
	"github.com/joefancyai/localizedKWvolume/internal/models"
	"github.com/joefancyai/localizedKWvolume/internal/parser"
	"github.com/joefancyai/localizedKWvolume/internal/ratelimit"
	"github.com/joefancyai/localizedKWvolume/internal/volumes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Missing credentials are fatal before any interface is usable
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Missing credentials: set DATAFORSEO_LOGIN and DATAFORSEO_PASSWORD in the environment or .env file (%v)", err)
	}

	// Initialize logger: database-backed when DATABASE_URL is set,
	// console otherwise
	appLogger, err := initializeLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	startupCtx := logger.WithLogEvent(context.Background(), logger.NewInternalLogEvent())

	appLogger.LogInfo(startupCtx, logger.OpServerStart, "Starting Localized Keyword Volume API", map[string]interface{}{
		"version": "1.0.0",
		"config": map[string]interface{}{
			"port":       cfg.Port,
			"cache_type": cfg.CacheType,
			"cache_ttl":  cfg.LocationCacheTTL.String(),
		},
	})

	// Initialize location cache store
	store, err := initializeStore(cfg)
	if err != nil {
		appLogger.LogError(startupCtx, "cache_init", "", "Failed to initialize cache store", err, models.LogSeverityHigh, nil)
		log.Fatalf("Failed to initialize cache store: %v", err)
	}

	// Initialize provider client
	providerClient, err := fetcher.NewClient(
		cfg.ProviderLogin,
		cfg.ProviderPassword,
		cfg.ProviderBaseURL,
		time.Duration(cfg.FetchTimeoutSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("Failed to initialize provider client: %v", err)
	}

	// Initialize services
	locationService := locations.NewService(store, providerClient, appLogger, cfg.LocationCacheTTL)
	volumeService := volumes.NewService(parser.NewParser(), providerClient, appLogger)

	rateLimiter := ratelimit.NewTwoTierRateLimiter(
		int64(cfg.GlobalRateLimitPerSec),
		int64(cfg.GlobalRateLimitPerSec),
		int64(cfg.PerIPRateLimitPerSec),
		int64(cfg.PerIPRateLimitPerSec),
	)

	// Initialize HTTP handler and server
	handler := http.NewHandler(locationService, volumeService, appLogger)

	addr := ":" + cfg.Port
	server := http.NewServer(
		addr,
		handler,
		appLogger,
		rateLimiter,
		cfg.ServerReadTimeout,
		cfg.ServerWriteTimeout,
	)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLogger.LogError(
				context.Background(),
				logger.OpServerStart,
				"",
				"Server failed to start",
				err,
				models.LogSeverityHigh,
				map[string]interface{}{"addr": addr},
			)
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	fmt.Printf("🚀 Localized Keyword Volume API started on %s\n", addr)
	fmt.Println("📋 Available endpoints:")
	fmt.Println("  GET  /health            - Health check")
	fmt.Println("  GET  /api/locations     - List/search provider locations")
	fmt.Println("  POST /api/volumes       - Keyword search volume lookup")
	fmt.Println("  POST /api/volumes/csv   - Lookup with CSV download")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.LogError(ctx, logger.OpServerShutdown, "", "Server shutdown error", err, models.LogSeverityMedium, nil)
		log.Printf("Server shutdown error: %v", err)
	} else {
		appLogger.LogInfo(ctx, logger.OpServerShutdown, "Server shutdown completed successfully", nil)
		fmt.Println("✅ Server shutdown completed")
	}
}

func initializeLogger(cfg *config.Config) (logger.Service, error) {
	if cfg.DatabaseURL == "" {
		return logger.NewConsoleLogger(), nil
	}

	db, err := logger.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return logger.NewDatabaseLogger(db), nil
}

func initializeStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.CacheType {
	case "redis":
		return cache.NewRedisStore(cfg.RedisURL)
	case "memory":
		return cache.NewMemoryStore(), nil
	case "file":
		return cache.NewFileStore(cfg.CacheFile), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.CacheType)
	}
}
