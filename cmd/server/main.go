// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"imgsafe-backend/internal/config"
	"imgsafe-backend/internal/database"
	"imgsafe-backend/internal/handlers"
	"imgsafe-backend/internal/repository"
	"imgsafe-backend/internal/routes"
	"imgsafe-backend/internal/services"
)

func initLogger(env string) *zap.Logger {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	// Customize time format
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

func main() {
	// Initialize logger first
	logger := initLogger(os.Getenv("ENV"))
	defer logger.Sync() // Flush any buffered log entries

	// Replace global logger
	zap.ReplaceGlobals(logger)

	logger.Info("Starting imgsafe-backend server")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("stats_timezone", cfg.Stats.Timezone))

	// Initialize database
	db, err := database.NewMongoDB(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			logger.Error("Error closing database connection", zap.Error(err))
		}
	}()

	logger.Info("Successfully connected to MongoDB")

	// Initialize repositories
	logger.Debug("Initializing repositories")
	tokenRepo := repository.NewTokenRepository(db.GetCollection("tokens"))
	usageRepo := repository.NewUsageRepository(db.GetCollection("usages"))

	// Initialize services
	logger.Debug("Initializing services")
	tokenService := services.NewTokenService(tokenRepo, cfg.Auth.TokenSecret)
	usageService := services.NewUsageService(usageRepo, cfg.Stats.ParametricPrefixes, cfg.Stats.Location())
	moderationService := services.NewModerationAPIService(cfg.Moderation)

	logger.Info("All services initialized successfully")

	// Initialize handlers
	logger.Debug("Initializing handlers")
	handlers := &routes.Handlers{
		Health:     handlers.NewHealthHandler(),
		Token:      handlers.NewTokenHandler(tokenService, usageService),
		Moderation: handlers.NewModerationHandler(moderationService),
		Usage:      handlers.NewUsageHandler(usageService),
	}

	servicesStruct := &routes.Services{
		TokenService: tokenService,
		UsageService: usageService,
	}

	// Setup routes
	logger.Debug("Setting up routes")
	router := routes.SetupRoutes(handlers, servicesStruct, cfg.Auth.TokenSecret)

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting HTTP server",
			zap.String("address", serverAddr),
			zap.Duration("read_timeout", 30*time.Second),
			zap.Duration("write_timeout", 30*time.Second))

		// Log available endpoints
		endpoints := []struct {
			method      string
			path        string
			description string
			auth        string
		}{
			{"GET", "/", "Health check", "None"},
			{"GET", "/health", "Health check", "None"},
			{"POST", "/api/auth/tokens", "Create bearer token", "None (bootstrap)"},
			{"GET", "/api/auth/tokens", "List tokens", "Admin"},
			{"GET", "/api/auth/tokens/usage-counts", "Per-token usage counts", "Admin"},
			{"DELETE", "/api/auth/tokens/{token}", "Revoke token", "Admin"},
			{"POST", "/api/moderate", "Moderate uploaded image", "Bearer token"},
			{"GET", "/api/auth/usage/my-usage", "Caller usage history", "Bearer token"},
			{"GET", "/api/auth/usage/my-usage/stats", "Caller usage charts", "Bearer token"},
			{"GET", "/api/auth/usage/token/{tokenId}", "Usage history by token", "Admin"},
			{"GET", "/api/auth/usage/endpoint/*", "Usage history by endpoint", "Admin"},
		}

		logger.Info("Available endpoints", zap.Int("count", len(endpoints)))
		for _, endpoint := range endpoints {
			logger.Debug("Endpoint registered",
				zap.String("method", endpoint.method),
				zap.String("path", endpoint.path),
				zap.String("description", endpoint.description),
				zap.String("auth", endpoint.auth))
		}

		logger.Info("CORS enabled for all origins")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Received shutdown signal, shutting down server gracefully")

	// Gracefully shutdown the server with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
