package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/enerflux/gridcast/internal/api"
	"github.com/enerflux/gridcast/internal/config"
	"github.com/enerflux/gridcast/internal/handlers"
	"github.com/enerflux/gridcast/internal/logging"
	"github.com/enerflux/gridcast/internal/middleware"
	"github.com/enerflux/gridcast/internal/services"
	"github.com/enerflux/gridcast/internal/telemetry"
	"github.com/enerflux/gridcast/pkg/finbert"
	"github.com/enerflux/gridcast/pkg/statfit"
)

func main() {
	// Load .env if present; environment variables override the config file.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.Environment)

	ctx := context.Background()

	// Initialize tracing
	provider, err := telemetry.Init(ctx, &cfg.Telemetry)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize telemetry")
	}

	// Probe the external model backends. Unavailable backends are tolerated;
	// the affected adapters degrade to placeholder output.
	estimator := statfit.NewService(&cfg.Statfit, logger)
	if err := estimator.Initialize(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to initialize statfit service")
	}
	defer func() {
		_ = estimator.Close()
	}()

	classifier := finbert.NewService(&cfg.Finbert, logger)
	if err := classifier.Initialize(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to initialize finbert service")
	}
	defer func() {
		_ = classifier.Close()
	}()

	// Wire services and handlers
	pipeline := services.NewPipelineService(&cfg.Forecast, estimator, logger)
	sentiment := services.NewSentimentService(classifier, logger)
	diagnostics := services.NewDiagnosticsService(logger)
	forecastHandler := handlers.NewForecastHandler(pipeline, sentiment, diagnostics, logger)

	// Setup Gin router
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	if cfg.Telemetry.Enabled {
		router.Use(otelgin.Middleware(telemetry.ServiceName))
	}
	api.SetupRoutes(router, forecastHandler, estimator, classifier)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Give outstanding requests a deadline for completion
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}
	if err := provider.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("Tracer shutdown failed")
	}

	logger.Info("Server exited")
}
