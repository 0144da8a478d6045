package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/safarx/places-backend/internal/config"
	"github.com/safarx/places-backend/internal/geocoding"
	"github.com/safarx/places-backend/internal/metrics"
	"github.com/safarx/places-backend/internal/repository"
	"github.com/safarx/places-backend/internal/server"
	"github.com/safarx/places-backend/internal/service"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection.
	dtb, err := repository.NewDatabase(
		ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	// Create the repositories backed by the shared pool.
	placeRepo := repository.NewPlaceRepository(dtb, logger)
	userRepo := repository.NewUserRepository(dtb, logger)

	// Create the geocoding provider using the factory pattern based on configuration.
	// This allows runtime selection between different providers (Nominatim, Google, etc.)
	providerConfig := geocoding.ProviderConfig{
		Type:        geocoding.ProviderType(cfg.Geocoder.ProviderType),
		APIKey:      cfg.Geocoder.APIKey,
		CountryCode: cfg.Geocoder.CountryCode,
		Logger:      logger,
	}

	geoProvider, err := geocoding.NewProvider(providerConfig)
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}

	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Geocoder.ProviderType)

	// Build the resolution pipeline: local dictionary, provider variants, default.
	resolver := geocoding.NewResolver(
		geocoding.DefaultLocationTable(),
		geoProvider,
		cfg.Geocoder.ProviderType, // Provider name for metrics
		geocoding.DefaultCoordinates,
		cfg.Geocoder.City,
		cfg.Geocoder.Country,
		appMetrics,
		logger,
	)

	// Init the place service that owns the cross-entity invariant.
	placeService := service.NewPlaceService(logger, dtb, placeRepo, userRepo, resolver, appMetrics)

	// Build the API server.
	srv := server.NewServer(cfg.Port, placeService, dtb, reg, cfg.AllowedOrigins, logger)

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	go func() {
		if errSrv := srv.Start(); errSrv != nil && !errors.Is(errSrv, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "API server failed", "error", errSrv)
			stop()
		}
	}()

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(ctx, "Failed to shut down API server gracefully", "error", err)
	}

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
