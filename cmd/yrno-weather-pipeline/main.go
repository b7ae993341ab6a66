package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/yrno-weather-pipeline/internal/api/http"
	"github.com/i474232898/yrno-weather-pipeline/internal/config"
	"github.com/i474232898/yrno-weather-pipeline/internal/geocode"
	"github.com/i474232898/yrno-weather-pipeline/internal/pipeline"
	"github.com/i474232898/yrno-weather-pipeline/internal/scheduler"
	"github.com/i474232898/yrno-weather-pipeline/internal/store"
	"github.com/i474232898/yrno-weather-pipeline/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Geocoding with a durable coordinate cache. Google geocoding requires
	// an API key; Nominatim is the keyless default.
	var geoProvider geocode.Provider
	if cfg.GeocoderAPIKey != "" {
		geoProvider = geocode.NewGoogleProvider(cfg.GeocoderAPIKey)
	} else {
		geoProvider = geocode.NewNominatimProvider(httpClient, cfg.UserAgent)
	}
	resolver := geocode.NewResolver(geocode.NewFileCache(cfg.CoordinateCachePath), geoProvider)

	// Forecast fetcher with resilience (backoff + circuit breaker).
	fetcher := providers.NewYrnoClient(httpClient, cfg.UserAgent)

	// Relational store when Postgres is configured, in-memory otherwise.
	var st store.Store
	if cfg.Postgres.Host != "" {
		pg, err := store.Connect(cfg.Postgres)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer pg.Close()
		st = pg
	} else {
		log.Println("INFO: POSTGRES_HOST not set, using in-memory store")
		st = store.NewMemory()
	}

	// Core pipeline composing resolve -> fetch -> process -> persist.
	runner := pipeline.New(resolver, fetcher, st)

	// Scheduler that periodically runs the pipeline with persistence.
	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, runner)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "yrno-weather-pipeline",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "yrno-weather-pipeline",
		})
	})

	// Dashboard API routes.
	httpapi.RegisterRoutes(app, runner)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
