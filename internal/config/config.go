package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/yrno-weather-pipeline/internal/store"
)

// AppConfig holds everything the service reads from the environment.
type AppConfig struct {
	// Locations to fetch weather for on each scheduled run.
	Locations []string

	// FetchInterval controls how often the pipeline runs per location.
	FetchInterval time.Duration

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// UserAgent identifies this client to met.no and Nominatim.
	UserAgent string

	// GeocoderAPIKey switches geocoding to the Google Maps API when set.
	GeocoderAPIKey string

	// CoordinateCachePath is the JSON document holding resolved coordinates.
	CoordinateCachePath string

	// Postgres connection settings. An empty host selects the in-memory
	// store.
	Postgres store.PostgresConfig

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	locations := getenvDefault("LOCATIONS", "Niš")
	for _, loc := range strings.Split(locations, ",") {
		loc = strings.TrimSpace(loc)
		if loc != "" {
			cfg.Locations = append(cfg.Locations, loc)
		}
	}
	if len(cfg.Locations) == 0 {
		return nil, fmt.Errorf("LOCATIONS must name at least one location")
	}

	intervalStr := getenvDefault("FETCH_INTERVAL", "1m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.UserAgent = getenvDefault("MET_USER_AGENT", "yrno-weather-pipeline/1.0")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.CoordinateCachePath = getenvDefault("COORDINATE_CACHE_PATH", "location-coordinates.json")

	cfg.Postgres = store.PostgresConfig{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     getenvDefault("POSTGRES_PORT", "5432"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   getenvDefault("POSTGRES_DB", "yrno_weather_db"),
		SSLMode:  getenvDefault("POSTGRES_SSLMODE", "disable"),
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
