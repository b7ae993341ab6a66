package pipeline

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/i474232898/yrno-weather-pipeline/internal/geocode"
	"github.com/i474232898/yrno-weather-pipeline/internal/store"
	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

// Resolver maps a location name to coordinates.
type Resolver interface {
	Resolve(ctx context.Context, name string) (geocode.Coordinates, error)
}

// Fetcher retrieves the raw forecast payload for coordinates.
type Fetcher interface {
	Fetch(ctx context.Context, coords geocode.Coordinates) (*weather.ForecastPayload, error)
}

// Runner composes resolution, fetching, processing, and persistence into one
// pipeline run. It is the sole entry point consumed by the scheduler and the
// dashboard API.
type Runner struct {
	resolver Resolver
	fetcher  Fetcher
	store    store.Store
}

// New creates a Runner.
func New(resolver Resolver, fetcher Fetcher, st store.Store) *Runner {
	return &Runner{
		resolver: resolver,
		fetcher:  fetcher,
		store:    st,
	}
}

// Run executes one end-to-end pipeline run for a location. The measurement
// and prediction records are returned regardless of persist, so callers can
// display data independent of storage. When persist is true the measurement
// row is inserted, and durably visible, strictly before any prediction row
// referencing it; when persist is false no store access occurs. A failed
// step aborts the remainder of the run.
func (r *Runner) Run(ctx context.Context, location string, persist bool) (weather.Record, []weather.Record, error) {
	runID := uuid.NewString()
	log.Printf("pipeline[%s]: run started for %q (persist=%t)", runID, location, persist)

	coords, err := r.resolver.Resolve(ctx, location)
	if err != nil {
		log.Printf("pipeline[%s]: resolve failed: %v", runID, err)
		return weather.Record{}, nil, err
	}

	payload, err := r.fetcher.Fetch(ctx, coords)
	if err != nil {
		log.Printf("pipeline[%s]: fetch failed: %v", runID, err)
		return weather.Record{}, nil, err
	}

	measurement, err := weather.CurrentMeasurement(payload)
	if err != nil {
		log.Printf("pipeline[%s]: processing current measurement failed: %v", runID, err)
		return weather.Record{}, nil, err
	}

	predictions, err := weather.ForecastRecords(payload)
	if err != nil {
		log.Printf("pipeline[%s]: processing predictions failed: %v", runID, err)
		return weather.Record{}, nil, err
	}

	if persist {
		if err := r.persist(ctx, runID, location, measurement, predictions); err != nil {
			return weather.Record{}, nil, err
		}
	}

	log.Printf("pipeline[%s]: run completed, %d predictions", runID, len(predictions))
	return measurement, predictions, nil
}

// persist writes the measurement first, then its predictions. The two
// inserts are deliberately separate statements rather than one transaction:
// a failed predictions insert leaves the measurement row in place.
func (r *Runner) persist(ctx context.Context, runID, location string, measurement weather.Record, predictions []weather.Record) error {
	if err := r.store.EnsureSchema(ctx); err != nil {
		log.Printf("pipeline[%s]: schema setup failed: %v", runID, err)
		return err
	}

	measurementID, err := r.store.InsertMeasurement(ctx, location, measurement)
	if err != nil {
		log.Printf("pipeline[%s]: measurement insert failed: %v", runID, err)
		return err
	}

	if err := r.store.InsertPredictions(ctx, measurementID, location, predictions); err != nil {
		log.Printf("pipeline[%s]: predictions insert failed: %v", runID, err)
		return err
	}

	return nil
}
