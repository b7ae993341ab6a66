package store

import (
	"context"

	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

// Store persists one measurement row and its batch of prediction rows per
// pipeline run. InsertMeasurement must complete before InsertPredictions is
// called with its returned id; the predictions table holds a foreign key to
// measurements.
type Store interface {
	EnsureSchema(ctx context.Context) error
	InsertMeasurement(ctx context.Context, location string, rec weather.Record) (int64, error)
	InsertPredictions(ctx context.Context, measurementID int64, location string, recs []weather.Record) error
}
