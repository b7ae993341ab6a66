package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

// Memory is a concurrency-safe in-memory Store. It backs tests and lets the
// service run without a configured database. The foreign-key relationship is
// emulated: predictions referencing an unknown measurement are rejected the
// same way Postgres would reject them.
type Memory struct {
	mu           sync.Mutex
	nextID       int64
	measurements []weather.Measurement
	predictions  []weather.Prediction
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// EnsureSchema is a no-op for the in-memory store.
func (s *Memory) EnsureSchema(ctx context.Context) error {
	return nil
}

// InsertMeasurement appends a measurement row and returns its id.
func (s *Memory) InsertMeasurement(ctx context.Context, location string, rec weather.Record) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.measurements = append(s.measurements, weather.Measurement{
		ID:       id,
		Location: location,
		Record:   rec,
	})
	return id, nil
}

// InsertPredictions appends the batch, rejecting references to measurements
// that were never inserted.
func (s *Memory) InsertPredictions(ctx context.Context, measurementID int64, location string, recs []weather.Record) error {
	if len(recs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for _, m := range s.measurements {
		if m.ID == measurementID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: no measurement with id %d", weather.ErrPersistence, measurementID)
	}

	for _, rec := range recs {
		s.predictions = append(s.predictions, weather.Prediction{
			ID:            s.nextID,
			MeasurementID: measurementID,
			Location:      location,
			Record:        rec,
		})
		s.nextID++
	}
	return nil
}

// Measurements returns a copy of all stored measurement rows.
func (s *Memory) Measurements() []weather.Measurement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]weather.Measurement, len(s.measurements))
	copy(out, s.measurements)
	return out
}

// PredictionsFor returns the stored prediction rows for one measurement.
func (s *Memory) PredictionsFor(measurementID int64) []weather.Prediction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []weather.Prediction
	for _, p := range s.predictions {
		if p.MeasurementID == measurementID {
			out = append(out, p)
		}
	}
	return out
}
