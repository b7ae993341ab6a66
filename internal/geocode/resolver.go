package geocode

import (
	"context"
	"log"

	"github.com/i474232898/yrno-weather-pipeline/internal/common"
	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

// Provider abstracts an external geocoding service.
type Provider interface {
	Geocode(ctx context.Context, name string) (Coordinates, error)
}

// Resolver maps human-readable location names to coordinates, consulting the
// durable cache first and falling back to the geocoding provider on a miss.
type Resolver struct {
	cache    *FileCache
	provider Provider
	retry    common.RetryConfig
}

// NewResolver creates a Resolver.
func NewResolver(cache *FileCache, provider Provider) *Resolver {
	return &Resolver{
		cache:    cache,
		provider: provider,
		retry:    common.DefaultRetry,
	}
}

// Resolve returns the coordinates for name. A cache hit involves no network
// call; a miss queries the provider (retrying transient failures) and writes
// the result back so subsequent resolutions of the same name stay local.
func (r *Resolver) Resolve(ctx context.Context, name string) (Coordinates, error) {
	if coords, ok, err := r.cache.Get(name); err != nil {
		log.Printf("resolver: coordinate cache read failed: %v", err)
	} else if ok {
		return coords, nil
	}

	var coords Coordinates
	err := common.Retry(ctx, r.retry, weather.IsRetryable, func() error {
		c, err := r.provider.Geocode(ctx, name)
		if err != nil {
			return err
		}
		coords = c
		return nil
	})
	if err != nil {
		return Coordinates{}, err
	}

	// A failed write-back only costs an extra geocode call next run.
	if err := r.cache.Put(name, coords); err != nil {
		log.Printf("resolver: coordinate cache write failed for %q: %v", name, err)
	}

	return coords, nil
}
