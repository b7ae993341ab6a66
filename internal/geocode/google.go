package geocode

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/yrno-weather-pipeline/internal/common"
	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

// GoogleProvider geocodes location names through the Google Maps Geocoding
// API via kelvins/geocoder. Requires an API key.
type GoogleProvider struct{}

// NewGoogleProvider configures the package-global API key and returns the
// provider.
func NewGoogleProvider(apiKey string) *GoogleProvider {
	geocoder.ApiKey = apiKey
	return &GoogleProvider{}
}

// Geocode resolves name to coordinates. The underlying library has no
// context support, so ctx is only checked up front.
func (p *GoogleProvider) Geocode(ctx context.Context, name string) (Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return Coordinates{}, err
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: name})
	if err != nil {
		if common.HasAny(strings.ToLower(err.Error()), "zero_results", "no results", "not found") {
			return Coordinates{}, fmt.Errorf("%w: %q", weather.ErrLocationNotFound, name)
		}
		return Coordinates{}, weather.Transient(fmt.Errorf("geocoding request failed: %w", err))
	}

	return Coordinates{Lat: loc.Latitude, Lon: loc.Longitude}, nil
}
