package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

// NominatimProvider geocodes free-form location names against the
// OpenStreetMap Nominatim search API. No API key is needed, but Nominatim's
// usage policy requires an identifying User-Agent.
type NominatimProvider struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewNominatimProvider creates a Nominatim-backed geocoding provider.
func NewNominatimProvider(client *http.Client, userAgent string) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   "https://nominatim.openstreetmap.org/search",
		userAgent: userAgent,
	}
}

// Geocode resolves name to coordinates. An empty result set means the
// location does not exist as far as Nominatim is concerned and is not worth
// retrying; transport and server failures are tagged transient.
func (p *NominatimProvider) Geocode(ctx context.Context, name string) (Coordinates, error) {
	values := url.Values{}
	values.Set("q", name)
	values.Set("format", "json")
	values.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return Coordinates{}, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return Coordinates{}, weather.Transient(fmt.Errorf("geocoding request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, weather.Transient(fmt.Errorf("geocoding returned status %d", resp.StatusCode))
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinates{}, weather.Transient(fmt.Errorf("decode geocoding response: %w", err))
	}

	if len(results) == 0 {
		return Coordinates{}, fmt.Errorf("%w: %q", weather.ErrLocationNotFound, name)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	return Coordinates{Lat: lat, Lon: lon}, nil
}
