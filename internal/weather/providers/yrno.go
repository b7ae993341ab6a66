package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/yrno-weather-pipeline/internal/geocode"
	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

// YrnoClient fetches forecasts from the met.no locationforecast API.
type YrnoClient struct {
	name      string
	baseURL   string
	userAgent string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

// NewYrnoClient creates a met.no client. met.no rejects requests without an
// identifying User-Agent, so userAgent is mandatory.
func NewYrnoClient(client *http.Client, userAgent string) *YrnoClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "yrno",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &YrnoClient{
		name:      "yrno",
		baseURL:   "https://api.met.no/weatherapi/locationforecast/2.0/compact",
		userAgent: userAgent,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      2, // 3 attempts total
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// Name returns the provider name.
func (c *YrnoClient) Name() string {
	return c.name
}

// Fetch retrieves the raw forecast payload for the given coordinates.
// Coordinates are rounded to 3 decimal places in the request URL, as met.no
// asks of its clients. The decoded payload is returned unvalidated; shape
// checks belong to the payload processor.
func (c *YrnoClient) Fetch(ctx context.Context, coords geocode.Coordinates) (*weather.ForecastPayload, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s?lat=%.3f&lon=%.3f", c.baseURL, coords.Lat, coords.Lon)
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weather.ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", weather.ErrFetchFailed, err)
	}

	return &payload, nil
}
