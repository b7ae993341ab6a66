package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/yrno-weather-pipeline/internal/geocode"
	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

func newTestClient(t *testing.T, srv *httptest.Server) *YrnoClient {
	t.Helper()
	c := NewYrnoClient(srv.Client(), "test-agent/1.0")
	c.baseURL = srv.URL
	c.httpCfg.Backoff.InitialInterval = time.Millisecond
	c.httpCfg.Backoff.MaxInterval = 5 * time.Millisecond
	return c
}

func TestYrnoFetch(t *testing.T) {
	var gotURL, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{
			"properties": {
				"meta": {"updated_at": "2024-09-24T11:04:30Z"},
				"timeseries": [
					{"time": "2024-09-24T11:00:00Z", "data": {"instant": {"details": {
						"air_pressure_at_sea_level": 1013.2,
						"air_temperature": 14.5,
						"cloud_area_fraction": 80.0,
						"relative_humidity": 55.0,
						"wind_from_direction": 210.0,
						"wind_speed": 3.2
					}}}}
				]
			}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)

	payload, err := c.Fetch(context.Background(), geocode.Coordinates{Lat: 43.32091, Lon: 21.89583})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Coordinates are rounded to 3 decimal places in the request URL.
	if gotURL != "/?lat=43.321&lon=21.896" {
		t.Fatalf("unexpected request URL: %q", gotURL)
	}
	if gotAgent != "test-agent/1.0" {
		t.Fatalf("expected identifying User-Agent, got %q", gotAgent)
	}

	if payload.Properties.Meta.UpdatedAt != "2024-09-24T11:04:30Z" {
		t.Fatalf("unexpected updated_at: %q", payload.Properties.Meta.UpdatedAt)
	}
	if len(payload.Properties.Timeseries) != 1 {
		t.Fatalf("expected 1 timeseries entry, got %d", len(payload.Properties.Timeseries))
	}
	details := payload.Properties.Timeseries[0].Data.Instant.Details
	if details["air_temperature"] != 14.5 {
		t.Fatalf("unexpected details: %v", details)
	}
}

func TestYrnoFetchServerErrorRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)

	_, err := c.Fetch(context.Background(), geocode.Coordinates{Lat: 43.321, Lon: 21.896})
	if !errors.Is(err, weather.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("expected 3 attempts against a 503, got %d", got)
	}
}

func TestYrnoFetchClientErrorNotRetried(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, srv)

	_, err := c.Fetch(context.Background(), geocode.Coordinates{Lat: 43.321, Lon: 21.896})
	if !errors.Is(err, weather.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	if weather.IsRetryable(err) {
		t.Fatal("a 404 must not be tagged retryable")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Fatalf("expected a single attempt against a 404, got %d", got)
	}
}
