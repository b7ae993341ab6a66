package geocode

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/i474232898/yrno-weather-pipeline/internal/common"
	"github.com/i474232898/yrno-weather-pipeline/internal/weather"
)

type fakeProvider struct {
	calls  int
	coords Coordinates
	err    error
}

func (f *fakeProvider) Geocode(ctx context.Context, name string) (Coordinates, error) {
	f.calls++
	if f.err != nil {
		return Coordinates{}, f.err
	}
	return f.coords, nil
}

func newTestResolver(t *testing.T, provider Provider) *Resolver {
	t.Helper()
	r := NewResolver(NewFileCache(filepath.Join(t.TempDir(), "coordinates.json")), provider)
	r.retry = common.RetryConfig{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
	return r
}

func TestResolveCachesCoordinates(t *testing.T) {
	provider := &fakeProvider{coords: Coordinates{Lat: 43.3209, Lon: 21.8958}}
	resolver := newTestResolver(t, provider)

	got, err := resolver.Resolve(context.Background(), "Niš")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != provider.coords {
		t.Fatalf("expected %+v, got %+v", provider.coords, got)
	}
	if provider.calls != 1 {
		t.Fatalf("expected one geocode call, got %d", provider.calls)
	}

	cached, ok, err := resolver.cache.Get("Niš")
	if err != nil || !ok {
		t.Fatalf("expected cache entry, got ok=%v err=%v", ok, err)
	}
	if cached != provider.coords {
		t.Fatalf("expected cached %+v, got %+v", provider.coords, cached)
	}

	// Repeat resolution is a pure cache read with no external call.
	got, err = resolver.Resolve(context.Background(), "Niš")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != provider.coords {
		t.Fatalf("expected %+v, got %+v", provider.coords, got)
	}
	if provider.calls != 1 {
		t.Fatalf("expected no further geocode calls, got %d", provider.calls)
	}
}

func TestResolveCacheHitSkipsProvider(t *testing.T) {
	provider := &fakeProvider{err: errors.New("should not be called")}
	resolver := newTestResolver(t, provider)

	want := Coordinates{Lat: 59.9139, Lon: 10.7522}
	if err := resolver.cache.Put("Oslo", want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := resolver.Resolve(context.Background(), "Oslo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if provider.calls != 0 {
		t.Fatalf("expected zero geocode calls, got %d", provider.calls)
	}
}

func TestResolveLocationNotFoundIsNotRetried(t *testing.T) {
	provider := &fakeProvider{
		err: fmt.Errorf("%w: %q", weather.ErrLocationNotFound, "Atlantis"),
	}
	resolver := newTestResolver(t, provider)

	_, err := resolver.Resolve(context.Background(), "Atlantis")
	if !errors.Is(err, weather.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected a single geocode call, got %d", provider.calls)
	}
}

func TestResolveRetriesTransientFailures(t *testing.T) {
	provider := &fakeProvider{
		err: weather.Transient(errors.New("geocoding request failed")),
	}
	resolver := newTestResolver(t, provider)

	if _, err := resolver.Resolve(context.Background(), "Niš"); err == nil {
		t.Fatal("expected error")
	}
	if provider.calls != 3 {
		t.Fatalf("expected 3 geocode attempts, got %d", provider.calls)
	}
}
