package geocode

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coordinates.json")
	cache := NewFileCache(path)

	if _, ok, err := cache.Get("Niš"); err != nil || ok {
		t.Fatalf("expected miss on empty cache, got ok=%v err=%v", ok, err)
	}

	coords := Coordinates{Lat: 43.3209, Lon: 21.8958}
	if err := cache.Put("Niš", coords); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := cache.Get("Niš")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != coords {
		t.Fatalf("expected %+v, got %+v", coords, got)
	}

	// The document survives as plain JSON keyed by location name.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc := map[string][2]float64{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair, ok := doc["Niš"]; !ok || pair != [2]float64{43.3209, 21.8958} {
		t.Fatalf("unexpected document contents: %v", doc)
	}
}

func TestFileCachePutIsAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coordinates.json")
	cache := NewFileCache(path)

	first := Coordinates{Lat: 43.3209, Lon: 21.8958}
	if err := cache.Put("Niš", first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second write for the same name must not overwrite the entry.
	if err := cache.Put("Niš", Coordinates{Lat: 1, Lon: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := cache.Get("Niš")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != first {
		t.Fatalf("expected original entry %+v, got %+v", first, got)
	}
}

func TestFileCacheHoldsMultipleEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coordinates.json")
	cache := NewFileCache(path)

	if err := cache.Put("Niš", Coordinates{Lat: 43.3209, Lon: 21.8958}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cache.Put("Oslo", Coordinates{Lat: 59.9139, Lon: 10.7522}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, want := range map[string]Coordinates{
		"Niš":  {Lat: 43.3209, Lon: 21.8958},
		"Oslo": {Lat: 59.9139, Lon: 10.7522},
	} {
		got, ok, err := cache.Get(name)
		if err != nil || !ok {
			t.Fatalf("%s: expected hit, got ok=%v err=%v", name, ok, err)
		}
		if got != want {
			t.Fatalf("%s: expected %+v, got %+v", name, want, got)
		}
	}
}
