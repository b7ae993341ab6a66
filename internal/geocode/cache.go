package geocode

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

// FileCache is a durable location-name → coordinates mapping kept as a
// single JSON document on disk ({"Niš": [43.3209, 21.8958], ...}). Entries
// are append-only: once a name is written it is never overwritten. The whole
// document is read-modify-written on Put, so two processes resolving
// different uncached names at once can race and lose one update
// (last-writer-wins); the mutex only serializes writers within one process.
type FileCache struct {
	mu   sync.Mutex
	path string
}

// NewFileCache creates a cache backed by the JSON document at path. The file
// does not need to exist yet.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

func (c *FileCache) load() (map[string][2]float64, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string][2]float64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read coordinate cache: %w", err)
	}

	doc := map[string][2]float64{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode coordinate cache: %w", err)
		}
	}
	return doc, nil
}

// Get returns the cached coordinates for name, if present.
func (c *FileCache) Get(name string) (Coordinates, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return Coordinates{}, false, err
	}

	pair, ok := doc[name]
	if !ok {
		return Coordinates{}, false, nil
	}
	return Coordinates{Lat: pair[0], Lon: pair[1]}, true, nil
}

// Put appends a new entry and rewrites the whole document. An already-cached
// name is left untouched.
func (c *FileCache) Put(name string, coords Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return err
	}
	if _, ok := doc[name]; ok {
		return nil
	}
	doc[name] = [2]float64{coords.Lat, coords.Lon}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode coordinate cache: %w", err)
	}
	if err := os.WriteFile(c.path, raw, 0o644); err != nil {
		return fmt.Errorf("write coordinate cache: %w", err)
	}
	return nil
}
