package weather

import (
	"fmt"
	"time"
)

// displayLayout renders local time as e.g. "Sep 24, 2024 13:04:30".
const displayLayout = "Jan 02, 2006 15:04:05"

// localZoneName is the single target civil time zone for the whole system.
const localZoneName = "Europe/Belgrade"

var localZone = mustLoadZone(localZoneName)

func mustLoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("weather: cannot load time zone %q: %v", name, err))
	}
	return loc
}

// NormalizeTimestamp converts an ISO-8601 UTC instant into the fixed local
// zone and formats it for display. It is deterministic and has no side
// effects.
func NormalizeTimestamp(iso string) (string, error) {
	ts, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimestamp, iso)
	}
	return ts.In(localZone).Format(displayLayout), nil
}
