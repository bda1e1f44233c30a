// Package location holds the process-wide device location. The display
// layer pushes readings in; the refresh pipeline and the SOS machine read
// them out.
package location

import (
	"context"
	"sync"

	"github.com/couchcryptid/weather-life/internal/domain"
)

// Tracker is a mutable domain.LocationProvider.
type Tracker struct {
	mu      sync.RWMutex
	reading domain.LocationReading
}

// NewTracker starts in the loading state until the first reading arrives.
func NewTracker() *Tracker {
	return &Tracker{reading: domain.LocationReading{Loading: true}}
}

// NewStaticTracker starts with a fixed coordinate pair.
func NewStaticTracker(lat, lon float64) *Tracker {
	return &Tracker{reading: domain.ReadingAt(lat, lon)}
}

// Set replaces the current reading. The pointers are copied so callers can
// reuse their values.
func (t *Tracker) Set(r domain.LocationReading) {
	r = clone(r)
	t.mu.Lock()
	t.reading = r
	t.mu.Unlock()
}

// Locate returns a copy of the current reading.
func (t *Tracker) Locate(_ context.Context) domain.LocationReading {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return clone(t.reading)
}

func clone(r domain.LocationReading) domain.LocationReading {
	if r.Latitude != nil {
		lat := *r.Latitude
		r.Latitude = &lat
	}
	if r.Longitude != nil {
		lon := *r.Longitude
		r.Longitude = &lon
	}
	return r
}
