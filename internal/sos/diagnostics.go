package sos

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/weather-life/internal/domain"
)

// DiagnosticRecord is the locally retained package captured on activation.
type DiagnosticRecord struct {
	Timestamp     time.Time  `json:"timestamp"`
	Location      domain.Geo `json:"location"`
	EmergencyType string     `json:"emergency_type"`
	DeviceInfo    string     `json:"device_info"`
	BatteryLevel  string     `json:"battery_level"`
}

// Recorder captures one location fix per activation and keeps the latest
// record in memory.
type Recorder struct {
	locator domain.LocationProvider
	device  string

	mu   sync.Mutex
	last *DiagnosticRecord
}

// NewRecorder creates a Recorder. A nil locator disables capture.
func NewRecorder(locator domain.LocationProvider, device string) *Recorder {
	return &Recorder{locator: locator, device: device}
}

// Capture is an Effect. Without a location fix nothing is recorded; a
// provider error is returned so the machine can log it.
func (r *Recorder) Capture(ctx context.Context, act Activation) error {
	if r.locator == nil {
		return nil
	}

	reading := r.locator.Locate(ctx)
	geo, ok := reading.Coordinates()
	if !ok {
		if reading.Error != "" {
			return fmt.Errorf("capture sos location: %s", reading.Error)
		}
		return nil
	}

	rec := DiagnosticRecord{
		Timestamp:     act.Timestamp,
		Location:      geo,
		EmergencyType: "general",
		DeviceInfo:    r.device,
		BatteryLevel:  "unknown",
	}

	r.mu.Lock()
	r.last = &rec
	r.mu.Unlock()
	return nil
}

// Last returns the most recent record, if any.
func (r *Recorder) Last() (DiagnosticRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last == nil {
		return DiagnosticRecord{}, false
	}
	return *r.last, true
}
