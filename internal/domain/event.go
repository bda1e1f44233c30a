package domain

import (
	"context"
	"time"
)

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// LocationReading is what the location provider reports. Coordinates are
// nil until a fix is available; Error is passed to the display unmodified.
type LocationReading struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error,omitempty"`
	Loading   bool     `json:"loading"`
}

// Coordinates returns the fix when both coordinates are present.
func (r LocationReading) Coordinates() (Geo, bool) {
	if r.Latitude == nil || r.Longitude == nil {
		return Geo{}, false
	}
	return Geo{Lat: *r.Latitude, Lon: *r.Longitude}, true
}

// ReadingAt builds a reading with a fix.
func ReadingAt(lat, lon float64) LocationReading {
	return LocationReading{Latitude: &lat, Longitude: &lon}
}

// LocationProvider supplies the device location.
type LocationProvider interface {
	Locate(ctx context.Context) LocationReading
}

// WarningSnapshot is everything one refresh cycle produced. Analysis is nil
// and Alerts is empty when the location had no coordinates.
type WarningSnapshot struct {
	Location    LocationReading `json:"location"`
	Analysis    *RiskAnalysis   `json:"analysis"`
	Alerts      []ActiveAlert   `json:"alerts"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Region returns the analysed region, or RegionUnknown without analysis.
func (s WarningSnapshot) Region() Region {
	if s.Analysis == nil {
		return RegionUnknown
	}
	return s.Analysis.Location.Region
}

// EmergencyContact is a dialable contact. Phone numbers are not validated.
type EmergencyContact struct {
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Phone        string `json:"phone" yaml:"phone"`
	Relationship string `json:"relationship" yaml:"relationship"`
	Priority     int    `json:"priority" yaml:"priority"`
}

// SOSKind classifies an SOS alert. The service only raises emergency
// alerts; the other kinds are part of the published schema for consumers.
type SOSKind string

const (
	SOSKindEmergency SOSKind = "emergency"
	SOSKindMedical   SOSKind = "medical"
	SOSKindFire      SOSKind = "fire"
	SOSKindPolice    SOSKind = "police"
)

// SOSStatus is the lifecycle state of an SOS alert.
type SOSStatus string

const (
	SOSStatusActive    SOSStatus = "active"
	SOSStatusResolved  SOSStatus = "resolved"
	SOSStatusCancelled SOSStatus = "cancelled"
)

// SOSAlert is emitted when an SOS countdown completes.
type SOSAlert struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Location  *Geo      `json:"location,omitempty"`
	Type      SOSKind   `json:"type"`
	Status    SOSStatus `json:"status"`
}
