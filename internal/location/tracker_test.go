package location

import (
	"context"
	"testing"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_StartsLoading(t *testing.T) {
	r := NewTracker().Locate(context.Background())
	assert.True(t, r.Loading)
	_, ok := r.Coordinates()
	assert.False(t, ok)
}

func TestTracker_Static(t *testing.T) {
	geo, ok := NewStaticTracker(21.03, 105.85).Locate(context.Background()).Coordinates()
	require.True(t, ok)
	assert.Equal(t, domain.Geo{Lat: 21.03, Lon: 105.85}, geo)
}

func TestTracker_SetReplacesReading(t *testing.T) {
	tr := NewTracker()
	tr.Set(domain.ReadingAt(10.78, 106.7))

	geo, ok := tr.Locate(context.Background()).Coordinates()
	require.True(t, ok)
	assert.Equal(t, domain.Geo{Lat: 10.78, Lon: 106.7}, geo)

	tr.Set(domain.LocationReading{Error: "User denied Geolocation"})
	r := tr.Locate(context.Background())
	assert.Equal(t, "User denied Geolocation", r.Error)
	assert.False(t, r.Loading)
	_, ok = r.Coordinates()
	assert.False(t, ok)
}

func TestTracker_CopiesCoordinates(t *testing.T) {
	lat, lon := 16.05, 108.2
	tr := NewTracker()
	tr.Set(domain.LocationReading{Latitude: &lat, Longitude: &lon})
	lat = 0

	out := tr.Locate(context.Background())
	assert.InDelta(t, 16.05, *out.Latitude, 0)

	*out.Longitude = 0
	geo, _ := tr.Locate(context.Background()).Coordinates()
	assert.InDelta(t, 108.2, geo.Lon, 0)
}
