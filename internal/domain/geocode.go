package domain

import (
	"context"
	"fmt"
	"log/slog"
)

type namedBox struct {
	name           string
	minLat, maxLat float64
	minLon, maxLon float64
}

var knownPlaces = []namedBox{
	{name: "Hà Nội, Việt Nam", minLat: 20.5, maxLat: 21.5, minLon: 105.5, maxLon: 106.5},
	{name: "Thành phố Hồ Chí Minh, Việt Nam", minLat: 10.5, maxLat: 11.0, minLon: 106.5, maxLon: 107.0},
	{name: "Đà Nẵng, Việt Nam", minLat: 15.5, maxLat: 16.5, minLon: 108.0, maxLon: 109.0},
}

// LocalPlaceName names a coordinate without any network call: a few known
// cities, otherwise the formatted coordinates.
func LocalPlaceName(lat, lon float64) string {
	for _, p := range knownPlaces {
		if lat >= p.minLat && lat <= p.maxLat && lon >= p.minLon && lon <= p.maxLon {
			return p.name
		}
	}
	return fmt.Sprintf("%.2f°N, %.2f°E", lat, lon)
}

// ResolvePlaceName tries the geocoder first and falls back to
// LocalPlaceName when it is nil, fails or finds nothing.
func ResolvePlaceName(ctx context.Context, lat, lon float64, geocoder ReverseGeocoder, logger *slog.Logger) string {
	if geocoder == nil {
		return LocalPlaceName(lat, lon)
	}

	result, err := geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"lat", lat,
			"lon", lon,
			"error", err,
		)
		return LocalPlaceName(lat, lon)
	}
	if result.FormattedAddress != "" {
		return result.FormattedAddress
	}
	if result.PlaceName != "" {
		return result.PlaceName
	}
	return LocalPlaceName(lat, lon)
}
