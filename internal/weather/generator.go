package weather

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Generator binds the weather functions to a clock, a display timezone and
// an optional reverse geocoder for place names.
type Generator struct {
	rng      domain.RandomSource
	clock    clockwork.Clock
	loc      *time.Location
	geocoder domain.ReverseGeocoder
	logger   *slog.Logger
}

// NewGenerator creates a Generator. A nil geocoder uses the built-in city
// table only; a nil location means UTC.
func NewGenerator(rng domain.RandomSource, clock clockwork.Clock, loc *time.Location, geocoder domain.ReverseGeocoder, logger *slog.Logger) *Generator {
	if loc == nil {
		loc = time.UTC
	}
	return &Generator{rng: rng, clock: clock, loc: loc, geocoder: geocoder, logger: logger}
}

// Current returns conditions at lat/lon for the current time.
func (g *Generator) Current(ctx context.Context, lat, lon float64) Current {
	name := domain.ResolvePlaceName(ctx, lat, lon, g.geocoder, g.logger)
	return CurrentConditions(name, lat, lon, g.clock.Now().In(g.loc), g.rng)
}

// Forecast returns the week ahead.
func (g *Generator) Forecast() []Day {
	return Forecast(g.clock.Now().In(g.loc), g.rng)
}
