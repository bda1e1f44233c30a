package pipeline

import (
	"context"
	"time"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/jonboulle/clockwork"
)

// WarningEvaluator implements Evaluator with the domain generators. Time
// is read from the clock and converted to the display timezone, which
// decides the season.
type WarningEvaluator struct {
	rng   domain.RandomSource
	clock clockwork.Clock
	loc   *time.Location
}

// NewEvaluator creates a WarningEvaluator. A nil location means UTC.
func NewEvaluator(rng domain.RandomSource, clock clockwork.Clock, loc *time.Location) *WarningEvaluator {
	if loc == nil {
		loc = time.UTC
	}
	return &WarningEvaluator{rng: rng, clock: clock, loc: loc}
}

func (e *WarningEvaluator) Evaluate(_ context.Context, geo domain.Geo) domain.Evaluation {
	return domain.Evaluate(geo.Lat, geo.Lon, e.clock.Now().In(e.loc), e.rng)
}
