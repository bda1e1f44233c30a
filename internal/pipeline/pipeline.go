package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/couchcryptid/weather-life/internal/observability"
	"github.com/jonboulle/clockwork"
)

// DefaultInterval is how often warnings are re-evaluated.
const DefaultInterval = 5 * time.Minute

const publishTimeout = 10 * time.Second

// Evaluator turns a location fix into a risk analysis and alerts.
type Evaluator interface {
	Evaluate(ctx context.Context, geo domain.Geo) domain.Evaluation
}

// Publisher delivers snapshots downstream.
type Publisher interface {
	PublishSnapshot(ctx context.Context, snap domain.WarningSnapshot) error
}

// Pipeline orchestrates the locate-evaluate-publish refresh loop.
type Pipeline struct {
	locator   domain.LocationProvider
	evaluator Evaluator
	publisher Publisher
	clock     clockwork.Clock
	interval  time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	latest    atomic.Pointer[domain.WarningSnapshot]
}

// New creates a Pipeline. A nil publisher keeps snapshots in memory only.
func New(l domain.LocationProvider, e Evaluator, p Publisher, clock clockwork.Clock, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Pipeline{
		locator:   l,
		evaluator: e,
		publisher: p,
		clock:     clock,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the first refresh cycle has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no warning snapshot has been produced yet")
	}
	return nil
}

// Latest returns the most recent snapshot.
func (p *Pipeline) Latest() (domain.WarningSnapshot, bool) {
	snap := p.latest.Load()
	if snap == nil {
		return domain.WarningSnapshot{}, false
	}
	return *snap, true
}

// Run refreshes immediately and then on every interval until the context
// is cancelled. The ticker is stopped on return.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "interval", p.interval)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			p.Refresh(ctx)
		}
	}
}

// Refresh runs one cycle and returns the snapshot it stored. A location
// without coordinates yields no analysis and no alerts; its error string
// is carried through unchanged.
func (p *Pipeline) Refresh(ctx context.Context) domain.WarningSnapshot {
	start := p.clock.Now()

	reading := p.locator.Locate(ctx)
	snap := domain.WarningSnapshot{
		Location:    reading,
		Alerts:      []domain.ActiveAlert{},
		GeneratedAt: start,
	}

	if geo, ok := reading.Coordinates(); ok {
		ev := p.evaluator.Evaluate(ctx, geo)
		snap.Analysis = &ev.Analysis
		snap.Alerts = ev.Alerts
		p.recordEvaluation(ev)
	} else {
		p.metrics.RefreshCycles.WithLabelValues("no_location").Inc()
		p.logger.Debug("refresh skipped evaluation, no coordinates",
			"loading", reading.Loading,
			"location_error", reading.Error,
		)
	}

	p.latest.Store(&snap)
	p.ready.Store(true)
	p.publish(ctx, snap)

	p.metrics.RefreshDuration.Observe(p.clock.Since(start).Seconds())
	return snap
}

func (p *Pipeline) recordEvaluation(ev domain.Evaluation) {
	p.metrics.RefreshCycles.WithLabelValues("evaluated").Inc()
	p.metrics.OverallRisk.Set(float64(ev.Analysis.OverallScore))
	for _, a := range ev.Alerts {
		p.metrics.AlertsEmitted.WithLabelValues(string(a.Type)).Inc()
	}

	p.logger.Info("warnings refreshed",
		"region", ev.Analysis.Location.Region,
		"overall_score", ev.Analysis.OverallScore,
		"alerts", len(ev.Alerts),
		"historical_events", len(ev.Analysis.HistoricalEvents),
	)
}

// publish failures are logged and counted. There is no retry; the next
// cycle publishes a fresh snapshot.
func (p *Pipeline) publish(ctx context.Context, snap domain.WarningSnapshot) {
	if p.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.publisher.PublishSnapshot(ctx, snap); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}
		p.metrics.PublishErrors.WithLabelValues("warning").Inc()
		p.logger.Error("publish snapshot failed", "error", err, "region", snap.Region())
	}
}
