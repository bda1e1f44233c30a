package sos

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/couchcryptid/weather-life/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultAutoResolve is how long an SOS alert stays active before it is
// resolved automatically.
const DefaultAutoResolve = 30 * time.Second

const publishTimeout = 5 * time.Second

// Publisher delivers SOS alerts to downstream consumers.
type Publisher interface {
	PublishSOS(ctx context.Context, alert domain.SOSAlert) error
}

// Config wires a Service.
type Config struct {
	Clock       clockwork.Clock
	Countdown   int
	AutoResolve time.Duration
	Locator     domain.LocationProvider
	Publisher   Publisher
	DeviceInfo  string
	Logger      *slog.Logger
	Metrics     *observability.Metrics
}

// Status is the combined view of the control and its current incident.
type Status struct {
	State      State             `json:"state"`
	Alert      *domain.SOSAlert  `json:"alert,omitempty"`
	Diagnostic *DiagnosticRecord `json:"diagnostic,omitempty"`
}

// Service turns completed countdowns into SOS alerts and owns their
// lifecycle: active until auto-resolved or cancelled, at which point the
// machine is reset to idle.
type Service struct {
	machine     *Machine
	recorder    *Recorder
	clock       clockwork.Clock
	autoResolve time.Duration
	publisher   Publisher
	logger      *slog.Logger
	metrics     *observability.Metrics
	newID       func() string

	mu      sync.Mutex
	current *domain.SOSAlert
	timer   clockwork.Timer
	closed  bool
}

// NewService creates a Service and its Machine.
func NewService(cfg Config) *Service {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.AutoResolve <= 0 {
		cfg.AutoResolve = DefaultAutoResolve
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observability.NewMetricsForTesting()
	}

	s := &Service{
		recorder:    NewRecorder(cfg.Locator, cfg.DeviceInfo),
		clock:       cfg.Clock,
		autoResolve: cfg.AutoResolve,
		publisher:   cfg.Publisher,
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		newID:       uuid.NewString,
	}
	s.machine = NewMachine(MachineConfig{
		Clock:     cfg.Clock,
		Countdown: cfg.Countdown,
		Locator:   cfg.Locator,
		OnActive:  s.handleActivation,
		Effects:   []Effect{s.recorder.Capture},
		Logger:    cfg.Logger,
	})
	return s
}

// Press starts a countdown; see Machine.Press.
func (s *Service) Press() bool { return s.machine.Press() }

// Release aborts a countdown; see Machine.Release.
func (s *Service) Release() bool { return s.machine.Release() }

// Status returns the machine state, the current alert and the last
// diagnostic record.
func (s *Service) Status() Status {
	st := Status{State: s.machine.State()}

	s.mu.Lock()
	if s.current != nil {
		alert := *s.current
		st.Alert = &alert
	}
	s.mu.Unlock()

	if rec, ok := s.recorder.Last(); ok {
		st.Diagnostic = &rec
	}
	return st
}

// Cancel ends the active incident early with status cancelled.
func (s *Service) Cancel(ctx context.Context) (domain.SOSAlert, bool) {
	s.mu.Lock()
	if s.current == nil || s.current.Status != domain.SOSStatusActive {
		s.mu.Unlock()
		return domain.SOSAlert{}, false
	}
	id := s.current.ID
	s.mu.Unlock()

	return s.finish(ctx, id, domain.SOSStatusCancelled)
}

// Close stops the countdown ticker and any pending auto-resolve. An
// activation still locating when Close runs is dropped without publishing.
func (s *Service) Close() {
	s.machine.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Service) handleActivation(act Activation) {
	alert := domain.SOSAlert{
		ID:        s.newID(),
		Timestamp: act.Timestamp,
		Location:  act.Location,
		Type:      domain.SOSKindEmergency,
		Status:    domain.SOSStatusActive,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("sos activation after close dropped", "alert_id", alert.ID)
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.current = &alert
	s.timer = s.clock.AfterFunc(s.autoResolve, func() {
		s.finish(context.Background(), alert.ID, domain.SOSStatusResolved)
	})
	s.mu.Unlock()

	s.metrics.SOSActivations.Inc()
	s.logger.Info("sos alert raised",
		"alert_id", alert.ID,
		"has_location", alert.Location != nil,
		"auto_resolve", s.autoResolve,
	)
	s.publish(context.Background(), alert)
}

// finish moves the alert with id out of the active state. It is a no-op
// after Close, or when that alert is no longer current or no longer active.
func (s *Service) finish(ctx context.Context, id string, status domain.SOSStatus) (domain.SOSAlert, bool) {
	s.mu.Lock()
	if s.closed || s.current == nil || s.current.ID != id || s.current.Status != domain.SOSStatusActive {
		s.mu.Unlock()
		return domain.SOSAlert{}, false
	}
	s.current.Status = status
	alert := *s.current
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.machine.Reset()
	s.metrics.SOSOutcomes.WithLabelValues(string(status)).Inc()
	s.logger.Info("sos alert closed", "alert_id", alert.ID, "status", status)
	s.publish(ctx, alert)
	return alert, true
}

func (s *Service) publish(ctx context.Context, alert domain.SOSAlert) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.publisher.PublishSOS(ctx, alert); err != nil {
		s.metrics.PublishErrors.WithLabelValues("sos").Inc()
		s.logger.Error("publish sos alert failed", "alert_id", alert.ID, "error", err)
	}
}
