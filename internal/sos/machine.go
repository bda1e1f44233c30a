package sos

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/weather-life/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Phase is the activation state of the SOS control.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseCountingDown Phase = "counting_down"
	PhaseActive       Phase = "active"
)

const (
	// DefaultCountdown is the number of one-second ticks between press and
	// activation.
	DefaultCountdown = 3

	tickInterval  = time.Second
	locateTimeout = 2 * time.Second
	effectTimeout = 10 * time.Second
)

// State is a read-only snapshot of the machine.
type State struct {
	Phase       Phase      `json:"phase"`
	Remaining   int        `json:"remaining_seconds"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
}

// Activation is handed to the completion callback and to side effects.
type Activation struct {
	Timestamp time.Time
	Location  *domain.Geo
}

// Effect is a best-effort action run when the machine becomes active.
// Its error is logged and otherwise ignored.
type Effect func(ctx context.Context, act Activation) error

// MachineConfig wires a Machine. Clock defaults to the real clock and
// Countdown to DefaultCountdown.
type MachineConfig struct {
	Clock     clockwork.Clock
	Countdown int
	Locator   domain.LocationProvider
	OnActive  func(Activation)
	Effects   []Effect
	Logger    *slog.Logger
}

// Machine implements idle → counting_down → active. Press, tick, release
// and reset are serialized by one mutex, so a release racing the final
// tick observes either counting_down (and wins) or active (and is a no-op).
type Machine struct {
	clock     clockwork.Clock
	countdown int
	locator   domain.LocationProvider
	onActive  func(Activation)
	effects   []Effect
	logger    *slog.Logger

	mu          sync.Mutex
	phase       Phase
	remaining   int
	activatedAt time.Time
	generation  uint64
	stopTicker  context.CancelFunc
	closed      bool
}

// NewMachine creates an idle machine.
func NewMachine(cfg MachineConfig) *Machine {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Countdown <= 0 {
		cfg.Countdown = DefaultCountdown
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Machine{
		clock:     cfg.Clock,
		countdown: cfg.Countdown,
		locator:   cfg.Locator,
		onActive:  cfg.OnActive,
		effects:   cfg.Effects,
		logger:    cfg.Logger,
		phase:     PhaseIdle,
	}
}

// State returns the current snapshot.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := State{Phase: m.phase, Remaining: m.remaining}
	if m.phase == PhaseActive {
		at := m.activatedAt
		s.ActivatedAt = &at
	}
	return s
}

// Press starts the countdown from idle. Pressing while counting down or
// active does nothing. It reports whether a countdown was started.
func (m *Machine) Press() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.phase != PhaseIdle {
		return false
	}

	m.phase = PhaseCountingDown
	m.remaining = m.countdown
	m.generation++

	ctx, cancel := context.WithCancel(context.Background())
	m.stopTicker = cancel
	go m.runCountdown(ctx, m.generation)

	m.logger.Info("sos countdown started", "remaining", m.remaining)
	return true
}

// Release aborts a countdown in progress. It reports whether a countdown
// was aborted; releasing after activation is a no-op.
func (m *Machine) Release() bool {
	m.mu.Lock()
	if m.phase != PhaseCountingDown {
		m.mu.Unlock()
		return false
	}
	remaining := m.remaining
	m.phase = PhaseIdle
	m.remaining = 0
	m.generation++
	stop := m.takeTicker()
	m.mu.Unlock()

	stop()
	m.logger.Info("sos countdown released", "remaining", remaining)
	return true
}

// Tick advances the countdown by one second. The internal ticker calls
// this path every second; it is exported for callers that drive time
// themselves.
func (m *Machine) Tick() {
	m.mu.Lock()
	gen := m.generation
	m.mu.Unlock()
	m.tick(gen)
}

// Reset returns an active machine to idle. Nothing inside the machine
// calls it; the incident lifecycle owns that decision.
func (m *Machine) Reset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseActive {
		return false
	}
	m.phase = PhaseIdle
	m.remaining = 0
	m.activatedAt = time.Time{}
	return true
}

// Close stops any pending ticks. Later presses are ignored.
func (m *Machine) Close() {
	m.mu.Lock()
	m.closed = true
	m.generation++
	stop := m.takeTicker()
	m.mu.Unlock()
	stop()
}

// tick applies one tick for countdown generation gen and reports whether
// the countdown is still running.
func (m *Machine) tick(gen uint64) bool {
	m.mu.Lock()
	if m.phase != PhaseCountingDown || gen != m.generation {
		m.mu.Unlock()
		return false
	}

	m.remaining--
	if m.remaining > 0 {
		m.mu.Unlock()
		return true
	}

	now := m.clock.Now()
	m.phase = PhaseActive
	m.activatedAt = now
	stop := m.takeTicker()
	m.mu.Unlock()

	stop()
	m.activate(now)
	return false
}

// activate runs outside the lock exactly once per countdown.
func (m *Machine) activate(now time.Time) {
	act := Activation{Timestamp: now}
	if m.locator != nil {
		ctx, cancel := context.WithTimeout(context.Background(), locateTimeout)
		if geo, ok := m.locator.Locate(ctx).Coordinates(); ok {
			act.Location = &geo
		}
		cancel()
	}

	m.logger.Info("sos activated", "at", now, "has_location", act.Location != nil)

	for _, effect := range m.effects {
		go m.runEffect(effect, act)
	}
	if m.onActive != nil {
		m.onActive(act)
	}
}

func (m *Machine) runEffect(effect Effect, act Activation) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("sos side effect panicked", "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), effectTimeout)
	defer cancel()

	if err := effect(ctx, act); err != nil {
		m.logger.Warn("sos side effect failed", "error", err)
	}
}

func (m *Machine) runCountdown(ctx context.Context, gen uint64) {
	ticker := m.clock.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if !m.tick(gen) {
				return
			}
		}
	}
}

// takeTicker detaches the running ticker's cancel func. Caller holds mu.
func (m *Machine) takeTicker() context.CancelFunc {
	stop := m.stopTicker
	m.stopTicker = nil
	if stop == nil {
		return func() {}
	}
	return stop
}
