package monitor

import (
	"context"
	"sync"
	"time"

	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/input"
	"codeberg.org/telvik/displayctl/internal/logger"
)

const (
	DefaultInactivityThreshold = 5 * time.Minute
	DefaultApplyDelay          = 5 * time.Second
)

// Config shapes the inactivity windows. Values are fixed for the
// lifetime of a monitor.
type Config struct {
	// InactivityThreshold is the minimum gap between two activity
	// events for the second one to count as a return from idle.
	InactivityThreshold time.Duration
	// ApplyDelay separates a detected return from the reconciliation
	// attempt it triggers.
	ApplyDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		InactivityThreshold: DefaultInactivityThreshold,
		ApplyDelay:          DefaultApplyDelay,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.InactivityThreshold <= 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			InactivityThreshold time.Duration
		}{c.InactivityThreshold})
	}

	if c.ApplyDelay < 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			ApplyDelay time.Duration
		}{c.ApplyDelay})
	}

	return nil
}

// AttemptFunc runs one reconciliation pass. It is called off the event
// loop and may block for the length of a full retry cycle.
type AttemptFunc func(ctx context.Context)

// Monitor watches an activity source and arms a delayed reconciliation
// attempt on the first activity after an idle gap. A session grabbing
// the display while the user is away changes nothing until the user
// comes back; the return is the trigger.
type Monitor struct {
	cfg     Config
	source  input.Source
	attempt AttemptFunc
	idle    func()

	mu           sync.Mutex
	lastActivity time.Time
	idleTimer    *time.Timer
	applyTimer   *time.Timer
	started      bool

	cancel context.CancelFunc
	done   chan struct{}
}

func New(cfg Config, source input.Source, attempt AttemptFunc) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Monitor{
		cfg:     cfg,
		source:  source,
		attempt: attempt,
	}
	m.idle = m.onIdle

	return m, nil
}

// Start begins observation. The activity baseline is the start moment
// itself.
func (m *Monitor) Start(ctx context.Context) error {
	errFactory := errors.New()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return errFactory.New(ErrAlreadyStarted)
	}

	if err := m.source.Start(ctx); err != nil {
		return errFactory.Wrap(ErrStartFailed, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.started = true
	m.lastActivity = time.Now()
	m.idleTimer = time.AfterFunc(m.cfg.InactivityThreshold, m.idle)

	go m.run(runCtx)

	logger.Info().
		Dur("inactivity_threshold", m.cfg.InactivityThreshold).
		Dur("apply_delay", m.cfg.ApplyDelay).
		Msg("Activity monitoring started")

	return nil
}

// Stop halts observation and cancels pending timers. Safe to call
// before Start and more than once.
func (m *Monitor) Stop() error {
	m.mu.Lock()

	if !m.started {
		m.mu.Unlock()
		return nil
	}

	m.started = false
	if m.idleTimer != nil {
		m.idleTimer.Stop()
	}
	if m.applyTimer != nil {
		m.applyTimer.Stop()
	}
	cancel := m.cancel
	done := m.done

	// Release before waiting; the event loop takes the same lock.
	m.mu.Unlock()

	cancel()
	<-done

	return m.source.Stop()
}

// LastActivity returns the timestamp of the most recent activity event,
// or the start moment when none has arrived yet.
func (m *Monitor) LastActivity() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lastActivity
}

func (m *Monitor) run(ctx context.Context) {
	defer close(m.done)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-m.source.Events():
			m.onActivity(ctx, ev)
		}
	}
}

// onActivity classifies one activity event. The gap test runs against
// the previous timestamp before it is updated; the ordering is
// load-bearing.
func (m *Monitor) onActivity(ctx context.Context, ev input.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gap := ev.At.Sub(m.lastActivity)
	if gap >= m.cfg.InactivityThreshold {
		logger.Info().
			Dur("idle", gap).
			Msg("Activity resumed after idle period")
		m.armApply(ctx)
	}

	m.lastActivity = ev.At

	if m.idleTimer != nil {
		m.idleTimer.Stop()
	}
	m.idleTimer = time.AfterFunc(m.cfg.InactivityThreshold, m.idle)
}

// armApply replaces any pending apply timer; at most one attempt is in
// flight per return from idle. Activity below the gap threshold leaves
// a pending timer alone.
func (m *Monitor) armApply(ctx context.Context) {
	if m.applyTimer != nil {
		m.applyTimer.Stop()
	}

	m.applyTimer = time.AfterFunc(m.cfg.ApplyDelay, func() {
		m.fireApply(ctx)
	})
}

func (m *Monitor) fireApply(ctx context.Context) {
	m.mu.Lock()
	stopped := !m.started
	m.mu.Unlock()

	if stopped || ctx.Err() != nil {
		return
	}

	logger.Debug().Msg("Running delayed reconciliation")
	m.attempt(ctx)
}

// onIdle only marks the transition; the reconciliation attempt waits
// for the next activity event.
func (m *Monitor) onIdle() {
	m.mu.Lock()
	idle := time.Since(m.lastActivity)
	m.mu.Unlock()

	logger.Info().Dur("idle", idle).Msg("Inactivity threshold reached")
}
