package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"codeberg.org/telvik/displayctl/internal/display"
	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/input"
	"codeberg.org/telvik/displayctl/internal/logger"
	"codeberg.org/telvik/displayctl/internal/monitor"
	"codeberg.org/telvik/displayctl/internal/pid"
	"codeberg.org/telvik/displayctl/internal/reconcile"
	"codeberg.org/telvik/displayctl/internal/telemetry"
)

const defaultHeartbeat = time.Minute

// Config assembles one daemon run.
type Config struct {
	Target      display.Mode
	Monitor     monitor.Config
	Retry       reconcile.Config
	MonitorOnly bool
	LockPath    string
	Heartbeat   time.Duration
}

// Daemon ties the activity monitor to the reconciliation scheduler and
// owns the single-instance lock for background runs.
type Daemon struct {
	cfg       Config
	ctrl      Controller
	collector telemetry.Collector
	scheduler *reconcile.Scheduler
	monitor   *monitor.Monitor
	sessionID string

	probe func() (display.ProbeInfo, error)

	targetMu sync.Mutex
	target   display.Mode
}

func New(cfg Config, ctrl Controller, source input.Source, collector telemetry.Collector) (*Daemon, error) {
	errFactory := errors.New()

	if !cfg.Target.IsValid() {
		return nil, errFactory.WithData(ErrInvalidConfig, cfg.Target.String())
	}

	if cfg.LockPath == "" {
		cfg.LockPath = pid.DefaultPath()
	}
	if cfg.Heartbeat <= 0 {
		cfg.Heartbeat = defaultHeartbeat
	}

	scheduler, err := reconcile.NewScheduler(cfg.Retry, ctrl)
	if err != nil {
		return nil, err
	}

	d := &Daemon{
		cfg:       cfg,
		ctrl:      ctrl,
		collector: collector,
		scheduler: scheduler,
		sessionID: uuid.NewString(),
		probe:     display.Probe,
		target:    cfg.Target,
	}

	mon, err := monitor.New(cfg.Monitor, source, d.attempt)
	if err != nil {
		return nil, err
	}
	d.monitor = mon

	return d, nil
}

// RunOnce reconciles immediately with a single attempt and returns.
func (d *Daemon) RunOnce(ctx context.Context) error {
	errFactory := errors.New()

	oneShot := reconcile.Config{
		RetryDelay: d.cfg.Retry.RetryDelay,
		MaxRetries: 1,
	}

	scheduler, err := reconcile.NewScheduler(oneShot, d.ctrl)
	if err != nil {
		return err
	}

	outcome := d.reconcileAndRecord(ctx, scheduler, telemetry.TriggerStartup)
	if outcome.Err != nil {
		return errFactory.Wrap(ErrReconcileFailed, outcome.Err)
	}

	return nil
}

// RunBackground claims the instance lock and watches for returns from
// idle until ctx ends. A second instance is the only hard startup
// failure besides a dead display stack.
func (d *Daemon) RunBackground(ctx context.Context) error {
	errFactory := errors.New()

	if err := pid.Acquire(d.cfg.LockPath); err != nil {
		return err
	}
	defer func() {
		if err := pid.Release(d.cfg.LockPath); err != nil {
			logger.Warn().Err(err).Msg("Failed to release instance lock")
		}
	}()

	info, err := d.probe()
	if err != nil {
		return errFactory.Wrap(ErrNoDisplay, err)
	}

	logger.Info().
		Int("displays", info.Displays).
		Int("width", info.PrimaryWidth).
		Int("height", info.PrimaryHeight).
		Msg("Display probe complete")

	if err := d.monitor.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := d.monitor.Stop(); err != nil {
			logger.Warn().Err(err).Msg("Failed to stop activity monitor")
		}
	}()

	logger.Info().
		Str("session_id", d.sessionID).
		Str("target", d.Target().String()).
		Bool("monitor_only", d.cfg.MonitorOnly).
		Msg("Daemon started")

	ticker := time.NewTicker(d.cfg.Heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Daemon shutting down")
			return nil
		case <-ticker.C:
			logger.Debug().
				Time("last_activity", d.monitor.LastActivity()).
				Msg("Daemon heartbeat")
		}
	}
}

// SetTarget replaces the reconciliation target. Monitoring timings are
// fixed per run; only the target follows configuration changes.
func (d *Daemon) SetTarget(target display.Mode) error {
	errFactory := errors.New()

	if !target.IsValid() {
		return errFactory.WithData(ErrInvalidConfig, target.String())
	}

	d.targetMu.Lock()
	defer d.targetMu.Unlock()

	if target != d.target {
		logger.Info().Str("target", target.String()).Msg("Reconciliation target updated")
		d.target = target
	}

	return nil
}

func (d *Daemon) Target() display.Mode {
	d.targetMu.Lock()
	defer d.targetMu.Unlock()

	return d.target
}

// attempt runs when the monitor detects a return from idle. Failure is
// logged, never fatal; the next return from idle tries again.
func (d *Daemon) attempt(ctx context.Context) {
	if d.cfg.MonitorOnly {
		logger.Info().
			Str("target", d.Target().String()).
			Msg("Monitor-only mode; skipping reconciliation")

		return
	}

	outcome := d.reconcileAndRecord(ctx, d.scheduler, telemetry.TriggerActivityReturn)
	if outcome.Err != nil {
		logger.Error().Err(outcome.Err).Msg("Reconciliation failed")
	}
}

func (d *Daemon) reconcileAndRecord(ctx context.Context, scheduler *reconcile.Scheduler, trigger string) reconcile.Outcome {
	target := d.Target()

	from := telemetry.ModeMetrics{}
	if mode, err := d.ctrl.CurrentMode(); err == nil {
		from = modeMetrics(mode)
	}

	outcome := scheduler.Reconcile(ctx, target)

	errText := ""
	if outcome.Err != nil {
		errText = outcome.Err.Error()
	}

	record := &telemetry.ReconcileOutcome{
		Timestamp:  time.Now(),
		SessionID:  d.sessionID,
		Trigger:    trigger,
		Attempts:   outcome.Attempts,
		AlreadySet: outcome.AlreadySet,
		Success:    outcome.Success,
		ErrorText:  errText,
		From:       from,
		To:         modeMetrics(target),
	}

	if err := d.collector.Record(ctx, record); err != nil {
		logger.Warn().Err(err).Msg("Failed to record reconciliation outcome")
	}

	return outcome
}

func modeMetrics(mode display.Mode) telemetry.ModeMetrics {
	return telemetry.ModeMetrics{
		Width:     mode.Width,
		Height:    mode.Height,
		RefreshHz: mode.RefreshRate,
	}
}
