package reconcile

import (
	"context"
	"time"

	"codeberg.org/telvik/displayctl/internal/display"
	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/logger"
)

const (
	DefaultRetryDelay = 10 * time.Second
	DefaultMaxRetries = 3
)

// Config bounds a reconciliation run.
type Config struct {
	// RetryDelay separates consecutive failed attempts. No delay runs
	// after the final attempt.
	RetryDelay time.Duration
	// MaxRetries is the total attempt budget, first attempt included.
	MaxRetries int
}

func DefaultConfig() Config {
	return Config{
		RetryDelay: DefaultRetryDelay,
		MaxRetries: DefaultMaxRetries,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.MaxRetries < 1 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			MaxRetries int
		}{c.MaxRetries})
	}

	if c.RetryDelay < 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			RetryDelay time.Duration
		}{c.RetryDelay})
	}

	return nil
}

// Outcome reports how a reconciliation run ended. Err is set when the
// target state was not reached; the caller decides whether that is
// fatal.
type Outcome struct {
	Success    bool
	AlreadySet bool
	Attempts   int
	Err        error
}

// Scheduler drives the display toward a target mode with bounded
// retries.
type Scheduler struct {
	cfg  Config
	ctrl Controller
}

func NewScheduler(cfg Config, ctrl Controller) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Scheduler{cfg: cfg, ctrl: ctrl}, nil
}

// Reconcile runs up to MaxRetries attempts against target. Every
// attempt re-reads live state first, so a change that landed out of
// band ends the run without another apply.
func (s *Scheduler) Reconcile(ctx context.Context, target display.Mode) Outcome {
	errFactory := errors.New()

	var outcome Outcome

	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			outcome.Err = errFactory.Wrap(ErrCanceled, ctx.Err())
			return outcome
		}

		err := s.attempt(target, &outcome)
		if err == nil {
			return outcome
		}

		outcome.Err = err
		logger.Warn().
			Int("attempt", attempt).
			Int("max_retries", s.cfg.MaxRetries).
			Err(err).
			Msg("Reconciliation attempt failed")

		if attempt == s.cfg.MaxRetries {
			break
		}

		if !s.wait(ctx) {
			outcome.Err = errFactory.Wrap(ErrCanceled, ctx.Err())
			return outcome
		}
	}

	outcome.Err = errFactory.Wrap(ErrRetriesExhausted, outcome.Err)

	return outcome
}

func (s *Scheduler) attempt(target display.Mode, outcome *Outcome) error {
	already, err := s.ctrl.IsAlreadyTarget(target)
	if err != nil {
		// A failed read burns an attempt like a failed apply does.
		outcome.Attempts++
		return err
	}

	if already {
		logger.Info().Msgf("Display is already set to %dx%d at %d Hz.",
			target.Width, target.Height, target.RefreshRate)
		outcome.Success = true
		outcome.AlreadySet = true

		return nil
	}

	outcome.Attempts++
	if err := s.ctrl.Apply(target); err != nil {
		return err
	}

	outcome.Success = true

	return nil
}

// wait sleeps for the retry delay, reporting false when ctx ends first
func (s *Scheduler) wait(ctx context.Context) bool {
	timer := time.NewTimer(s.cfg.RetryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
