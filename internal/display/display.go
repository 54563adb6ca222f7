package display

import (
	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/logger"
)

// Controller is a stateless facade over a Backend. No state persists
// between calls; every read hits the backend.
type Controller struct {
	backend Backend
}

// New validates backend availability and returns a controller bound to it
func New(backend Backend) (*Controller, error) {
	errFactory := errors.New()

	if err := backend.Available(); err != nil {
		return nil, errFactory.Wrap(ErrBackendUnavailable, err)
	}

	logger.Debug().Str("backend", backend.Name()).Msg("Display backend ready")

	return &Controller{backend: backend}, nil
}

// CurrentMode reads the live mode of the primary display
func (c *Controller) CurrentMode() (Mode, error) {
	errFactory := errors.New()

	mode, err := c.backend.CurrentMode()
	if err != nil {
		return Mode{}, errFactory.Wrap(ErrBackendUnavailable, err)
	}

	return mode, nil
}

// IsAlreadyTarget reports whether the live mode structurally equals target
func (c *Controller) IsAlreadyTarget(target Mode) (bool, error) {
	current, err := c.CurrentMode()
	if err != nil {
		return false, err
	}

	return current == target, nil
}

// Apply requests a change to target. A failed apply leaves the
// controller usable; callers own the retry policy.
func (c *Controller) Apply(target Mode) error {
	errFactory := errors.New()

	if !target.IsValid() {
		return errFactory.WithData(ErrInvalidMode, target.String())
	}

	if err := c.backend.ApplyMode(target); err != nil {
		return errFactory.Wrap(ErrApplyFailed, err)
	}

	logger.Info().Str("mode", target.String()).Msg("Display mode changed")

	return nil
}
