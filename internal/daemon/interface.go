package daemon

import "codeberg.org/telvik/displayctl/internal/display"

// Controller is the daemon's view of the display controller.
type Controller interface {
	CurrentMode() (display.Mode, error)
	IsAlreadyTarget(target display.Mode) (bool, error)
	Apply(target display.Mode) error
}
