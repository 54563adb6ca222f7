package reconcile

import "codeberg.org/telvik/displayctl/internal/display"

// Controller is the slice of the display controller the scheduler
// drives. Both calls hit live state; nothing is cached between them.
type Controller interface {
	IsAlreadyTarget(target display.Mode) (bool, error)
	Apply(target display.Mode) error
}
