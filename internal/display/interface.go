package display

import "fmt"

// Mode describes a video output configuration. Equality is structural:
// two modes match only when width, height and refresh rate all match.
type Mode struct {
	Width       int
	Height      int
	RefreshRate int
}

// String renders the mode the way users write it in configs
func (m Mode) String() string {
	return fmt.Sprintf("%dx%d@%dHz", m.Width, m.Height, m.RefreshRate)
}

// IsValid reports whether all mode fields are positive
func (m Mode) IsValid() bool {
	return m.Width > 0 && m.Height > 0 && m.RefreshRate > 0
}

// Backend abstracts the platform display configuration surface
type Backend interface {
	// Name identifies the backend in logs
	Name() string
	// Available reports whether the backend can be used on this system
	Available() error
	// CurrentMode reads the active mode of the primary display
	CurrentMode() (Mode, error)
	// ApplyMode requests a mode change on the primary display
	ApplyMode(mode Mode) error
}
