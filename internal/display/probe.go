package display

import (
	"github.com/kbinani/screenshot"

	"codeberg.org/telvik/displayctl/internal/errors"
)

// ProbeInfo summarizes what the desktop session exposes before the
// backend is asked to do anything
type ProbeInfo struct {
	Displays      int
	PrimaryWidth  int
	PrimaryHeight int
}

// Probe verifies that at least one active display is attached and
// reports the primary display bounds
func Probe() (ProbeInfo, error) {
	errFactory := errors.New()

	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return ProbeInfo{}, errFactory.New(ErrNoActiveDisplay)
	}

	bounds := screenshot.GetDisplayBounds(0)

	return ProbeInfo{
		Displays:      n,
		PrimaryWidth:  bounds.Dx(),
		PrimaryHeight: bounds.Dy(),
	}, nil
}
