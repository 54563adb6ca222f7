//go:build darwin

package display

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"codeberg.org/telvik/displayctl/internal/errors"
)

const displayplacerBin = "displayplacer"

// macBackend drives displayplacer, the CLI front end to the
// CoreGraphics display configuration API
type macBackend struct {
	run func(args ...string) ([]byte, error)
}

// DefaultBackend returns the display backend for this platform
func DefaultBackend() Backend {
	return &macBackend{
		run: func(args ...string) ([]byte, error) {
			return exec.Command(displayplacerBin, args...).Output()
		},
	}
}

func (*macBackend) Name() string {
	return displayplacerBin
}

func (*macBackend) Available() error {
	errFactory := errors.New()

	if _, err := exec.LookPath(displayplacerBin); err != nil {
		return errFactory.Wrap(ErrBackendUnavailable, err)
	}

	return nil
}

func (b *macBackend) CurrentMode() (Mode, error) {
	_, mode, err := b.list()
	return mode, err
}

func (b *macBackend) ApplyMode(mode Mode) error {
	errFactory := errors.New()

	id, _, err := b.list()
	if err != nil {
		return err
	}

	spec := fmt.Sprintf("id:%s res:%dx%d hz:%d", id, mode.Width, mode.Height, mode.RefreshRate)
	if _, err := b.run(spec); err != nil {
		return errFactory.Wrap(ErrApplyFailed, execError(err))
	}

	return nil
}

// list reads the first screen block of `displayplacer list`
func (b *macBackend) list() (string, Mode, error) {
	errFactory := errors.New()

	out, err := b.run("list")
	if err != nil {
		return "", Mode{}, errFactory.Wrap(ErrBackendUnavailable, execError(err))
	}

	var id string
	var mode Mode
scan:
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Persistent screen id:"):
			if id != "" {
				// Keep the first screen block only
				break scan
			}
			id = strings.TrimSpace(strings.TrimPrefix(line, "Persistent screen id:"))
		case strings.HasPrefix(line, "Resolution:"):
			res := strings.TrimSpace(strings.TrimPrefix(line, "Resolution:"))
			mode.Width, mode.Height, _ = parseResolution(res)
		case strings.HasPrefix(line, "Hertz:"):
			hz := strings.TrimSpace(strings.TrimPrefix(line, "Hertz:"))
			mode.RefreshRate, _ = strconv.Atoi(hz)
		}
	}

	if id == "" || !mode.IsValid() {
		return "", Mode{}, errFactory.WithMessage(ErrParseFailed, "no active screen found")
	}

	return id, mode, nil
}
