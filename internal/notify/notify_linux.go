//go:build linux

package notify

import (
	"os/exec"

	"codeberg.org/telvik/displayctl/internal/errors"
)

func osNotify(title, body string) error {
	errFactory := errors.New()

	path, err := exec.LookPath("notify-send")
	if err != nil {
		return errFactory.Wrap(errors.ErrNotifyFailed, err)
	}

	if err := exec.Command(path, title, body).Run(); err != nil {
		return errFactory.Wrap(errors.ErrNotifyFailed, err)
	}

	return nil
}
