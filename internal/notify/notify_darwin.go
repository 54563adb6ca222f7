//go:build darwin

package notify

import (
	"fmt"
	"os/exec"

	"codeberg.org/telvik/displayctl/internal/errors"
)

func osNotify(title, body string) error {
	errFactory := errors.New()

	script := fmt.Sprintf("display notification %q with title %q", body, title)
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return errFactory.Wrap(errors.ErrNotifyFailed, err)
	}

	return nil
}
