//go:build linux

package input

import (
	"os/exec"
	"strconv"
	"strings"
	"time"

	"codeberg.org/telvik/displayctl/internal/errors"
)

// sampleIdleTime reads milliseconds since the last input event. X11
// sessions answer through xprintidle; Wayland sessions under GNOME
// answer through the Mutter IdleMonitor D-Bus interface.
func sampleIdleTime() (time.Duration, error) {
	if idle, err := xprintidle(); err == nil {
		return idle, nil
	}

	return mutterIdleTime()
}

func xprintidle() (time.Duration, error) {
	errFactory := errors.New()

	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return 0, errFactory.Wrap(ErrProbeUnavailable, err)
	}

	out, err := exec.Command(path).Output()
	if err != nil {
		return 0, errFactory.Wrap(ErrProbeUnavailable, err)
	}

	ms, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, errFactory.Wrap(ErrProbeUnavailable, err)
	}

	return time.Duration(ms) * time.Millisecond, nil
}

func mutterIdleTime() (time.Duration, error) {
	errFactory := errors.New()

	out, err := exec.Command("dbus-send", "--print-reply",
		"--dest=org.gnome.Mutter.IdleMonitor",
		"/org/gnome/Mutter/IdleMonitor/Core",
		"org.gnome.Mutter.IdleMonitor.GetIdletime").Output()
	if err != nil {
		return 0, errFactory.Wrap(ErrProbeUnavailable, err)
	}

	return parseIdleReply(string(out))
}

// parseIdleReply pulls the uint64 millisecond value out of a dbus-send
// method reply
func parseIdleReply(out string) (time.Duration, error) {
	errFactory := errors.New()

	fields := strings.Fields(out)
	for i, field := range fields {
		if field != "uint64" || i+1 >= len(fields) {
			continue
		}

		ms, err := strconv.ParseInt(fields[i+1], 10, 64)
		if err != nil {
			break
		}

		return time.Duration(ms) * time.Millisecond, nil
	}

	return 0, errFactory.WithMessage(ErrProbeUnavailable, "unexpected GetIdletime reply")
}
