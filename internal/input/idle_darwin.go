//go:build darwin

package input

import (
	"os/exec"
	"strconv"
	"strings"
	"time"

	"codeberg.org/telvik/displayctl/internal/errors"
)

// sampleIdleTime reads HIDIdleTime, in nanoseconds, from the
// IOHIDSystem registry entry.
func sampleIdleTime() (time.Duration, error) {
	errFactory := errors.New()

	out, err := exec.Command("ioreg", "-c", "IOHIDSystem", "-d", "4", "-k", "HIDIdleTime").Output()
	if err != nil {
		return 0, errFactory.Wrap(ErrProbeUnavailable, err)
	}

	return parseHIDIdleTime(string(out))
}

func parseHIDIdleTime(out string) (time.Duration, error) {
	errFactory := errors.New()

	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "HIDIdleTime") {
			continue
		}

		idx := strings.LastIndex(line, "=")
		if idx < 0 {
			continue
		}

		ns, err := strconv.ParseInt(strings.TrimSpace(line[idx+1:]), 10, 64)
		if err != nil {
			continue
		}

		return time.Duration(ns), nil
	}

	return 0, errFactory.WithMessage(ErrProbeUnavailable, "HIDIdleTime not found")
}
