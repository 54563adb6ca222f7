package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/logger"
)

const pidFile = "displayctl.pid"

// DefaultPath returns the lockfile location in the system temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), pidFile)
}

// Acquire claims the single-instance lockfile at path. A live holder is
// the only hard failure; lockfile I/O trouble logs a warning and the
// caller proceeds unlocked. The check and the write are not atomic, so
// two processes starting in the same instant can both pass.
func Acquire(path string) error {
	errFactory := errors.New()

	if holder, alive := livePID(path); alive {
		return errFactory.WithData(errors.ErrAlreadyRunning, struct {
			Pid int
		}{holder})
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o600); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Cannot write PID file; continuing without instance lock")
		return nil
	}

	logger.Debug().Str("path", path).Int("pid", os.Getpid()).Msg("Instance lock acquired")

	return nil
}

// Release removes the lockfile when it still names this process. A
// lockfile overtaken by another instance is left in place.
func Release(path string) error {
	errFactory := errors.New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errFactory.Wrap(errors.ErrLockIO, err)
	}

	if holder, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil && holder != os.Getpid() {
		logger.Debug().Int("pid", holder).Str("path", path).Msg("PID file overtaken; leaving it")
		return nil
	}

	if err := os.Remove(path); err != nil {
		return errFactory.Wrap(errors.ErrLockIO, err)
	}

	return nil
}

// livePID reads the lockfile and reports whether the recorded process
// is still alive. Missing files, garbage content, and read failures
// all count as stale.
func livePID(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", path).Msg("Cannot read PID file; assuming stale")
		}

		return 0, false
	}

	holder, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		logger.Debug().Str("path", path).Msg("Discarding malformed PID file")
		return 0, false
	}

	alive, err := process.PidExists(int32(holder))
	if err != nil {
		logger.Warn().Err(err).Int("pid", holder).Msg("Cannot check PID liveness; assuming stale")
		return 0, false
	}

	if !alive {
		logger.Info().Int("pid", holder).Msg("Reclaiming stale PID file")
	}

	return holder, alive
}
