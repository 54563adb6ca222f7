package monitor

import "codeberg.org/telvik/displayctl/internal/errors"

const (
	ErrInvalidConfig  = errors.ErrorCode("monitor_invalid_config")
	ErrStartFailed    = errors.ErrorCode("monitor_start_failed")
	ErrAlreadyStarted = errors.ErrorCode("monitor_already_started")
)
