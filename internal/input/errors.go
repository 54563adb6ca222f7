package input

import "codeberg.org/telvik/displayctl/internal/errors"

const (
	// Lifecycle Errors
	ErrSubscribeFailed = errors.ErrorCode("input_subscribe_failed")
	ErrAlreadyStarted  = errors.ErrorCode("input_already_started")

	// Probe Errors
	ErrProbeUnavailable = errors.ErrorCode("input_probe_unavailable")
)
