package reconcile

import "codeberg.org/telvik/displayctl/internal/errors"

const (
	ErrInvalidConfig    = errors.ErrorCode("reconcile_invalid_config")
	ErrRetriesExhausted = errors.ErrorCode("reconcile_retries_exhausted")
	ErrCanceled         = errors.ErrorCode("reconcile_canceled")
)
