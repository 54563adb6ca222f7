package display

import "codeberg.org/telvik/displayctl/internal/errors"

const (
	// Backend Errors
	ErrBackendUnavailable = errors.ErrorCode("display_backend_unavailable")
	ErrNoActiveDisplay    = errors.ErrorCode("display_no_active_display")

	// Mode Errors
	ErrInvalidMode = errors.ErrorCode("display_invalid_mode")
	ErrParseFailed = errors.ErrorCode("display_parse_failed")

	// Apply Errors
	ErrApplyFailed = errors.ErrorCode("display_apply_failed")
)
