package daemon

import "codeberg.org/telvik/displayctl/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig

	// Lifecycle Errors
	ErrNoDisplay       = errors.ErrorCode("daemon_no_display")
	ErrReconcileFailed = errors.ErrorCode("daemon_reconcile_failed")
)
