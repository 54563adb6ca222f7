package telemetry

import "codeberg.org/telvik/displayctl/internal/errors"

const (
	// Configuration Errors
	ErrInvalidConfig = errors.ErrInvalidConfig
	ErrInvalidDBPath = errors.ErrorCode("telemetry_invalid_db_path")

	// Schema Errors
	ErrSchemaInitFailed       = errors.ErrorCode("telemetry_schema_init_failed")
	ErrSchemaValidationFailed = errors.ErrorCode("telemetry_schema_validation_failed")
	ErrSchemaMismatch         = errors.ErrorCode("telemetry_schema_mismatch")
	ErrTransactionFailed      = errors.ErrorCode("telemetry_transaction_failed")

	// Storage Errors
	ErrStorageInit  = errors.ErrInitFailed
	ErrStorageClose = errors.ErrShutdownFailed

	// Service Errors
	ErrServiceShutdown = errors.ErrShutdownFailed

	// Collection Errors
	ErrRecordFailed   = errors.ErrorCode("telemetry_record_failed")
	ErrInvalidOutcome = errors.ErrorCode("telemetry_invalid_outcome")

	// Operation Errors
	ErrOperationTimeout = errors.ErrTimeout
)
