package errors

// ErrorCode identifies a failure class with a stable string value
type ErrorCode string

// Error is an error carrying a stable code and an optional cause.
// Codes survive wrapping, so callers match on the code while logs
// and telemetry rows record the rendered message.
type Error interface {
	error
	Code() ErrorCode
	Unwrap() error
}

// Factory defines methods for creating coded errors. Each package
// keeps a private factory and aliases the codes it emits in its
// own errors.go.
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}
