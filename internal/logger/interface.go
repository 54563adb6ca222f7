package logger

import "codeberg.org/telvik/displayctl/internal/errors"

// Logger is the logging surface handed to packages that take a
// logger as a dependency instead of calling the package directly.
type Logger interface {
	Debug() *LogEvent
	Info() *LogEvent
	Warn() *LogEvent
	Error() *LogEvent
	ErrorWithCode(err errors.Error) *LogEvent
}

// defaultLogger adapts the package-level functions to Logger
type defaultLogger struct{}

func (defaultLogger) Debug() *LogEvent { return Debug() }
func (defaultLogger) Info() *LogEvent  { return Info() }
func (defaultLogger) Warn() *LogEvent  { return Warn() }
func (defaultLogger) Error() *LogEvent { return Error() }

func (defaultLogger) ErrorWithCode(err errors.Error) *LogEvent {
	return ErrorWithCode(err)
}

// Default returns a Logger backed by the package-level logger
func Default() Logger {
	return defaultLogger{}
}
