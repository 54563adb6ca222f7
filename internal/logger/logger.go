package logger

import (
	"io"
	"os"
	"time"

	"codeberg.org/telvik/displayctl/internal/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log zerolog.Logger

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

const (
	logFileMaxSizeMB = 10
	logFileBackups   = 3
)

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

// Init initializes the logger based on the given configuration
func Init(debug, verbose, isService bool) {
	InitWithFile(debug, verbose, isService, "")
}

// InitWithFile initializes the logger and, when logFile is non-empty,
// tees output into a size-rotated log file
func InitWithFile(debug, verbose, isService bool, logFile string) {
	console := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	if isService {
		console.TimeFormat = ""
		console.FormatTimestamp = func(_ interface{}) string {
			return ""
		}
	}

	var output io.Writer = console
	if logFile != "" {
		output = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileBackups,
		})
	}

	log = zerolog.New(output).With().Timestamp().Logger()

	SetLogLevel(WarnLevel) // Default log level

	if debug {
		SetLogLevel(DebugLevel)
	} else if verbose {
		SetLogLevel(InfoLevel)
	}
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// SetLevelFromString sets the global log level from its configuration name
func SetLevelFromString(level string) error {
	switch level {
	case "debug":
		SetLogLevel(DebugLevel)
	case "info":
		SetLogLevel(InfoLevel)
	case "warning", "warn":
		SetLogLevel(WarnLevel)
	case "error":
		SetLogLevel(ErrorLevel)
	default:
		return errors.New().WithData(errors.ErrInvalidLogLevel, level)
	}

	return nil
}

// IsService checks if the application is running as a service
func IsService() bool {
	if _, err := os.Stdin.Stat(); err != nil {
		return true
	}
	if os.Getenv("SERVICE_NAME") != "" || os.Getenv("INVOCATION_ID") != "" {
		return true
	}
	if os.Getppid() == 1 {
		return true
	}

	return ownsProcessGroup()
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message with a specific error code
func ErrorWithCode(err errors.Error) *LogEvent {
	return &LogEvent{log.Error().
		Str("error_code", string(err.Code())).
		Err(err)}
}

// Fatal logs a fatal message and exits the program
func Fatal() *LogEvent {
	return &LogEvent{log.Fatal()}
}

