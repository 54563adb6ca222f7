package input

import (
	"context"
	"time"
)

// Event marks one observed user input occurrence.
type Event struct {
	// At is the moment the input happened, not the moment it was sampled.
	At time.Time
}

// Source emits user activity events until stopped.
type Source interface {
	// Start begins observation. It fails fast when the idle probe is
	// unusable on this system.
	Start(ctx context.Context) error
	// Events streams observed activity. The channel is never closed;
	// consumers select against their own cancellation.
	Events() <-chan Event
	// Stop halts observation and waits for the worker to exit.
	Stop() error
}
