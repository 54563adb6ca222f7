package telemetry

import (
	"context"
	"time"
)

// Trigger labels for stored outcomes
const (
	TriggerStartup        = "startup"
	TriggerActivityReturn = "activity_return"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, outcome *ReconcileOutcome) error
	Close() error
}

// Repository defines the interface for outcome storage
type Repository interface {
	Record(outcome *ReconcileOutcome) error
	Close() error
}

// ReconcileOutcome is one finished reconciliation run
type ReconcileOutcome struct {
	Timestamp  time.Time
	SessionID  string
	Trigger    string
	Attempts   int
	AlreadySet bool
	Success    bool
	ErrorText  string
	From       ModeMetrics
	To         ModeMetrics
}

// ModeMetrics mirrors a display mode as stored
type ModeMetrics struct {
	Width     int
	Height    int
	RefreshHz int
}
