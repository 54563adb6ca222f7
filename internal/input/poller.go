package input

import (
	"context"
	"sync"
	"time"

	"codeberg.org/telvik/displayctl/internal/errors"
	"codeberg.org/telvik/displayctl/internal/logger"
)

const (
	defaultPollInterval = time.Second
	eventBufferSize     = 32
)

type sampleFunc func() (time.Duration, error)

// Poller derives activity events from the system idle counter. The
// counter resets to zero on user input, so a drop between two samples
// means input happened in between.
type Poller struct {
	interval time.Duration
	sample   sampleFunc
	events   chan Event

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPoller creates a poller sampling the platform idle counter at the
// given interval. A non-positive interval falls back to one second.
func NewPoller(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	return &Poller{
		interval: interval,
		sample:   sampleIdleTime,
		events:   make(chan Event, eventBufferSize),
	}
}

func (p *Poller) Start(ctx context.Context) error {
	errFactory := errors.New()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return errFactory.New(ErrAlreadyStarted)
	}

	// The first sample doubles as the probe check and seeds the baseline.
	idle, err := p.sample()
	if err != nil {
		return errFactory.Wrap(ErrSubscribeFailed, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.started = true

	go p.run(runCtx, idle)

	logger.Debug().Dur("interval", p.interval).Msg("Activity polling started")

	return nil
}

func (p *Poller) Events() <-chan Event {
	return p.events
}

func (p *Poller) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return nil
	}

	p.cancel()
	<-p.done
	p.started = false

	return nil
}

func (p *Poller) run(ctx context.Context, prev time.Duration) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur, err := p.sample()
			if err != nil {
				logger.Debug().Err(err).Msg("Idle probe read failed")
				continue
			}

			if cur < prev {
				p.emit(Event{At: time.Now().Add(-cur)})
			}
			prev = cur
		}
	}
}

func (p *Poller) emit(event Event) {
	select {
	case p.events <- event:
	default:
		// drop when the consumer lags
	}
}
