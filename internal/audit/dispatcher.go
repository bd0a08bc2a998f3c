package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	ActionUserSignup      = "user_signup"
	ActionUserLogin       = "user_login"
	ActionUserLogout      = "user_logout"
	ActionPasswordChanged = "password_changed"
	ActionUserDeactivated = "user_deactivated"
	ActionAnalysisCreated = "analysis_created"
	ActionAnalysisDeleted = "analysis_deleted"

	EntityUser     = "user"
	EntityAnalysis = "color_analysis"

	defaultQueueSize = 100
	writeTimeout     = 5 * time.Second
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Recorder accepts audit events without blocking the caller.
type Recorder interface {
	Dispatch(ev Event)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Dispatch(Event) {}

// Dispatcher writes events from a buffered queue on a single worker.
// A full queue drops the event; audit never fails a request.
type Dispatcher struct {
	logger *Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *Logger, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, queueSize),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.logger.Log(ctx, ev); err != nil {
			slog.Error("audit_write_failed", "action", ev.Action, "err", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		slog.Warn("audit_dispatcher_closed", "action", ev.Action)
		return
	}

	select {
	case d.queue <- ev:
	default:
		slog.Warn("audit_queue_full", "action", ev.Action)
	}
}

// Close stops accepting events and waits for queued ones to be written,
// or for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UintPtr is a small helper for optional ids on events.
func UintPtr(v uint) *uint {
	return &v
}
