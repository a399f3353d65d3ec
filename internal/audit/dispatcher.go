package audit

import (
	"log/slog"
	"sync"

	"github.com/BruksfildServices01/studio-manager/internal/logger"
)

type Event struct {
	StudioID uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

const queueSize = 100

// Dispatcher writes audit events from a single background worker. Audit must
// never fail a request, so a full queue drops the event.
type Dispatcher struct {
	writer *Logger
	log    *slog.Logger
	queue  chan Event
	wg     sync.WaitGroup
	once   sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(writer *Logger, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		log:    logger.Component(log, "audit"),
		queue:  make(chan Event, queueSize),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for ev := range d.queue {
		if err := d.writer.Log(ev); err != nil {
			d.log.Error("audit write failed", "action", ev.Action, "error", err)
		}
	}
}

// Dispatch is a no-op on a nil or closed dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", "action", ev.Action, "studio_id", ev.StudioID)
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", "action", ev.Action, "studio_id", ev.StudioID)
	}
}

// Close drains the queue and waits for the worker. Later events are dropped.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()

		d.wg.Wait()
	})
}
