package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sync-lab/contract"
	"sync-lab/domain/event"
)

var (
	_ contract.Worker         = (*EventFanout)(nil)
	_ contract.EventPublisher = (*EventFanout)(nil)
)

// EventFanout broadcasts events to multiple in-process consumers.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// durability, or retries. EventFanout is not a message broker.
// Publish never blocks: when the buffer is full the event is dropped.
// Events reach each sink in publish order.
//
// EventFanout is safe for concurrent use by multiple goroutines.
type EventFanout struct {
	log         *slog.Logger
	events      chan event.Event
	sinkTimeout time.Duration

	mu    sync.RWMutex
	sinks []contract.EventSink
}

func NewEventFanout(log *slog.Logger, bufferSize int, sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{
		log:         log,
		events:      make(chan event.Event, bufferSize),
		sinkTimeout: sinkTimeout,
		sinks:       sinks,
	}
}

func (w *EventFanout) Add(sinks ...contract.EventSink) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sinks = append(w.sinks, sinks...)
}

func (w *EventFanout) Publish(e event.Event) {
	select {
	case w.events <- e:
	default:
		w.log.Warn(fmt.Sprintf("Event channel full, dropping %s", e.Type))
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		}
	}
}

// Fanout One sink for each event
func (w *EventFanout) Fanout(ctx context.Context, evt event.Event) {
	w.mu.RLock()
	sinks := w.sinks
	w.mu.RUnlock()

	for _, sink := range sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Debug("Sink failed to consume event", "type", evt.Type, "error", err)
		}
		cancel()
	}
}

// Backlog reports queued events and buffer size.
func (w *EventFanout) Backlog() (length, capacity int) {
	return len(w.events), cap(w.events)
}
