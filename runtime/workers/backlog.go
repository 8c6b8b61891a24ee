package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sync-lab/contract"
	"sync-lab/domain/event"
)

var _ contract.Worker = (*BacklogWorker)(nil)

// Gauge samples the length and capacity of a buffered queue.
type Gauge struct {
	Name   string
	Sample func() (length, capacity int)
}

// BacklogWorker periodically samples queues and warns once a queue crosses
// threshold percent of its capacity. It warns again only after the queue
// went back under the threshold. Sampling len/cap never blocks producers.
type BacklogWorker struct {
	log       *slog.Logger
	bus       contract.EventPublisher
	gauges    []Gauge
	interval  time.Duration
	threshold int
	above     map[string]bool
}

func NewBacklogWorker(log *slog.Logger, bus contract.EventPublisher,
	interval time.Duration, threshold int, gauges ...Gauge) *BacklogWorker {
	return &BacklogWorker{
		log: log, bus: bus, gauges: gauges,
		interval:  interval,
		threshold: threshold,
		above:     make(map[string]bool, len(gauges)),
	}
}

func (w *BacklogWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping backlog sampling")
			return nil
		case <-ticker.C:
			w.Sample()
		}
	}
}

// Sample checks every gauge once.
func (w *BacklogWorker) Sample() {
	for _, g := range w.gauges {
		length, capacity := g.Sample()
		if capacity <= 0 {
			continue
		}
		percent := length * 100 / capacity
		wasAbove := w.above[g.Name]
		w.above[g.Name] = percent >= w.threshold
		if percent < w.threshold || wasAbove {
			continue
		}
		w.log.Warn("Queue backlog above threshold", "name", g.Name, "length", length, "capacity", capacity)
		if w.bus != nil {
			w.bus.Publish(event.New(event.WarningType, "", event.Warning{
				Reason: fmt.Sprintf("%s backlog at %d%% (%d/%d)", g.Name, percent, length, capacity),
			}))
		}
	}
}
