package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/lifeflow/donation-platform/internal/api/metrics"
	"github.com/lifeflow/donation-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes appointment events to a fixed set of workers using
// consistent hashing on the camp ID, guaranteeing per-camp event ordering.
type Dispatcher struct {
	workers   []chan ports.AppointmentEvent
	processor ports.AppointmentEventProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.AppointmentEventProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.AppointmentEvent, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AppointmentEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its camp.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.AppointmentEvent) {
	d.workers[d.shardIndex(event.CampID)] <- event
}

// shardIndex maps a camp ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(campID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(campID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.AppointmentEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.processor.Process(ctx, event); err != nil {
				metrics.AppointmentEventsTotal.WithLabelValues(string(event.Kind), "error").Inc()
				d.log.Error().Err(err).
					Str("appointment_id", event.AppointmentID).
					Int("worker_id", id).
					Msg("appointment event processing failed")
				continue
			}
			metrics.AppointmentEventsTotal.WithLabelValues(string(event.Kind), "processed").Inc()
		}
	}
}
