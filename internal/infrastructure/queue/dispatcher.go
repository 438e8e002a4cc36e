package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/fundbridge/platform/internal/api/metrics"
	"github.com/fundbridge/platform/internal/core/domain"
	"github.com/fundbridge/platform/internal/core/ports"
)

const (
	defaultWorkers  = 8
	channelBuffer   = 256
	defaultAttempts = 5
	defaultBackoff  = 200 * time.Millisecond
)

// Processor settles one payment event. ports.PaymentService satisfies it.
type Processor interface {
	Process(ctx context.Context, event domain.PaymentEvent) error
}

var _ Processor = (ports.PaymentService)(nil)

// Dispatcher routes payment events to a fixed set of workers by hashing the
// project ID, so events for one project are applied in arrival order.
type Dispatcher struct {
	workers   []chan domain.PaymentEvent
	processor Processor
	log       zerolog.Logger

	// attempts bounds Process calls per event; backoff doubles between them.
	attempts int
	backoff  time.Duration
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor Processor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.PaymentEvent, numWorkers),
		processor: processor,
		log:       log.With().Str("component", "dispatcher").Logger(),
		attempts:  defaultAttempts,
		backoff:   defaultBackoff,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.PaymentEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands the event to the worker owning its project.
// The call blocks only once that worker's buffer is full.
func (d *Dispatcher) Enqueue(event domain.PaymentEvent) {
	idx := d.shardIndex(event.Intent.ProjectID)
	d.workers[idx] <- event
	metrics.PaymentQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a project ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(projectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(projectID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.PaymentEvent) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.PaymentQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			d.process(ctx, id, event)
		}
	}
}

// process runs one event, retrying transient failures in place so later
// events for the same project still wait behind it.
func (d *Dispatcher) process(ctx context.Context, id int, event domain.PaymentEvent) {
	wait := d.backoff
	for attempt := 1; ; attempt++ {
		start := time.Now()
		err := d.processor.Process(ctx, event)
		if err == nil {
			metrics.PaymentProcessingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
			metrics.PaymentEventsProcessedTotal.Inc()
			return
		}
		metrics.PaymentProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())

		if permanent(err) || attempt >= d.attempts {
			d.fail(id, event, attempt, err)
			return
		}

		d.log.Warn().Err(err).
			Str("event", event.ID).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Msg("payment event failed, retrying")

		select {
		case <-ctx.Done():
			d.fail(id, event, attempt, ctx.Err())
			return
		case <-time.After(wait):
		}
		wait *= 2
	}
}

// permanent reports errors a retry cannot fix.
func permanent(err error) bool {
	return errors.Is(err, domain.ErrProjectNotFound) || errors.Is(err, domain.ErrInvalidAmount)
}

func (d *Dispatcher) fail(id int, event domain.PaymentEvent, attempts int, err error) {
	reason := "process_failed"
	if errors.Is(err, domain.ErrProjectNotFound) {
		reason = "project_not_found"
	}
	metrics.PaymentEventsErrorsTotal.WithLabelValues(reason).Inc()

	d.log.Error().Err(err).
		Str("event", event.ID).
		Str("project_id", event.Intent.ProjectID).
		Int("worker_id", id).
		Int("attempts", attempts).
		Msg("payment event processing failed")
}
