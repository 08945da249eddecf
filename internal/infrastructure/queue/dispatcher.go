package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/cvboost/scoring-system/internal/api/metrics"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes billing events to a fixed set of workers using consistent
// hashing on the subscription id, so events for one subscription are applied
// in arrival order even though the provider gives no ordering guarantee
// across deliveries.
type Dispatcher struct {
	workers []chan ports.BillingEventInput
	service ports.BillingService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.BillingService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.BillingEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.BillingEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its subscription.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.BillingEventInput) {
	d.workers[d.shardIndex(event)] <- event
	metrics.QueueDepth.Inc()
}

// shardIndex maps an event deterministically to a worker index. Events
// without a subscription id (one-time orders) shard by customer email.
func (d *Dispatcher) shardIndex(event ports.BillingEventInput) int {
	key := event.SubscriptionID
	if key == "" {
		key = event.CustomerEmail
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.BillingEventInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.QueueDepth.Dec()
			start := time.Now()
			if err := d.service.Process(ctx, event); err != nil {
				metrics.BillingEventsTotal.WithLabelValues(event.Type, "error").Inc()
				d.log.Error().Err(err).
					Str("event_id", event.EventID).
					Int("worker_id", id).
					Msg("billing event processing failed")
			} else {
				metrics.BillingEventsTotal.WithLabelValues(event.Type, "processed").Inc()
			}
			metrics.BillingProcessingDuration.WithLabelValues(event.Type).Observe(time.Since(start).Seconds())
		}
	}
}
