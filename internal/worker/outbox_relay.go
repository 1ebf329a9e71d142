package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// EventSource is the outbox side of the relay.
type EventSource interface {
	ClaimBatch(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkSent(ctx context.Context, id int64) error
}

// Publisher delivers an event to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event model.OutboxEvent) error
}

// OutboxRelay polls the outbox and publishes pending order events with a
// bounded pool of workers. Delivery is at least once: an event whose
// publish succeeded but whose MarkSent failed is claimed again after the
// lease expires.
type OutboxRelay struct {
	source       EventSource
	publisher    Publisher
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.OutboxEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewOutboxRelay constructs the relay worker pool.
func NewOutboxRelay(source EventSource, publisher Publisher, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *OutboxRelay {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &OutboxRelay{
		source:       source,
		publisher:    publisher,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.OutboxEvent, batchSize*workers),
	}
}

// Enabled reports whether the relay has somewhere to publish.
func (r *OutboxRelay) Enabled() bool {
	return r != nil && r.publisher != nil && r.source != nil
}

// Start launches background processing. A disabled relay does nothing.
func (r *OutboxRelay) Start(ctx context.Context) {
	if !r.Enabled() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.jobs = make(chan model.OutboxEvent, r.batchSize*r.workers)

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx, r.jobs)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx, r.jobs)
}

// Stop cancels polling and waits for in-flight events to finish.
func (r *OutboxRelay) Stop() {
	if r == nil {
		return
	}
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *OutboxRelay) dispatch(ctx context.Context, jobs chan<- model.OutboxEvent) {
	defer r.wg.Done()
	defer close(jobs)
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.claimAndDispatch(ctx, jobs)
		}
	}
}

func (r *OutboxRelay) claimAndDispatch(ctx context.Context, jobs chan<- model.OutboxEvent) {
	events, err := r.source.ClaimBatch(ctx, r.batchSize)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error("claim outbox batch failed", slog.String("error", err.Error()))
		}
		return
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		case jobs <- event:
		}
	}
}

func (r *OutboxRelay) worker(ctx context.Context, jobs <-chan model.OutboxEvent) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-jobs:
			if !ok {
				return
			}
			r.handleEvent(ctx, event)
		}
	}
}

func (r *OutboxRelay) handleEvent(ctx context.Context, event model.OutboxEvent) {
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.logger.Warn("publish order event failed",
			slog.String("event_id", event.EventID),
			slog.String("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := r.source.MarkSent(ctx, event.ID); err != nil {
		r.logger.Error("mark outbox event sent failed",
			slog.Int64("id", event.ID),
			slog.String("error", err.Error()),
		)
	}
}
