package test

import (
	"context"
	"errors"
	"sync"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// OutboxSourceStub serves queued batches to the outbox relay and records
// acknowledgements.
type OutboxSourceStub struct {
	Batches  [][]model.OutboxEvent
	ClaimErr error
	MarkErr  error

	mu     sync.Mutex
	sent   []int64
	claims int
}

// ClaimBatch pops the next configured batch, truncated to limit.
func (s *OutboxSourceStub) ClaimBatch(_ context.Context, limit int) ([]model.OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.claims++
	if s.ClaimErr != nil {
		return nil, s.ClaimErr
	}
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	if len(batch) > limit {
		batch = batch[:limit]
	}
	return batch, nil
}

// MarkSent records the acknowledged event id.
func (s *OutboxSourceStub) MarkSent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MarkErr != nil {
		return s.MarkErr
	}
	s.sent = append(s.sent, id)
	return nil
}

// Enqueue appends a batch while the relay may be running.
func (s *OutboxSourceStub) Enqueue(batch []model.OutboxEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Batches = append(s.Batches, batch)
}

// Sent returns acknowledged ids in order.
func (s *OutboxSourceStub) Sent() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.sent...)
}

// Claims returns how many times ClaimBatch ran.
func (s *OutboxSourceStub) Claims() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claims
}

// PublisherStub records published events. Events whose EventID is listed in
// FailFor are rejected.
type PublisherStub struct {
	FailFor map[string]bool

	mu        sync.Mutex
	published []string
}

// Publish records the event or fails for configured ids.
func (p *PublisherStub) Publish(_ context.Context, event model.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailFor[event.EventID] {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event.EventID)
	return nil
}

// Published returns published event ids in order.
func (p *PublisherStub) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.published...)
}
