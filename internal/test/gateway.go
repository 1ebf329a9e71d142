package test

import (
	"context"
	"fmt"
	"sync"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// GatewayStub records session requests and answers with CreateFn or a
// generated session.
type GatewayStub struct {
	mu       sync.Mutex
	CreateFn func(context.Context, model.SessionRequest) (*model.PaymentSession, error)
	Requests []model.SessionRequest
}

func (g *GatewayStub) CreateSession(ctx context.Context, req model.SessionRequest) (*model.PaymentSession, error) {
	g.mu.Lock()
	g.Requests = append(g.Requests, req)
	n := len(g.Requests)
	g.mu.Unlock()

	if g.CreateFn != nil {
		return g.CreateFn(ctx, req)
	}
	return &model.PaymentSession{ID: fmt.Sprintf("order_test_%d", n), Status: "created", Amount: req.AmountMinor}, nil
}

// Calls returns how many sessions were requested.
func (g *GatewayStub) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Requests)
}

// ObserverRecorder counts business events.
type ObserverRecorder struct {
	mu          sync.Mutex
	Placed      map[model.PaymentMethod]int
	Failures    map[string]int
	Transitions []string
}

func (o *ObserverRecorder) OrderPlaced(method model.PaymentMethod) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Placed == nil {
		o.Placed = make(map[model.PaymentMethod]int)
	}
	o.Placed[method]++
}

func (o *ObserverRecorder) PlacementFailed(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Failures == nil {
		o.Failures = make(map[string]int)
	}
	o.Failures[reason]++
}

func (o *ObserverRecorder) StatusChanged(from, to model.OrderStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Transitions = append(o.Transitions, string(from)+"->"+string(to))
}
