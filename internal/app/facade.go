package app

import (
	"context"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
	"github.com/devxankit/Electrici-toys/internal/pkg/auth"
	"github.com/devxankit/Electrici-toys/internal/usecase"
)

// HealthChecker reports storage reachability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StoreFacade exposes order use cases and token parsing to the HTTP layer.
type StoreFacade struct {
	tokens    auth.Strategy
	placement *usecase.PlacementUseCase
	payments  *usecase.PaymentUseCase
	statuses  *usecase.StatusUseCase
	queries   *usecase.QueryUseCase
	health    HealthChecker
}

func NewStoreFacade(
	tokens auth.Strategy,
	placement *usecase.PlacementUseCase,
	payments *usecase.PaymentUseCase,
	statuses *usecase.StatusUseCase,
	queries *usecase.QueryUseCase,
	health HealthChecker,
) *StoreFacade {
	return &StoreFacade{
		tokens:    tokens,
		placement: placement,
		payments:  payments,
		statuses:  statuses,
		queries:   queries,
		health:    health,
	}
}

func (f *StoreFacade) ParseToken(token string) (model.Actor, error) {
	return f.tokens.ParseToken(token)
}

func (f *StoreFacade) PlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) (*model.Order, error) {
	return f.placement.Place(ctx, in)
}

func (f *StoreFacade) VerifyPayment(ctx context.Context, reference, transactionID, paymentStatus string) (*model.Order, error) {
	return f.payments.Verify(ctx, reference, transactionID, paymentStatus)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, reference, newStatus string) (*model.Order, error) {
	return f.statuses.UpdateStatus(ctx, reference, newStatus)
}

func (f *StoreFacade) CancelOrder(ctx context.Context, reference string, actor model.Actor) (*model.Order, error) {
	return f.statuses.Cancel(ctx, reference, actor)
}

func (f *StoreFacade) Orders(ctx context.Context) ([]model.OrderView, error) {
	return f.queries.ListAll(ctx)
}

func (f *StoreFacade) UserOrders(ctx context.Context, userID string) ([]model.OrderView, error) {
	return f.queries.ListByUser(ctx, userID)
}

func (f *StoreFacade) Order(ctx context.Context, id string, actor model.Actor) (*model.OrderView, error) {
	return f.queries.Get(ctx, id, actor)
}

func (f *StoreFacade) Ping(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
