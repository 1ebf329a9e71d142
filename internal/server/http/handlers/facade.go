package handlers

import (
	"context"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
	"github.com/devxankit/Electrici-toys/internal/usecase"
)

// TokenParser resolves a bearer token into the calling actor.
type TokenParser interface {
	ParseToken(token string) (model.Actor, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) (*model.Order, error)
	VerifyPayment(ctx context.Context, reference, transactionID, paymentStatus string) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, reference, newStatus string) (*model.Order, error)
	CancelOrder(ctx context.Context, reference string, actor model.Actor) (*model.Order, error)
	Orders(ctx context.Context) ([]model.OrderView, error)
	UserOrders(ctx context.Context, userID string) ([]model.OrderView, error)
	Order(ctx context.Context, id string, actor model.Actor) (*model.OrderView, error)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	TokenParser
	OrderFacade
	Ping(ctx context.Context) error
}
