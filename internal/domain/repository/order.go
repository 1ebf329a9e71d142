package repository

import (
	"context"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Create and Update write the order together with its outbox event in one
// transaction. Update succeeds only while order.Version still matches the
// stored row and increments it; a stale version yields
// ErrConcurrentModification.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order, event model.OutboxEvent) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error)
	Update(ctx context.Context, order *model.Order, event model.OutboxEvent) error
}

// OrderViewRepository serves the read model with customer, address and
// product names resolved.
type OrderViewRepository interface {
	ListAll(ctx context.Context) ([]model.OrderView, error)
	GetView(ctx context.Context, id string) (*model.OrderView, error)
	ListByUser(ctx context.Context, userID string) ([]model.OrderView, error)
}
