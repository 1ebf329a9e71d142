package repository

import (
	"context"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// OutboxRepository hands pending order events to the relay.
type OutboxRepository interface {
	ClaimBatch(ctx context.Context, limit int) ([]model.OutboxEvent, error)
	MarkSent(ctx context.Context, id int64) error
}
