package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

// outboxClaimLease is how long a claimed event stays invisible to other
// relays before it is offered again.
const outboxClaimLease = 30 * time.Second

// ClaimBatch locks unsent events, stamps them as claimed and returns them in
// insertion order.
func (r *outboxRepository) ClaimBatch(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	const selectQuery = `SELECT id, event_id, event_type, order_id, payload, created_at
                         FROM order_outbox
                         WHERE sent_at IS NULL
                           AND (claimed_at IS NULL OR claimed_at < NOW() - make_interval(secs => $2))
                         ORDER BY id
                         LIMIT $1
                         FOR UPDATE SKIP LOCKED`

	var events []model.OutboxEvent
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, selectQuery, limit, outboxClaimLease.Seconds())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				e         model.OutboxEvent
				eventType string
			)
			if err := rows.Scan(&e.ID, &e.EventID, &eventType, &e.OrderID, &e.Payload, &e.CreatedAt); err != nil {
				return err
			}
			e.Type = model.EventType(eventType)
			events = append(events, e)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for _, e := range events {
			if _, err := tx.Exec(ctx, `UPDATE order_outbox SET claimed_at=NOW() WHERE id=$1`, e.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id int64) error {
	_, err := r.storage.pool.Exec(ctx, `UPDATE order_outbox SET sent_at=NOW() WHERE id=$1`, id)
	return err
}
