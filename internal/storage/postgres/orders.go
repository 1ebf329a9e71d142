package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

const orderColumns = `id, gateway_session_id, user_id, total_amount::text, payment_method, payment_status,
                   transaction_id, shipping_address_id, order_status, status_timestamps, version, created_at, updated_at`

// orderRow mirrors the orders table before conversion to the domain type.
type orderRow struct {
	ID               string
	SessionID        *string
	UserID           string
	Total            string
	PaymentMethod    string
	PaymentStatus    string
	TransactionID    *string
	AddressID        string
	Status           string
	StatusTimestamps []byte
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (r *orderRow) dest() []any {
	return []any{
		&r.ID, &r.SessionID, &r.UserID, &r.Total, &r.PaymentMethod, &r.PaymentStatus,
		&r.TransactionID, &r.AddressID, &r.Status, &r.StatusTimestamps, &r.Version, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *orderRow) toModel() (*model.Order, error) {
	total, err := decimal.NewFromString(r.Total)
	if err != nil {
		return nil, fmt.Errorf("order %s total: %w", r.ID, err)
	}
	timestamps, err := decodeTimestamps(r.StatusTimestamps)
	if err != nil {
		return nil, fmt.Errorf("order %s timestamps: %w", r.ID, err)
	}
	return &model.Order{
		ID:                r.ID,
		GatewaySessionID:  deref(r.SessionID),
		UserID:            r.UserID,
		TotalAmount:       total,
		PaymentMethod:     model.PaymentMethod(r.PaymentMethod),
		PaymentStatus:     model.PaymentStatus(r.PaymentStatus),
		TransactionID:     deref(r.TransactionID),
		ShippingAddressID: r.AddressID,
		Status:            model.OrderStatus(r.Status),
		StatusTimestamps:  timestamps,
		Version:           r.Version,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}, nil
}

func decodeTimestamps(raw []byte) (map[model.OrderStatus]time.Time, error) {
	timestamps := make(map[model.OrderStatus]time.Time)
	if len(raw) == 0 {
		return timestamps, nil
	}
	if err := json.Unmarshal(raw, &timestamps); err != nil {
		return nil, err
	}
	return timestamps, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order, event model.OutboxEvent) error {
	timestamps, err := json.Marshal(order.StatusTimestamps)
	if err != nil {
		return fmt.Errorf("encode status timestamps: %w", err)
	}

	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (id, gateway_session_id, user_id, total_amount, payment_method, payment_status,
                   transaction_id, shipping_address_id, order_status, status_timestamps, version, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
		if _, err := tx.Exec(ctx, insertOrder,
			order.ID, nullable(order.GatewaySessionID), order.UserID, order.TotalAmount,
			string(order.PaymentMethod), string(order.PaymentStatus), nullable(order.TransactionID),
			order.ShippingAddressID, string(order.Status), timestamps, order.Version, order.CreatedAt, order.UpdatedAt,
		); err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, position, product_id, quantity, unit_price, line_total)
                   VALUES ($1, $2, $3, $4, $5, $6)`
		for i, item := range order.Items {
			if _, err := tx.Exec(ctx, insertItem, order.ID, i, item.ProductID, item.Quantity, item.UnitPrice, item.LineTotal); err != nil {
				return fmt.Errorf("insert item %d: %w", i, err)
			}
		}

		return insertEvent(ctx, tx, event)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("order %s already stored: %w", order.ID, err)
		}
		return err
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
}

func (r *orderRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE gateway_session_id=$1`, sessionID)
}

func (r *orderRepository) getOne(ctx context.Context, query string, arg string) (*model.Order, error) {
	var row orderRow
	if err := r.storage.pool.QueryRow(ctx, query, arg).Scan(row.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}

	order, err := row.toModel()
	if err != nil {
		return nil, err
	}

	items, err := r.items(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (r *orderRepository) items(ctx context.Context, orderID string) ([]model.LineItem, error) {
	const query = `SELECT product_id, quantity, unit_price::text, line_total::text
                   FROM order_items WHERE order_id=$1 ORDER BY position`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.LineItem
	for rows.Next() {
		var (
			item             model.LineItem
			unitPrice, total string
		)
		if err := rows.Scan(&item.ProductID, &item.Quantity, &unitPrice, &total); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("order %s unit price: %w", orderID, err)
		}
		if item.LineTotal, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("order %s line total: %w", orderID, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update writes the mutable order fields guarded by the version column.
// Line items and totals are immutable after placement.
func (r *orderRepository) Update(ctx context.Context, order *model.Order, event model.OutboxEvent) error {
	timestamps, err := json.Marshal(order.StatusTimestamps)
	if err != nil {
		return fmt.Errorf("encode status timestamps: %w", err)
	}

	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const updateQuery = `UPDATE orders
                   SET payment_status=$1, transaction_id=$2, order_status=$3, status_timestamps=$4,
                       version=version+1, updated_at=$5
                   WHERE id=$6 AND version=$7`
		tag, err := tx.Exec(ctx, updateQuery,
			string(order.PaymentStatus), nullable(order.TransactionID), string(order.Status), timestamps,
			order.UpdatedAt, order.ID, order.Version,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrConcurrentModification
		}
		return insertEvent(ctx, tx, event)
	})
	if err != nil {
		return err
	}

	order.Version++
	return nil
}

func insertEvent(ctx context.Context, tx pgx.Tx, event model.OutboxEvent) error {
	const query = `INSERT INTO order_outbox (event_id, event_type, order_id, payload, created_at)
                   VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(ctx, query, event.EventID, string(event.Type), event.OrderID, event.Payload, event.CreatedAt); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}
