package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

const viewSelect = `SELECT o.id, o.gateway_session_id, o.user_id, o.total_amount::text, o.payment_method, o.payment_status,
                       o.transaction_id, o.shipping_address_id, o.order_status, o.status_timestamps, o.version,
                       o.created_at, o.updated_at,
                       u.id, u.name, u.email, u.phone,
                       a.id, a.line1, a.line2, a.city, a.state, a.postal_code, a.country
                   FROM orders o
                   LEFT JOIN users u ON u.id = o.user_id
                   LEFT JOIN shipping_addresses a ON a.id = o.shipping_address_id`

type customerRow struct {
	ID, Name, Email, Phone *string
}

type addressRow struct {
	ID, Line1, Line2, City, State, PostalCode, Country *string
}

func (r *viewRepository) ListAll(ctx context.Context) ([]model.OrderView, error) {
	return r.list(ctx, viewSelect+` ORDER BY o.created_at DESC, o.id`)
}

func (r *viewRepository) ListByUser(ctx context.Context, userID string) ([]model.OrderView, error) {
	return r.list(ctx, viewSelect+` WHERE o.user_id=$1 ORDER BY o.created_at DESC, o.id`, userID)
}

func (r *viewRepository) GetView(ctx context.Context, id string) (*model.OrderView, error) {
	views, err := r.list(ctx, viewSelect+` WHERE o.id=$1`, id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domainErrors.ErrOrderNotFound
	}
	return &views[0], nil
}

func (r *viewRepository) list(ctx context.Context, query string, args ...any) ([]model.OrderView, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		views []model.OrderView
		ids   []string
	)
	for rows.Next() {
		var (
			order    orderRow
			customer customerRow
			address  addressRow
		)
		dest := append(order.dest(),
			&customer.ID, &customer.Name, &customer.Email, &customer.Phone,
			&address.ID, &address.Line1, &address.Line2, &address.City, &address.State, &address.PostalCode, &address.Country,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		o, err := order.toModel()
		if err != nil {
			return nil, err
		}
		views = append(views, model.OrderView{
			ID:                o.ID,
			GatewaySessionID:  o.GatewaySessionID,
			UserID:            o.UserID,
			ShippingAddressID: o.ShippingAddressID,
			Customer:          customer.toModel(),
			ShippingAddress:   address.toModel(),
			TotalAmount:       o.TotalAmount,
			PaymentMethod:     o.PaymentMethod,
			PaymentStatus:     o.PaymentStatus,
			TransactionID:     o.TransactionID,
			Status:            o.Status,
			StatusTimestamps:  o.StatusTimestamps,
			CreatedAt:         o.CreatedAt,
			UpdatedAt:         o.UpdatedAt,
		})
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return views, nil
	}

	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].Items = items[views[i].ID]
	}
	return views, nil
}

func (r *viewRepository) items(ctx context.Context, orderIDs []string) (map[string][]model.LineItemView, error) {
	const query = `SELECT i.order_id, i.product_id, COALESCE(p.name, ''), i.quantity, i.unit_price::text, i.line_total::text
                   FROM order_items i
                   LEFT JOIN products p ON p.id = i.product_id
                   WHERE i.order_id = ANY($1)
                   ORDER BY i.order_id, i.position`
	rows, err := r.storage.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]model.LineItemView, len(orderIDs))
	for rows.Next() {
		var (
			orderID          string
			item             model.LineItemView
			unitPrice, total string
		)
		if err := rows.Scan(&orderID, &item.ProductID, &item.ProductName, &item.Quantity, &unitPrice, &total); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("order %s unit price: %w", orderID, err)
		}
		if item.LineTotal, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("order %s line total: %w", orderID, err)
		}
		result[orderID] = append(result[orderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c customerRow) toModel() *model.Customer {
	if c.ID == nil {
		return nil
	}
	return &model.Customer{ID: *c.ID, Name: deref(c.Name), Email: deref(c.Email), Phone: deref(c.Phone)}
}

func (a addressRow) toModel() *model.ShippingAddress {
	if a.ID == nil {
		return nil
	}
	return &model.ShippingAddress{
		ID:         *a.ID,
		Line1:      deref(a.Line1),
		Line2:      deref(a.Line2),
		City:       deref(a.City),
		State:      deref(a.State),
		PostalCode: deref(a.PostalCode),
		Country:    deref(a.Country),
	}
}
