package model

import (
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
)

// LineItem is one product snapshot inside an order. UnitPrice is captured at
// placement and never re-read from the catalog.
type LineItem struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

func NewLineItem(productID string, quantity int64, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: unitPrice.Mul(decimal.NewFromInt(quantity)),
	}
}

// SumLineTotals adds line totals exactly.
func SumLineTotals(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal)
	}
	return total
}

// Order is the aggregate persisted by the order repository.
type Order struct {
	ID                string
	GatewaySessionID  string
	UserID            string
	Items             []LineItem
	TotalAmount       decimal.Decimal
	PaymentMethod     PaymentMethod
	PaymentStatus     PaymentStatus
	TransactionID     string
	ShippingAddressID string
	Status            OrderStatus
	StatusTimestamps  map[OrderStatus]time.Time
	Version           int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewOrder builds a freshly placed order in pending status.
func NewOrder(id, userID, shippingAddressID string, method PaymentMethod, items []LineItem, sessionID string, now time.Time) *Order {
	owned := make([]LineItem, len(items))
	copy(owned, items)

	return &Order{
		ID:                id,
		GatewaySessionID:  sessionID,
		UserID:            userID,
		Items:             owned,
		TotalAmount:       SumLineTotals(owned),
		PaymentMethod:     method,
		PaymentStatus:     PaymentStatusPending,
		ShippingAddressID: shippingAddressID,
		Status:            OrderStatusPending,
		StatusTimestamps:  map[OrderStatus]time.Time{OrderStatusPending: now},
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Reference returns the identifier the payment callback uses for this order.
func (o *Order) Reference() string {
	if o.GatewaySessionID != "" {
		return o.GatewaySessionID
	}
	return o.ID
}

// TransitionTo moves the order along the lifecycle. The order is left
// untouched when the move is rejected.
func (o *Order) TransitionTo(to OrderStatus, at time.Time) error {
	if !to.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	if !CanTransition(o.Status, to) {
		return &domainErrors.TransitionError{From: string(o.Status), To: string(to)}
	}

	o.Status = to
	if o.StatusTimestamps == nil {
		o.StatusTimestamps = make(map[OrderStatus]time.Time)
	}
	if _, seen := o.StatusTimestamps[to]; !seen {
		o.StatusTimestamps[to] = at
	}
	o.UpdatedAt = at
	return nil
}

// ApplyPayment records the gateway outcome. A paid report advances a pending
// order to processing; in any other status only the payment fields change.
// It returns false when the report repeats what is already stored.
func (o *Order) ApplyPayment(status PaymentStatus, transactionID string, at time.Time) bool {
	advance := status == PaymentStatusPaid && o.Status == OrderStatusPending
	if o.PaymentStatus == status && o.TransactionID == transactionID && !advance {
		return false
	}

	o.PaymentStatus = status
	o.TransactionID = transactionID
	o.UpdatedAt = at
	if advance {
		_ = o.TransitionTo(OrderStatusProcessing, at)
	}
	return true
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = make([]LineItem, len(o.Items))
	copy(c.Items, o.Items)
	c.StatusTimestamps = make(map[OrderStatus]time.Time, len(o.StatusTimestamps))
	for k, v := range o.StatusTimestamps {
		c.StatusTimestamps[k] = v
	}
	return &c
}
