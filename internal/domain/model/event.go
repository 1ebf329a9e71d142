package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names an order change published through the outbox.
type EventType string

const (
	EventOrderPlaced         EventType = "order.placed"
	EventOrderPaymentUpdated EventType = "order.payment_updated"
	EventOrderStatusChanged  EventType = "order.status_changed"
)

// OutboxEvent is a change notification written in the same transaction as
// the order it describes.
type OutboxEvent struct {
	ID        int64
	EventID   string
	Type      EventType
	OrderID   string
	Payload   []byte
	CreatedAt time.Time
}

// OrderEventPayload is the JSON body carried by every order event.
type OrderEventPayload struct {
	EventID       string        `json:"eventId"`
	Type          EventType     `json:"type"`
	OrderID       string        `json:"orderId"`
	Reference     string        `json:"reference"`
	UserID        string        `json:"userId"`
	Status        OrderStatus   `json:"status"`
	PreviousState OrderStatus   `json:"previousStatus,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	TotalAmount   string        `json:"totalAmount"`
	OccurredAt    time.Time     `json:"occurredAt"`
}

// NewOrderEvent snapshots the order into an outbox event.
func NewOrderEvent(eventType EventType, order *Order, previous OrderStatus, at time.Time) (OutboxEvent, error) {
	eventID := uuid.NewString()
	payload, err := json.Marshal(OrderEventPayload{
		EventID:       eventID,
		Type:          eventType,
		OrderID:       order.ID,
		Reference:     order.Reference(),
		UserID:        order.UserID,
		Status:        order.Status,
		PreviousState: previous,
		PaymentStatus: order.PaymentStatus,
		PaymentMethod: order.PaymentMethod,
		TotalAmount:   order.TotalAmount.String(),
		OccurredAt:    at.UTC(),
	})
	if err != nil {
		return OutboxEvent{}, err
	}

	return OutboxEvent{
		EventID:   eventID,
		Type:      eventType,
		OrderID:   order.ID,
		Payload:   payload,
		CreatedAt: at,
	}, nil
}
