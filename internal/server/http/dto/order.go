package dto

import (
	"encoding/json"
	"time"
)

// LineItemRequest is one cart entry. Quantity accepts a JSON number or a
// numeric string.
type LineItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  json.RawMessage `json:"quantity"`
}

// PlaceOrderRequest describes POST /api/orders payload.
type PlaceOrderRequest struct {
	Products          []LineItemRequest `json:"products"`
	ShippingAddressID string            `json:"shippingAddressId"`
	PaymentMethod     string            `json:"paymentMethod"`
}

// VerifyPaymentRequest describes the payment callback payload.
type VerifyPaymentRequest struct {
	OrderID       string `json:"orderId"`
	TransactionID string `json:"transactionId"`
	PaymentStatus string `json:"paymentStatus"`
}

// UpdateStatusRequest describes the admin status change payload.
type UpdateStatusRequest struct {
	OrderID   string `json:"orderId"`
	NewStatus string `json:"newStatus"`
}

// CancelOrderRequest describes the cancellation payload.
type CancelOrderRequest struct {
	OrderID string `json:"orderId"`
}

// LineItemResponse is a persisted line item. Money is rendered as a decimal
// string.
type LineItemResponse struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int64  `json:"quantity"`
	Price       string `json:"price"`
	LineTotal   string `json:"lineTotal"`
}

type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type AddressResponse struct {
	ID         string `json:"id"`
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// OrderResponse renders an order or an order view.
type OrderResponse struct {
	ID                string               `json:"id"`
	OrderID           string               `json:"orderId"`
	UserID            string               `json:"userId"`
	User              *CustomerResponse    `json:"user,omitempty"`
	Products          []LineItemResponse   `json:"products"`
	TotalAmount       string               `json:"totalAmount"`
	PaymentMethod     string               `json:"paymentMethod"`
	PaymentStatus     string               `json:"paymentStatus"`
	TransactionID     string               `json:"transactionId,omitempty"`
	ShippingAddress   *AddressResponse     `json:"shippingAddress,omitempty"`
	ShippingAddressID string               `json:"shippingAddressId,omitempty"`
	OrderStatus       string               `json:"orderStatus"`
	StatusTimestamps  map[string]time.Time `json:"statusTimestamps"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// OrderEnvelope wraps a single order.
type OrderEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Order   *OrderResponse `json:"order"`
}

// OrderListEnvelope wraps a list of orders.
type OrderListEnvelope struct {
	Success bool            `json:"success"`
	Total   int             `json:"total"`
	Orders  []OrderResponse `json:"orders"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
