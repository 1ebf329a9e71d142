package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is the user record attached to an order view.
type Customer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// ShippingAddress is the address record attached to an order view.
type ShippingAddress struct {
	ID         string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// LineItemView is a line item with its product name resolved.
type LineItemView struct {
	LineItem
	ProductName string
}

// OrderView is the read model returned by queries. Customer and
// ShippingAddress are nil when the referenced record no longer exists.
type OrderView struct {
	ID                string
	GatewaySessionID  string
	UserID            string
	ShippingAddressID string
	Customer          *Customer
	// ShippingAddress is nil when the address row no longer exists.
	ShippingAddress  *ShippingAddress
	Items            []LineItemView
	TotalAmount      decimal.Decimal
	PaymentMethod    PaymentMethod
	PaymentStatus    PaymentStatus
	TransactionID    string
	Status           OrderStatus
	StatusTimestamps map[OrderStatus]time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
