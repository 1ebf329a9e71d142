package model

import (
	"fmt"
	"strings"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
)

// PaymentStatus is the gateway-reported state of an order's payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// ParsePaymentStatus is case-insensitive and returns the canonical spelling.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	trimmed := strings.TrimSpace(raw)
	for _, status := range []PaymentStatus{PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed} {
		if strings.EqualFold(trimmed, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: unknown payment status %q", domainErrors.ErrInvalidRequest, raw)
}

// PaymentMethod is how the customer chose to pay.
type PaymentMethod string

const (
	PaymentMethodCOD             PaymentMethod = "COD"
	PaymentMethodCard            PaymentMethod = "Card"
	PaymentMethodWallet          PaymentMethod = "Wallet"
	PaymentMethodGatewayRedirect PaymentMethod = "GatewayRedirect"
)

// ParsePaymentMethod is case-insensitive. An empty value selects the
// gateway redirect flow and "razorpay" is kept as an alias for it.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "gatewayredirect", "razorpay":
		return PaymentMethodGatewayRedirect, nil
	case "cod":
		return PaymentMethodCOD, nil
	case "card":
		return PaymentMethodCard, nil
	case "wallet":
		return PaymentMethodWallet, nil
	default:
		return "", fmt.Errorf("%w: unknown payment method %q", domainErrors.ErrInvalidRequest, raw)
	}
}

// RoutesThroughGateway reports whether placement must open a gateway session.
func (m PaymentMethod) RoutesThroughGateway() bool {
	return m == PaymentMethodGatewayRedirect
}

// SessionRequest asks the gateway to open a payment session.
type SessionRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
}

// PaymentSession is the gateway's answer to a SessionRequest.
type PaymentSession struct {
	ID     string
	Status string
	Amount int64
}
