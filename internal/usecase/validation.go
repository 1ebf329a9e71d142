package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
)

// maxLineQuantity is the largest value the order_items.quantity column holds.
const maxLineQuantity = math.MaxInt32

var (
	hundred       = decimal.NewFromInt(100)
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
)

// ParseQuantity accepts a positive whole number written as an integer or
// with a zero fraction ("2", "2.0").
func ParseQuantity(raw string) (int64, bool) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	if !value.IsInteger() || !value.IsPositive() {
		return 0, false
	}
	if value.GreaterThan(decimal.NewFromInt(maxLineQuantity)) {
		return 0, false
	}
	return value.IntPart(), true
}

// ParseUnitPrice reads a catalog price. Prices must be positive numbers.
func ParseUnitPrice(raw string) (decimal.Decimal, bool) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !value.IsPositive() {
		return decimal.Zero, false
	}
	return value, true
}

// MinorUnits converts a major-unit amount to the gateway's integer minor
// units, rounding half up. Amounts that round to zero or below, or that do
// not fit in an int64, are rejected.
func MinorUnits(amount decimal.Decimal) (int64, error) {
	minor := amount.Mul(hundred).Round(0)
	if !minor.IsPositive() {
		return 0, fmt.Errorf("%w: total %s has no payable minor units", domainErrors.ErrInvalidAmount, amount)
	}
	if minor.GreaterThan(maxMinorUnits) {
		return 0, fmt.Errorf("%w: total %s exceeds the gateway amount range", domainErrors.ErrInvalidAmount, amount)
	}
	return minor.IntPart(), nil
}
