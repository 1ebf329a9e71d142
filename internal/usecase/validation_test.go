package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/devxankit/Electrici-toys/internal/domain/errors"
)

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"1", 1, true},
		{" 3 ", 3, true},
		{"2.0", 2, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"1.5", 0, false},
		{"two", 0, false},
		{"", 0, false},
		{"2147483648", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseQuantity(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseQuantity(%q) = %d, %v; want %d, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseUnitPrice(t *testing.T) {
	cases := []struct {
		raw string
		ok  bool
	}{
		{"499.99", true},
		{"0.01", true},
		{"0", false},
		{"-5", false},
		{"abc", false},
		{"", false},
	}

	for _, tc := range cases {
		if _, ok := ParseUnitPrice(tc.raw); ok != tc.ok {
			t.Fatalf("ParseUnitPrice(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
		}
	}
}

func TestMinorUnitsRoundsHalfUp(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{"1000", 100000},
		{"0.30", 30},
		{"10.005", 1001},
		{"10.004", 1000},
		{"0.015", 2},
	}

	for _, tc := range cases {
		got, err := MinorUnits(decimal.RequireFromString(tc.amount))
		if err != nil {
			t.Fatalf("MinorUnits(%s) returned error: %v", tc.amount, err)
		}
		if got != tc.want {
			t.Fatalf("MinorUnits(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestMinorUnitsRejectsUnpayableAmounts(t *testing.T) {
	huge := decimal.NewFromInt(50000000).Mul(decimal.NewFromInt(2147483647))
	cases := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"rounds to zero", decimal.RequireFromString("0.004")},
		{"negative", decimal.RequireFromString("-5")},
		{"overflows int64", huge},
		{"just past int64", decimal.NewFromInt(92233720368547759).Add(decimal.RequireFromString("0.08"))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MinorUnits(tc.amount)
			if !errors.Is(err, domainErrors.ErrInvalidAmount) {
				t.Fatalf("MinorUnits(%s) = %d, %v; want ErrInvalidAmount", tc.amount, got, err)
			}
		})
	}
}
