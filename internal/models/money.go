package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// milliunitScale is the factor between a currency amount and YNAB's
// integer milliunit representation (1.00 -> 1000).
var milliunitScale = decimal.NewFromInt(1000)

// ParseAmount parses a decimal amount string as exported by Yonder.
// Amounts in the export are unsigned; the direction column carries the sign.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must be non-negative, got %s", s)
	}
	return d, nil
}

// Milliunits converts a decimal currency amount to the YNAB integer
// milliunit scale.
func Milliunits(d decimal.Decimal) int64 {
	return d.Mul(milliunitScale).IntPart()
}

// FromMilliunits converts a YNAB milliunit amount back to a decimal
// currency amount.
func FromMilliunits(m int64) decimal.Decimal {
	return decimal.New(m, -3)
}
