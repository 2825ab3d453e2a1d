// Package models defines the domain types shared by the parser, the mapper
// and the import pipeline.
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a transaction moves money out of or into the account.
type Direction string

const (
	// DirectionDebit is money leaving the account.
	DirectionDebit Direction = "Debit"
	// DirectionCredit is money entering the account.
	DirectionCredit Direction = "Credit"
)

// ParseDirection converts the CSV token into a Direction.
// Only the two exact tokens used by the Yonder export are accepted.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case string(DirectionDebit):
		return DirectionDebit, nil
	case string(DirectionCredit):
		return DirectionCredit, nil
	default:
		return "", fmt.Errorf("unknown direction token %q (want %q or %q)",
			s, DirectionDebit, DirectionCredit)
	}
}

// YonderTransaction represents one data row of a Yonder CSV export.
type YonderTransaction struct {
	DateTime      time.Time
	Description   string
	AmountGBP     decimal.Decimal
	AmountCharged decimal.Decimal
	Currency      string
	Category      string
	Direction     Direction
	Country       string
}

// ImportResult summarizes the outcome of one import batch as reported by YNAB.
type ImportResult struct {
	Imported   int
	Duplicates int
}

// String renders the user-facing summary relayed back on both ingress channels.
func (r ImportResult) String() string {
	return fmt.Sprintf("Imported new transactions: %d\nSkipped duplicate transactions: %d",
		r.Imported, r.Duplicates)
}
