package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Transaction is the write model. Amount is already signed: positive for
// credits, negative for debits.
type Transaction struct {
	ID        string
	SessionID string
	Title     string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// SignedAmount applies the ledger sign convention to a caller-supplied magnitude.
func SignedAmount(txType string, magnitude decimal.Decimal) (decimal.Decimal, error) {
	if !magnitude.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	switch txType {
	case TypeCredit:
		return magnitude, nil
	case TypeDebit:
		return magnitude.Neg(), nil
	default:
		return decimal.Zero, ErrInvalidType
	}
}
