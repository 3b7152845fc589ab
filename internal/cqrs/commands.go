package cqrs

import "github.com/shopspring/decimal"

// CreateTransactionCommand records a movement. Amount is the unsigned magnitude;
// the sign is derived from Type. SessionID must already be resolved.
type CreateTransactionCommand struct {
	SessionID string
	Title     string
	Amount    decimal.Decimal
	Type      string
}
