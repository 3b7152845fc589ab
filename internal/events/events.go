package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionCreated = "transaction.created"

	LedgerEventsStream = "ledger.events"
)

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// TransactionCreatedEvent carries the signed amount as stored.
type TransactionCreatedEvent struct {
	TransactionID string          `json:"transactionId"`
	SessionID     string          `json:"sessionId"`
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
}
