package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionView is the read projection returned to clients and stored in the
// Redis read cache.
type TransactionView struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	SessionID string          `json:"session_id"`
}

// Summary is the net balance of a session: credits minus debits.
type Summary struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToView converts the write model to its read projection.
func (t *Transaction) ToView() *TransactionView {
	return &TransactionView{
		ID:        t.ID,
		Title:     t.Title,
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
		SessionID: t.SessionID,
	}
}

// MarshalJSON writes Amount as a JSON number rather than decimal's default
// quoted string.
func (v TransactionView) MarshalJSON() ([]byte, error) {
	type plain TransactionView
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain(v), json.Number(v.Amount.String())})
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount json.Number `json:"amount"`
	}{json.Number(s.Amount.String())})
}
