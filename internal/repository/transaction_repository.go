package repository

import (
	"context"

	"github.com/eaglebank/ledger/internal/models"
	"github.com/eaglebank/ledger/internal/storage"
)

// TransactionWriteRepository handles all state-mutating operations for transactions.
// It operates exclusively against the relational store (source of truth).
type TransactionWriteRepository struct {
	db *storage.DB
}

func NewTransactionWriteRepository(db *storage.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Create inserts the transaction in a single statement, so a record is either
// stored with all its fields or not at all.
func (r *TransactionWriteRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	query := r.db.Rebind(`
		INSERT INTO transactions (id, session_id, title, amount, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		transaction.ID, transaction.SessionID, transaction.Title,
		transaction.Amount, transaction.CreatedAt,
	)
	if err != nil {
		return models.Persistence("create transaction", err)
	}
	return nil
}
