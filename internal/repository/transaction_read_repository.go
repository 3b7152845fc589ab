package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/ledger/internal/models"
	ledgerredis "github.com/eaglebank/ledger/internal/redis"
	"github.com/eaglebank/ledger/internal/storage"
	"github.com/shopspring/decimal"
)

const transactionViewKeyPrefix = "transaction:view:"

// TransactionReadRepository handles all read operations for transactions.
// Single-transaction reads try the Redis view cache first and fall back to the
// relational store on a miss. Every query is filtered by session_id.
type TransactionReadRepository struct {
	db    *storage.DB
	cache *ledgerredis.ViewCache[models.TransactionView]
}

// NewTransactionReadRepository accepts a nil cache, in which case every read
// goes to the database.
func NewTransactionReadRepository(db *storage.DB, cache *ledgerredis.ViewCache[models.TransactionView]) *TransactionReadRepository {
	return &TransactionReadRepository{db: db, cache: cache}
}

func viewCacheKey(sessionID, id string) string {
	return fmt.Sprintf("%s%s:%s", transactionViewKeyPrefix, sessionID, id)
}

// GetByID returns the transaction only if it belongs to sessionID. A row owned by
// another session is reported exactly like a missing row.
func (r *TransactionReadRepository) GetByID(ctx context.Context, id, sessionID string) (*models.TransactionView, error) {
	if view, ok := r.cache.Get(ctx, viewCacheKey(sessionID, id)); ok {
		return view, nil
	}

	query := r.db.Rebind(`
		SELECT id, title, amount, created_at, session_id
		FROM transactions
		WHERE id = ? AND session_id = ?
	`)
	var view models.TransactionView
	err := r.db.QueryRowContext(ctx, query, id, sessionID).Scan(
		&view.ID, &view.Title, &view.Amount, &view.CreatedAt, &view.SessionID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.Persistence("get transaction", err)
	}

	r.CacheTransactionView(ctx, &view)
	return &view, nil
}

// ListBySession returns every transaction of the session in insertion order.
// The result is never nil.
func (r *TransactionReadRepository) ListBySession(ctx context.Context, sessionID string) ([]models.TransactionView, error) {
	query := r.db.Rebind(`
		SELECT id, title, amount, created_at, session_id
		FROM transactions
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC
	`)
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, models.Persistence("list transactions", err)
	}
	defer rows.Close()

	views := make([]models.TransactionView, 0)
	for rows.Next() {
		var view models.TransactionView
		if err := rows.Scan(
			&view.ID, &view.Title, &view.Amount, &view.CreatedAt, &view.SessionID,
		); err != nil {
			return nil, models.Persistence("scan transaction", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Persistence("list transactions", err)
	}
	return views, nil
}

// SumBySession folds the signed amounts of the session. No rows yields zero.
// SQLite keeps amounts as decimal text, so they are added here rather than by
// SUM, which would fold them as floats.
func (r *TransactionReadRepository) SumBySession(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	if r.db.Dialect == storage.DialectSQLite {
		return r.sumInGo(ctx, sessionID)
	}

	query := r.db.Rebind(`
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE session_id = ?
	`)
	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&total); err != nil {
		return decimal.Zero, models.Persistence("sum transactions", err)
	}
	return total, nil
}

func (r *TransactionReadRepository) sumInGo(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT amount
		FROM transactions
		WHERE session_id = ?
	`), sessionID)
	if err != nil {
		return decimal.Zero, models.Persistence("sum transactions", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, models.Persistence("scan amount", err)
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, models.Persistence("sum transactions", err)
	}
	return total, nil
}

// CacheTransactionView stores the read model for a transaction in Redis.
// Transactions are immutable, so entries never need invalidation.
func (r *TransactionReadRepository) CacheTransactionView(ctx context.Context, view *models.TransactionView) {
	r.cache.Set(ctx, viewCacheKey(view.SessionID, view.ID), view)
}
