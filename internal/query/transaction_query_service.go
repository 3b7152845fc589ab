package query

import (
	"context"

	"github.com/eaglebank/ledger/internal/cqrs"
	"github.com/eaglebank/ledger/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type transactionReader interface {
	GetByID(ctx context.Context, id, sessionID string) (*models.TransactionView, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.TransactionView, error)
	SumBySession(ctx context.Context, sessionID string) (decimal.Decimal, error)
}

// TransactionQueryService serves transaction reads. Every query is scoped to the
// caller's session and rejected before storage when the session is missing.
type TransactionQueryService struct {
	readRepo transactionReader
}

func NewTransactionQueryService(readRepo transactionReader) *TransactionQueryService {
	return &TransactionQueryService{readRepo: readRepo}
}

func (s *TransactionQueryService) GetTransaction(ctx context.Context, q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	if q.SessionID == "" {
		return nil, models.ErrMissingSession
	}
	if _, err := uuid.Parse(q.TransactionID); err != nil {
		return nil, models.ErrInvalidTransactionID
	}
	return s.readRepo.GetByID(ctx, q.TransactionID, q.SessionID)
}

func (s *TransactionQueryService) ListTransactions(ctx context.Context, q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
	if q.SessionID == "" {
		return nil, models.ErrMissingSession
	}
	return s.readRepo.ListBySession(ctx, q.SessionID)
}

// GetSummary returns the net balance, exactly zero for a session with no transactions.
func (s *TransactionQueryService) GetSummary(ctx context.Context, q cqrs.SummaryQuery) (*models.Summary, error) {
	if q.SessionID == "" {
		return nil, models.ErrMissingSession
	}
	total, err := s.readRepo.SumBySession(ctx, q.SessionID)
	if err != nil {
		return nil, err
	}
	return &models.Summary{Amount: total}, nil
}
