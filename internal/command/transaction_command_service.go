package command

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/eaglebank/ledger/internal/cqrs"
	"github.com/eaglebank/ledger/internal/events"
	"github.com/eaglebank/ledger/internal/models"
	"github.com/google/uuid"
)

type transactionWriter interface {
	Create(ctx context.Context, transaction *models.Transaction) error
}

type viewCacher interface {
	CacheTransactionView(ctx context.Context, view *models.TransactionView)
}

type eventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// TransactionCommandService records transactions. It owns the sign convention:
// amounts are stored already signed so reads can sum them directly. Titles are
// stored exactly as sent; only whitespace-only titles are rejected.
type TransactionCommandService struct {
	writeRepo transactionWriter
	readRepo  viewCacher
	publisher eventPublisher
	now       func() time.Time
}

func NewTransactionCommandService(
	writeRepo transactionWriter,
	readRepo viewCacher,
	publisher eventPublisher,
) *TransactionCommandService {
	return &TransactionCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *TransactionCommandService) CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.Transaction, error) {
	if cmd.SessionID == "" {
		return nil, models.ErrMissingSession
	}
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, models.ErrEmptyTitle
	}
	amount, err := models.SignedAmount(cmd.Type, cmd.Amount)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		ID:        uuid.NewString(),
		SessionID: cmd.SessionID,
		Title:     cmd.Title,
		Amount:    amount,
		CreatedAt: s.now(),
	}
	if err := s.writeRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	s.readRepo.CacheTransactionView(ctx, transaction.ToView())
	if err := s.publisher.Publish(ctx, events.LedgerEventsStream, events.TransactionCreated, events.TransactionCreatedEvent{
		TransactionID: transaction.ID,
		SessionID:     transaction.SessionID,
		Title:         transaction.Title,
		Amount:        transaction.Amount,
		Type:          cmd.Type,
	}); err != nil {
		slog.WarnContext(ctx, "failed to publish transaction.created event",
			"transaction_id", transaction.ID, "error", err)
	}
	return transaction, nil
}
