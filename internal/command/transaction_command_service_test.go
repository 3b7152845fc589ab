package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eaglebank/ledger/internal/cqrs"
	"github.com/eaglebank/ledger/internal/events"
	"github.com/eaglebank/ledger/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	created []*models.Transaction
	err     error
}

func (f *fakeWriter) Create(_ context.Context, tx *models.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, tx)
	return nil
}

type fakeCache struct {
	views []*models.TransactionView
}

func (f *fakeCache) CacheTransactionView(_ context.Context, view *models.TransactionView) {
	f.views = append(f.views, view)
}

type fakePublisher struct {
	events []any
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, stream, eventType string, data any) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, data)
	return nil
}

func newService(w *fakeWriter, c *fakeCache, p *fakePublisher) *TransactionCommandService {
	svc := NewTransactionCommandService(w, c, p)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateTransactionSignConvention(t *testing.T) {
	tests := []struct {
		txType string
		amount string
		want   string
	}{
		{models.TypeCredit, "1000", "1000"},
		{models.TypeDebit, "400", "-400"},
		{models.TypeDebit, "0.01", "-0.01"},
	}
	for _, tt := range tests {
		t.Run(tt.txType+" "+tt.amount, func(t *testing.T) {
			w, c, p := &fakeWriter{}, &fakeCache{}, &fakePublisher{}
			svc := newService(w, c, p)

			tx, err := svc.CreateTransaction(context.Background(), cqrs.CreateTransactionCommand{
				SessionID: "session-a",
				Title:     "  Salary ",
				Amount:    decimal.RequireFromString(tt.amount),
				Type:      tt.txType,
			})
			require.NoError(t, err)
			require.Len(t, w.created, 1)

			stored := w.created[0]
			assert.True(t, stored.Amount.Equal(decimal.RequireFromString(tt.want)), "got %s", stored.Amount)
			assert.Equal(t, "  Salary ", stored.Title, "title is stored unchanged")
			assert.Equal(t, "session-a", stored.SessionID)
			assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), stored.CreatedAt)
			_, err = uuid.Parse(stored.ID)
			assert.NoError(t, err)
			assert.Same(t, stored, tx)

			require.Len(t, c.views, 1)
			assert.Equal(t, stored.ID, c.views[0].ID)

			require.Len(t, p.events, 1)
			event := p.events[0].(events.TransactionCreatedEvent)
			assert.Equal(t, tt.txType, event.Type)
			assert.True(t, event.Amount.Equal(stored.Amount))
		})
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	valid := cqrs.CreateTransactionCommand{
		SessionID: "session-a",
		Title:     "Rent",
		Amount:    decimal.NewFromInt(400),
		Type:      models.TypeDebit,
	}

	tests := []struct {
		name    string
		mutate  func(*cqrs.CreateTransactionCommand)
		wantErr error
	}{
		{"missing session", func(c *cqrs.CreateTransactionCommand) { c.SessionID = "" }, models.ErrUnauthorized},
		{"blank title", func(c *cqrs.CreateTransactionCommand) { c.Title = "   " }, models.ErrValidation},
		{"zero amount", func(c *cqrs.CreateTransactionCommand) { c.Amount = decimal.Zero }, models.ErrValidation},
		{"negative amount", func(c *cqrs.CreateTransactionCommand) { c.Amount = decimal.NewFromInt(-1) }, models.ErrValidation},
		{"unknown type", func(c *cqrs.CreateTransactionCommand) { c.Type = "transfer" }, models.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &fakeWriter{}
			svc := newService(w, &fakeCache{}, &fakePublisher{})
			cmd := valid
			tt.mutate(&cmd)

			_, err := svc.CreateTransaction(context.Background(), cmd)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, w.created, "nothing may be written on validation failure")
		})
	}
}

func TestCreateTransactionPersistenceFailure(t *testing.T) {
	w := &fakeWriter{err: models.Persistence("create transaction", errors.New("disk full"))}
	c := &fakeCache{}
	p := &fakePublisher{}
	svc := newService(w, c, p)

	_, err := svc.CreateTransaction(context.Background(), cqrs.CreateTransactionCommand{
		SessionID: "session-a", Title: "Salary", Amount: decimal.NewFromInt(1), Type: models.TypeCredit,
	})
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.Empty(t, c.views)
	assert.Empty(t, p.events)
}

func TestCreateTransactionPublishFailureIsNotFatal(t *testing.T) {
	w := &fakeWriter{}
	svc := newService(w, &fakeCache{}, &fakePublisher{err: errors.New("redis down")})

	_, err := svc.CreateTransaction(context.Background(), cqrs.CreateTransactionCommand{
		SessionID: "session-a", Title: "Salary", Amount: decimal.NewFromInt(1), Type: models.TypeCredit,
	})
	require.NoError(t, err)
	assert.Len(t, w.created, 1)
}
