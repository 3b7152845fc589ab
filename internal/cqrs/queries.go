package cqrs

// GetTransactionQuery fetches a single transaction visible to the session.
type GetTransactionQuery struct {
	TransactionID string
	SessionID     string
}

// ListTransactionsQuery fetches every transaction of a session.
type ListTransactionsQuery struct {
	SessionID string
}

// SummaryQuery computes the net balance of a session.
type SummaryQuery struct {
	SessionID string
}
