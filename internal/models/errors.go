package models

import (
	"errors"
	"fmt"
)

// Error categories. Every failure surfaced by the services wraps exactly one of them.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("transaction not found")
	ErrPersistence  = errors.New("persistence failure")
)

var (
	ErrInvalidAmount        = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrInvalidType          = fmt.Errorf("%w: type must be credit or debit", ErrValidation)
	ErrEmptyTitle           = fmt.Errorf("%w: title is required", ErrValidation)
	ErrInvalidTransactionID = fmt.Errorf("%w: id must be a valid UUID", ErrValidation)
	ErrMissingSession       = fmt.Errorf("%w: session id is required", ErrUnauthorized)
)

// Persistence wraps a storage failure so callers can classify it with errors.Is
// while keeping the driver error in the chain.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
