package storage

import "errors"

// Errors shared by every store backend. Stores are append-only: customers
// are keyed by customer_id, scored records and summaries by run_id.
var (
	// ErrNotFound is returned when a customer or run has no stored rows.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a customer_id or run_id is written twice.
	ErrDuplicateKey = errors.New("duplicate key: append-only store does not allow updates")

	// ErrInvalidInput is returned for empty keys or mismatched run ids in a batch.
	ErrInvalidInput = errors.New("invalid input")
)
