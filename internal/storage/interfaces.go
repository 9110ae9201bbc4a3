package storage

import (
	"context"

	"credit-score-lab/internal/domain"
)

// CustomerStore provides access to customers storage.
type CustomerStore interface {
	// Insert adds a new customer. Returns ErrDuplicateKey if customer_id exists.
	Insert(ctx context.Context, c domain.CustomerRecord) error

	// InsertBulk adds multiple customers atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, customers []domain.CustomerRecord) error

	// GetByID retrieves a customer by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, customerID string) (domain.CustomerRecord, error)

	// GetAll retrieves all customers ordered by customer_id ASC.
	GetAll(ctx context.Context) ([]domain.CustomerRecord, error)
}

// ScoredRecordStore provides access to scored_records storage.
// Records are append-only and keyed by (run_id, customer_id).
type ScoredRecordStore interface {
	// InsertBulk adds all records of a run atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, runID string, records []domain.ScoredRecord) error

	// GetByRun retrieves all records of a run ordered by credit_score DESC, customer_id ASC.
	GetByRun(ctx context.Context, runID string) ([]domain.ScoredRecord, error)

	// GetByCategory retrieves records of a run in one category, same ordering as GetByRun.
	GetByCategory(ctx context.Context, runID string, category domain.Category) ([]domain.ScoredRecord, error)
}

// CategorySummaryStore provides access to category_summaries storage.
// Summaries are append-only and keyed by (run_id, category).
type CategorySummaryStore interface {
	// InsertBulk adds all summaries of a run atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, summaries []domain.CategorySummary) error

	// GetByRun retrieves summaries of a run in tier order (Premium first).
	GetByRun(ctx context.Context, runID string) ([]domain.CategorySummary, error)
}
