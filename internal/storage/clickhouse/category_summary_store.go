package clickhouse

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/storage"
)

// CategorySummaryStore implements storage.CategorySummaryStore using ClickHouse.
type CategorySummaryStore struct {
	conn *Conn
}

// NewCategorySummaryStore creates a new CategorySummaryStore.
func NewCategorySummaryStore(conn *Conn) *CategorySummaryStore {
	return &CategorySummaryStore{conn: conn}
}

// Compile-time interface check.
var _ storage.CategorySummaryStore = (*CategorySummaryStore)(nil)

// InsertBulk adds all summaries of a run. Fails entire batch on any duplicate.
func (s *CategorySummaryStore) InsertBulk(ctx context.Context, summaries []domain.CategorySummary) error {
	if len(summaries) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	seen := make(map[string]struct{}, len(summaries))
	for _, sum := range summaries {
		if sum.RunID == "" || !sum.Category.Valid() {
			return storage.ErrInvalidInput
		}
		key := sum.RunID + "|" + string(sum.Category)
		if _, exists := seen[key]; exists {
			return storage.ErrDuplicateKey
		}
		seen[key] = struct{}{}
	}

	// ReplacingMergeTree would silently replace, check existing rows for append-only semantics
	for _, sum := range summaries {
		exists, err := s.exists(ctx, sum.RunID, sum.Category)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO category_summaries (
			run_id, category, category_rank, customers,
			mean_score, mean_income, mean_limit,
			total_revenue, revenue_share, customer_share
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, sum := range summaries {
		err = batch.Append(
			sum.RunID, string(sum.Category), uint8(storage.CategoryRank(sum.Category)), uint32(sum.Customers),
			sum.MeanScore, sum.MeanIncome, sum.MeanLimit,
			sum.TotalRevenue, sum.RevenueShare, sum.CustomerShare,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRun retrieves summaries of a run in tier order (Premium first).
func (s *CategorySummaryStore) GetByRun(ctx context.Context, runID string) ([]domain.CategorySummary, error) {
	query := `
		SELECT
			run_id, category, customers,
			mean_score, mean_income, mean_limit,
			toString(total_revenue), revenue_share, customer_share
		FROM category_summaries FINAL
		WHERE run_id = ?
		ORDER BY category_rank ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query by run: %w", err)
	}
	defer rows.Close()

	return scanCategorySummaries(rows)
}

// exists checks if a summary with the given key exists.
func (s *CategorySummaryStore) exists(ctx context.Context, runID string, category domain.Category) (bool, error) {
	query := `
		SELECT count(*) FROM category_summaries FINAL
		WHERE run_id = ? AND category = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, runID, string(category)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Rows interface for scanning
type chRows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// scanCategorySummaries scans multiple rows into a slice.
func scanCategorySummaries(rows chRows) ([]domain.CategorySummary, error) {
	var summaries []domain.CategorySummary

	for rows.Next() {
		var sum domain.CategorySummary
		var category, revenue string
		var customers uint32

		err := rows.Scan(
			&sum.RunID, &category, &customers,
			&sum.MeanScore, &sum.MeanIncome, &sum.MeanLimit,
			&revenue, &sum.RevenueShare, &sum.CustomerShare,
		)
		if err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}

		sum.Category = domain.Category(category)
		sum.Customers = int(customers)
		if sum.TotalRevenue, err = decimal.NewFromString(revenue); err != nil {
			return nil, fmt.Errorf("parse total revenue %q: %w", revenue, err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary rows: %w", err)
	}

	return summaries, nil
}
