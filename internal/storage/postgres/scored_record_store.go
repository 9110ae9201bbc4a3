package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/storage"
)

// ScoredRecordStore implements storage.ScoredRecordStore using PostgreSQL.
type ScoredRecordStore struct {
	pool *Pool
}

// NewScoredRecordStore creates a new ScoredRecordStore.
func NewScoredRecordStore(pool *Pool) *ScoredRecordStore {
	return &ScoredRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ScoredRecordStore = (*ScoredRecordStore)(nil)

const selectScoredColumns = `
	SELECT customer_id, age, monthly_income, average_balance, monthly_transactions,
		delinquencies_12m, tenure_months, uses_overdraft, current_limit,
		income_component, balance_component, payment_component, transactions_component, tenure_component,
		credit_score, category, suggested_limit, monthly_rate::text, projected_monthly_revenue::text
	FROM scored_records
`

// InsertBulk adds all records of a run atomically. Fails entire batch on any duplicate.
// Uses pgx.Batch to send the inserts in one round trip inside a transaction.
func (s *ScoredRecordStore) InsertBulk(ctx context.Context, runID string, records []domain.ScoredRecord) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r.Customer.CustomerID == "" || !r.Category.Valid() {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO scored_records (
			run_id, customer_id, age, monthly_income, average_balance, monthly_transactions,
			delinquencies_12m, tenure_months, uses_overdraft, current_limit,
			income_component, balance_component, payment_component, transactions_component, tenure_component,
			credit_score, category, suggested_limit, monthly_rate, projected_monthly_revenue
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19::numeric, $20::numeric)
	`

	batch := &pgx.Batch{}
	for _, r := range records {
		c := r.Customer
		batch.Queue(query,
			runID,
			c.CustomerID,
			c.Age,
			c.MonthlyIncome,
			c.AverageBalance,
			c.MonthlyTransactions,
			c.Delinquencies12m,
			c.TenureMonths,
			c.UsesOverdraft,
			c.CurrentLimit,
			r.Components.Income,
			r.Components.Balance,
			r.Components.PaymentHistory,
			r.Components.Transactions,
			r.Components.Tenure,
			r.CreditScore,
			string(r.Category),
			r.SuggestedLimit,
			r.MonthlyRate.String(),
			r.ProjectedMonthlyRevenue.String(),
		)
	}

	results := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := results.Exec(); err != nil {
			results.Close()
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert scored record in bulk: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByRun retrieves all records of a run ordered by credit_score DESC, customer_id ASC.
func (s *ScoredRecordStore) GetByRun(ctx context.Context, runID string) ([]domain.ScoredRecord, error) {
	query := selectScoredColumns + `
		WHERE run_id = $1
		ORDER BY credit_score DESC, customer_id ASC
	`

	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("get scored records by run: %w", err)
	}
	defer rows.Close()

	return scanScoredRecords(rows)
}

// GetByCategory retrieves records of a run in one category, same ordering as GetByRun.
func (s *ScoredRecordStore) GetByCategory(ctx context.Context, runID string, category domain.Category) ([]domain.ScoredRecord, error) {
	query := selectScoredColumns + `
		WHERE run_id = $1 AND category = $2
		ORDER BY credit_score DESC, customer_id ASC
	`

	rows, err := s.pool.Query(ctx, query, runID, string(category))
	if err != nil {
		return nil, fmt.Errorf("get scored records by category: %w", err)
	}
	defer rows.Close()

	return scanScoredRecords(rows)
}

// scanScoredRecords scans multiple rows into a slice of ScoredRecord.
func scanScoredRecords(rows pgx.Rows) ([]domain.ScoredRecord, error) {
	var records []domain.ScoredRecord

	for rows.Next() {
		var r domain.ScoredRecord
		var category, rate, revenue string
		c := &r.Customer

		err := rows.Scan(
			&c.CustomerID,
			&c.Age,
			&c.MonthlyIncome,
			&c.AverageBalance,
			&c.MonthlyTransactions,
			&c.Delinquencies12m,
			&c.TenureMonths,
			&c.UsesOverdraft,
			&c.CurrentLimit,
			&r.Components.Income,
			&r.Components.Balance,
			&r.Components.PaymentHistory,
			&r.Components.Transactions,
			&r.Components.Tenure,
			&r.CreditScore,
			&category,
			&r.SuggestedLimit,
			&rate,
			&revenue,
		)
		if err != nil {
			return nil, fmt.Errorf("scan scored record row: %w", err)
		}

		r.Category = domain.Category(category)
		if r.MonthlyRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("parse monthly rate %q: %w", rate, err)
		}
		if r.ProjectedMonthlyRevenue, err = decimal.NewFromString(revenue); err != nil {
			return nil, fmt.Errorf("parse projected revenue %q: %w", revenue, err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scored record rows: %w", err)
	}

	return records, nil
}
