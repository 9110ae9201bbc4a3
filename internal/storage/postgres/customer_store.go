package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/storage"
)

// CustomerStore implements storage.CustomerStore using PostgreSQL.
type CustomerStore struct {
	pool *Pool
}

// NewCustomerStore creates a new CustomerStore.
func NewCustomerStore(pool *Pool) *CustomerStore {
	return &CustomerStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CustomerStore = (*CustomerStore)(nil)

const insertCustomerQuery = `
	INSERT INTO customers (
		customer_id, age, monthly_income, average_balance, monthly_transactions,
		delinquencies_12m, tenure_months, uses_overdraft, current_limit
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

const selectCustomerColumns = `
	SELECT customer_id, age, monthly_income, average_balance, monthly_transactions,
		delinquencies_12m, tenure_months, uses_overdraft, current_limit
	FROM customers
`

// Insert adds a new customer. Returns ErrDuplicateKey if customer_id exists.
func (s *CustomerStore) Insert(ctx context.Context, c domain.CustomerRecord) error {
	if c.CustomerID == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, insertCustomerQuery, customerArgs(c)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// InsertBulk adds multiple customers atomically. Fails entire batch on any duplicate.
func (s *CustomerStore) InsertBulk(ctx context.Context, customers []domain.CustomerRecord) error {
	if len(customers) == 0 {
		return nil
	}
	for _, c := range customers {
		if c.CustomerID == "" {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range customers {
		if _, err := tx.Exec(ctx, insertCustomerQuery, customerArgs(c)...); err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert customer in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by its ID. Returns ErrNotFound if not exists.
func (s *CustomerStore) GetByID(ctx context.Context, customerID string) (domain.CustomerRecord, error) {
	row := s.pool.QueryRow(ctx, selectCustomerColumns+` WHERE customer_id = $1`, customerID)

	c, err := scanCustomer(row)
	if err != nil {
		if isNotFoundError(err) {
			return domain.CustomerRecord{}, storage.ErrNotFound
		}
		return domain.CustomerRecord{}, fmt.Errorf("get customer by id: %w", err)
	}
	return c, nil
}

// GetAll retrieves all customers ordered by customer_id ASC.
func (s *CustomerStore) GetAll(ctx context.Context) ([]domain.CustomerRecord, error) {
	rows, err := s.pool.Query(ctx, selectCustomerColumns+` ORDER BY customer_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("get all customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.CustomerRecord
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}
	return customers, nil
}

func customerArgs(c domain.CustomerRecord) []any {
	return []any{
		c.CustomerID,
		c.Age,
		c.MonthlyIncome,
		c.AverageBalance,
		c.MonthlyTransactions,
		c.Delinquencies12m,
		c.TenureMonths,
		c.UsesOverdraft,
		c.CurrentLimit,
	}
}

// scanCustomer scans a single row into a CustomerRecord.
func scanCustomer(row pgx.Row) (domain.CustomerRecord, error) {
	var c domain.CustomerRecord
	err := row.Scan(
		&c.CustomerID,
		&c.Age,
		&c.MonthlyIncome,
		&c.AverageBalance,
		&c.MonthlyTransactions,
		&c.Delinquencies12m,
		&c.TenureMonths,
		&c.UsesOverdraft,
		&c.CurrentLimit,
	)
	return c, err
}
