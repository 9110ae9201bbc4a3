package postgres

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/storage"
	"credit-score-lab/internal/verification"
)

func scoredFixture(id string, score int, category domain.Category, limit int64, rate, revenue string) domain.ScoredRecord {
	return domain.ScoredRecord{
		Customer: domain.CustomerRecord{
			CustomerID:          id,
			Age:                 40,
			MonthlyIncome:       20000,
			AverageBalance:      30000,
			MonthlyTransactions: 40,
			TenureMonths:        48,
		},
		Components: domain.ScoreComponents{
			Income:         40,
			Balance:        30,
			PaymentHistory: 100,
			Transactions:   40,
			Tenure:         40,
		},
		CreditScore:             score,
		Category:                category,
		SuggestedLimit:          limit,
		MonthlyRate:             decimal.RequireFromString(rate),
		ProjectedMonthlyRevenue: decimal.RequireFromString(revenue),
	}
}

func TestScoredRecordStore_InsertBulkAndGetByRun(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewScoredRecordStore(pool)
	ctx := context.Background()

	records := []domain.ScoredRecord{
		scoredFixture("CLI00001", 450, domain.CategoryStandard, 15000, "2.5", "225"),
		scoredFixture("CLI00002", 900, domain.CategoryPremium, 50000, "1.2", "360"),
		scoredFixture("CLI00003", 450, domain.CategoryStandard, 15000, "2.5", "225"),
	}

	err := store.InsertBulk(ctx, "run-a", records)
	require.NoError(t, err)

	result, err := store.GetByRun(ctx, "run-a")
	require.NoError(t, err)
	require.Len(t, result, 3)

	// Score DESC, then customer_id ASC
	assert.Equal(t, "CLI00002", result[0].Customer.CustomerID)
	assert.Equal(t, "CLI00001", result[1].Customer.CustomerID)
	assert.Equal(t, "CLI00003", result[2].Customer.CustomerID)

	top := result[0]
	assert.Equal(t, 900, top.CreditScore)
	assert.Equal(t, domain.CategoryPremium, top.Category)
	assert.Equal(t, int64(50000), top.SuggestedLimit)
	assert.True(t, top.MonthlyRate.Equal(decimal.RequireFromString("1.2")), "rate %s", top.MonthlyRate)
	assert.True(t, top.ProjectedMonthlyRevenue.Equal(decimal.NewFromInt(360)), "revenue %s", top.ProjectedMonthlyRevenue)
	assert.Equal(t, records[1].Components, top.Components)
}

func TestScoredRecordStore_DuplicateWithinRun(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewScoredRecordStore(pool)
	ctx := context.Background()

	rec := scoredFixture("CLI00001", 120, domain.CategoryRisk, 5000, "3.5", "105")
	require.NoError(t, store.InsertBulk(ctx, "run-a", []domain.ScoredRecord{rec}))

	err := store.InsertBulk(ctx, "run-a", []domain.ScoredRecord{rec})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// The same customer under a different run is accepted
	err = store.InsertBulk(ctx, "run-b", []domain.ScoredRecord{rec})
	assert.NoError(t, err)
}

func TestScoredRecordStore_KeepsFullDecimalScale(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewScoredRecordStore(pool)
	ctx := context.Background()

	// Risk tier at 3.45% with utilization 0.63 on a 5000 limit.
	rec := scoredFixture("CLI00001", 120, domain.CategoryRisk, 5000, "3.45", "108.675")
	require.NoError(t, store.InsertBulk(ctx, "run-a", []domain.ScoredRecord{rec}))

	got, err := store.GetByRun(ctx, "run-a")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.True(t, got[0].MonthlyRate.Equal(rec.MonthlyRate), "rate %s", got[0].MonthlyRate)
	assert.True(t, got[0].ProjectedMonthlyRevenue.Equal(rec.ProjectedMonthlyRevenue), "revenue %s", got[0].ProjectedMonthlyRevenue)
	assert.Empty(t, verification.CompareScoredRecords(got[0], rec))
}

func TestScoredRecordStore_GetByCategory(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewScoredRecordStore(pool)
	ctx := context.Background()

	err := store.InsertBulk(ctx, "run-a", []domain.ScoredRecord{
		scoredFixture("CLI00001", 650, domain.CategoryGold, 30000, "1.8", "324"),
		scoredFixture("CLI00002", 120, domain.CategoryRisk, 5000, "3.5", "105"),
		scoredFixture("CLI00003", 700, domain.CategoryGold, 30000, "1.8", "324"),
	})
	require.NoError(t, err)

	gold, err := store.GetByCategory(ctx, "run-a", domain.CategoryGold)
	require.NoError(t, err)

	require.Len(t, gold, 2)
	assert.Equal(t, "CLI00003", gold[0].Customer.CustomerID)
	assert.Equal(t, "CLI00001", gold[1].Customer.CustomerID)
}

func TestScoredRecordStore_InvalidInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewScoredRecordStore(pool)

	err := store.InsertBulk(context.Background(), "", []domain.ScoredRecord{
		scoredFixture("CLI00001", 120, domain.CategoryRisk, 5000, "3.5", "105"),
	})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
