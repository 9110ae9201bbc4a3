package ingestion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/scoring"
)

func completeRow(id string) domain.RawCustomer {
	age, income, balance := 30, 5000.0, 1200.0
	tx, delinq, tenure := 20, 0, 12
	return domain.RawCustomer{
		CustomerID:          &id,
		Age:                 &age,
		MonthlyIncome:       &income,
		AverageBalance:      &balance,
		MonthlyTransactions: &tx,
		Delinquencies12m:    &delinq,
		TenureMonths:        &tenure,
	}
}

func TestExtract_CompleteBatch(t *testing.T) {
	overdraft := true
	limit := int64(3000)
	row := completeRow("CLI00001")
	row.UsesOverdraft = &overdraft
	row.CurrentLimit = &limit

	batch := &domain.CustomerBatch{
		Columns: domain.AllColumns(),
		Rows:    []domain.RawCustomer{row, completeRow("CLI00002")},
	}

	records, err := Extract(batch)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, domain.CustomerRecord{
		CustomerID:          "CLI00001",
		Age:                 30,
		MonthlyIncome:       5000,
		AverageBalance:      1200,
		MonthlyTransactions: 20,
		TenureMonths:        12,
		UsesOverdraft:       true,
		CurrentLimit:        3000,
	}, records[0])

	// Optional fields default to zero values
	assert.False(t, records[1].UsesOverdraft)
	assert.Zero(t, records[1].CurrentLimit)
}

func TestExtract_MissingColumn(t *testing.T) {
	batch := &domain.CustomerBatch{
		Columns: []string{
			domain.ColumnCustomerID,
			domain.ColumnAge,
			domain.ColumnMonthlyIncome,
			domain.ColumnAverageBalance,
			domain.ColumnMonthlyTransactions,
			domain.ColumnTenureMonths,
		},
		Rows: []domain.RawCustomer{completeRow("CLI00001")},
	}

	_, err := Extract(batch)

	var missing *scoring.MissingFieldError
	require.True(t, errors.As(err, &missing), "expected MissingFieldError, got %v", err)
	assert.Equal(t, domain.ColumnDelinquencies12m, missing.Field)
	assert.Empty(t, missing.CustomerID)
}

func TestExtract_NilFieldFailsFast(t *testing.T) {
	bad := completeRow("CLI00002")
	bad.MonthlyIncome = nil

	batch := &domain.CustomerBatch{
		Columns: domain.RequiredColumns(),
		Rows:    []domain.RawCustomer{completeRow("CLI00001"), bad, completeRow("CLI00003")},
	}

	records, err := Extract(batch)
	assert.Nil(t, records)

	var missing *scoring.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.ColumnMonthlyIncome, missing.Field)
	assert.Equal(t, "CLI00002", missing.CustomerID)
}

func TestExtract_EmptyCustomerID(t *testing.T) {
	row := completeRow("")

	_, err := Extract(&domain.CustomerBatch{Columns: domain.RequiredColumns(), Rows: []domain.RawCustomer{row}})

	var missing *scoring.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.ColumnCustomerID, missing.Field)
}

func TestExtract_NilAndEmptyBatch(t *testing.T) {
	records, err := Extract(nil)
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = Extract(&domain.CustomerBatch{Columns: domain.RequiredColumns()})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestToRaw_RoundTripsThroughExtract(t *testing.T) {
	in := []domain.CustomerRecord{
		{CustomerID: "CLI00001", Age: 44, MonthlyIncome: 8000, AverageBalance: 10, MonthlyTransactions: 3, Delinquencies12m: 2, TenureMonths: 9, UsesOverdraft: true, CurrentLimit: 1000},
		{CustomerID: "CLI00002", Age: 19, MonthlyIncome: 2000},
	}

	out, err := Extract(ToRaw(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
