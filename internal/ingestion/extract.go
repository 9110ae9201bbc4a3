package ingestion

import (
	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/scoring"
)

// Extract converts a raw batch into customer records.
// Fails fast with *scoring.MissingFieldError when the declared schema lacks a
// required column or any row has a nil required field. Optional fields
// default to their zero value.
func Extract(batch *domain.CustomerBatch) ([]domain.CustomerRecord, error) {
	if batch == nil {
		return nil, nil
	}

	declared := make(map[string]struct{}, len(batch.Columns))
	for _, c := range batch.Columns {
		declared[c] = struct{}{}
	}
	for _, c := range domain.RequiredColumns() {
		if _, ok := declared[c]; !ok {
			return nil, &scoring.MissingFieldError{Field: c}
		}
	}

	records := make([]domain.CustomerRecord, 0, len(batch.Rows))
	for _, row := range batch.Rows {
		rec, err := extractRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func extractRow(row domain.RawCustomer) (domain.CustomerRecord, error) {
	if row.CustomerID == nil || *row.CustomerID == "" {
		return domain.CustomerRecord{}, &scoring.MissingFieldError{Field: domain.ColumnCustomerID}
	}
	id := *row.CustomerID

	missing := func(field string) error {
		return &scoring.MissingFieldError{Field: field, CustomerID: id}
	}

	switch {
	case row.Age == nil:
		return domain.CustomerRecord{}, missing(domain.ColumnAge)
	case row.MonthlyIncome == nil:
		return domain.CustomerRecord{}, missing(domain.ColumnMonthlyIncome)
	case row.AverageBalance == nil:
		return domain.CustomerRecord{}, missing(domain.ColumnAverageBalance)
	case row.MonthlyTransactions == nil:
		return domain.CustomerRecord{}, missing(domain.ColumnMonthlyTransactions)
	case row.Delinquencies12m == nil:
		return domain.CustomerRecord{}, missing(domain.ColumnDelinquencies12m)
	case row.TenureMonths == nil:
		return domain.CustomerRecord{}, missing(domain.ColumnTenureMonths)
	}

	rec := domain.CustomerRecord{
		CustomerID:          id,
		Age:                 *row.Age,
		MonthlyIncome:       *row.MonthlyIncome,
		AverageBalance:      *row.AverageBalance,
		MonthlyTransactions: *row.MonthlyTransactions,
		Delinquencies12m:    *row.Delinquencies12m,
		TenureMonths:        *row.TenureMonths,
	}
	if row.UsesOverdraft != nil {
		rec.UsesOverdraft = *row.UsesOverdraft
	}
	if row.CurrentLimit != nil {
		rec.CurrentLimit = *row.CurrentLimit
	}
	return rec, nil
}

// ToRaw lifts validated records back into a raw batch with the full schema.
func ToRaw(records []domain.CustomerRecord) *domain.CustomerBatch {
	rows := make([]domain.RawCustomer, len(records))
	for i := range records {
		r := records[i]
		rows[i] = domain.RawCustomer{
			CustomerID:          &r.CustomerID,
			Age:                 &r.Age,
			MonthlyIncome:       &r.MonthlyIncome,
			AverageBalance:      &r.AverageBalance,
			MonthlyTransactions: &r.MonthlyTransactions,
			Delinquencies12m:    &r.Delinquencies12m,
			TenureMonths:        &r.TenureMonths,
			UsesOverdraft:       &r.UsesOverdraft,
			CurrentLimit:        &r.CurrentLimit,
		}
	}
	return &domain.CustomerBatch{Columns: domain.AllColumns(), Rows: rows}
}
