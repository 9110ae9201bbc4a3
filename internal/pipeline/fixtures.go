package pipeline

import (
	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/ingestion"
)

// FixtureBatch returns a small deterministic batch covering every tier,
// both rejection reasons and one duplicate row.
//
// Expected outcome with the default scoring config:
//   - CLI00001: 1000, Premium
//   - CLI00002: rejected, NON_POSITIVE_INCOME
//   - CLI00003: 0, Risk
//   - CLI00004: 800, Premium
//   - CLI00005: rejected, AGE_BELOW_MINIMUM
//   - CLI00001 (second row): dropped as duplicate
//   - CLI00006: 605, Gold
//   - CLI00007: 405, Standard
func FixtureBatch() *domain.CustomerBatch {
	return ingestion.ToRaw([]domain.CustomerRecord{
		{CustomerID: "CLI00001", Age: 35, MonthlyIncome: 60000, AverageBalance: 120000, MonthlyTransactions: 120, Delinquencies12m: 0, TenureMonths: 150, CurrentLimit: 10000},
		{CustomerID: "CLI00002", Age: 42, MonthlyIncome: 0, AverageBalance: 5000, MonthlyTransactions: 20, Delinquencies12m: 0, TenureMonths: 24},
		{CustomerID: "CLI00003", Age: 40, MonthlyIncome: 1, AverageBalance: 0, MonthlyTransactions: 0, Delinquencies12m: 8, TenureMonths: 0, UsesOverdraft: true},
		{CustomerID: "CLI00004", Age: 51, MonthlyIncome: 50000, AverageBalance: 100000, MonthlyTransactions: 0, Delinquencies12m: 0, TenureMonths: 60, CurrentLimit: 5000},
		{CustomerID: "CLI00005", Age: 17, MonthlyIncome: 2000, AverageBalance: 300, MonthlyTransactions: 10, Delinquencies12m: 0, TenureMonths: 3},
		{CustomerID: "CLI00001", Age: 36, MonthlyIncome: 2000, AverageBalance: 100, MonthlyTransactions: 1, Delinquencies12m: 5, TenureMonths: 1},
		{CustomerID: "CLI00006", Age: 29, MonthlyIncome: 25000, AverageBalance: 50000, MonthlyTransactions: 50, Delinquencies12m: 1, TenureMonths: 60, CurrentLimit: 3000},
		{CustomerID: "CLI00007", Age: 63, MonthlyIncome: 10000, AverageBalance: 20000, MonthlyTransactions: 30, Delinquencies12m: 2, TenureMonths: 72, UsesOverdraft: true},
	})
}
