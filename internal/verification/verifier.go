// Package verification checks that stored scoring runs reproduce.
// It rescores the stored customer inputs with the current configuration
// and compares every derived field with the stored record.
package verification

import (
	"context"
	"math"

	"credit-score-lab/internal/domain"
)

// FloatTolerance is the tolerance for component comparisons.
// Components round-trip through storage as DOUBLE PRECISION.
const FloatTolerance = 1e-7

// FieldDivergence represents a mismatch between stored and rescored values.
type FieldDivergence struct {
	Field    string      // field name
	Expected interface{} // stored value
	Actual   interface{} // rescored value
}

// VerificationResult contains the result of verifying a single record.
type VerificationResult struct {
	CustomerID    string            // verified customer ID
	Match         bool              // true if all fields match
	Divergences   []FieldDivergence // list of divergent fields
	StoredScore   int               // score from stored record
	RescoredScore int               // score from rescoring
}

// VerificationReport contains results for one run.
type VerificationReport struct {
	RunID            string
	TotalRecords     int                  // records verified
	MatchedRecords   int                  // records that matched exactly
	DivergentRecords int                  // records with divergences
	Results          []VerificationResult // individual results, stored order
}

// AllMatch reports whether every record of the run reproduced.
func (r *VerificationReport) AllMatch() bool {
	return r.DivergentRecords == 0
}

// Verifier interface for run verification.
type Verifier interface {
	// VerifyRecord rescores one stored record of a run and compares all fields.
	VerifyRecord(ctx context.Context, runID, customerID string) (*VerificationResult, error)

	// VerifyRun verifies all stored records of a run.
	VerifyRun(ctx context.Context, runID string) (*VerificationReport, error)
}

// CompareScoredRecords compares two scored records and returns divergences.
// Uses FloatTolerance for components and exact equality elsewhere.
func CompareScoredRecords(stored, rescored domain.ScoredRecord) []FieldDivergence {
	var divergences []FieldDivergence
	add := func(field string, expected, actual interface{}) {
		divergences = append(divergences, FieldDivergence{Field: field, Expected: expected, Actual: actual})
	}

	if stored.Customer.CustomerID != rescored.Customer.CustomerID {
		add("CustomerID", stored.Customer.CustomerID, rescored.Customer.CustomerID)
	}

	components := []struct {
		name             string
		stored, rescored float64
	}{
		{"IncomeComponent", stored.Components.Income, rescored.Components.Income},
		{"BalanceComponent", stored.Components.Balance, rescored.Components.Balance},
		{"PaymentComponent", stored.Components.PaymentHistory, rescored.Components.PaymentHistory},
		{"TransactionsComponent", stored.Components.Transactions, rescored.Components.Transactions},
		{"TenureComponent", stored.Components.Tenure, rescored.Components.Tenure},
	}
	for _, c := range components {
		if !floatEquals(c.stored, c.rescored) {
			add(c.name, c.stored, c.rescored)
		}
	}

	// Score and tier must match exactly
	if stored.CreditScore != rescored.CreditScore {
		add("CreditScore", stored.CreditScore, rescored.CreditScore)
	}
	if stored.Category != rescored.Category {
		add("Category", stored.Category, rescored.Category)
	}

	// Financial values
	if stored.SuggestedLimit != rescored.SuggestedLimit {
		add("SuggestedLimit", stored.SuggestedLimit, rescored.SuggestedLimit)
	}
	if !stored.MonthlyRate.Equal(rescored.MonthlyRate) {
		add("MonthlyRate", stored.MonthlyRate.String(), rescored.MonthlyRate.String())
	}
	if !stored.ProjectedMonthlyRevenue.Equal(rescored.ProjectedMonthlyRevenue) {
		add("ProjectedMonthlyRevenue", stored.ProjectedMonthlyRevenue.String(), rescored.ProjectedMonthlyRevenue.String())
	}

	return divergences
}

// floatEquals compares two float64 values within FloatTolerance.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= FloatTolerance
}
