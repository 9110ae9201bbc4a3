package domain

import "github.com/shopspring/decimal"

// Category is a discrete risk tier derived from the credit score.
type Category string

// Category constants, highest tier first.
const (
	CategoryPremium  Category = "Premium"
	CategoryGold     Category = "Gold"
	CategoryStandard Category = "Standard"
	CategoryRisk     Category = "Risk"
)

// Categories returns all tiers in report order.
func Categories() []Category {
	return []Category{CategoryPremium, CategoryGold, CategoryStandard, CategoryRisk}
}

// Valid reports whether c is one of the four known tiers.
func (c Category) Valid() bool {
	switch c {
	case CategoryPremium, CategoryGold, CategoryStandard, CategoryRisk:
		return true
	default:
		return false
	}
}

// ScoreComponents holds the five normalized sub-scores, each in [0,100].
type ScoreComponents struct {
	Income         float64
	Balance        float64
	PaymentHistory float64
	Transactions   float64
	Tenure         float64
}

// ScoredRecord is the output of the scoring core for one valid customer.
// Created once per valid CustomerRecord and never mutated.
// Corresponds to the scored_records table.
type ScoredRecord struct {
	Customer   CustomerRecord
	Components ScoreComponents

	CreditScore             int             // [0, 1000]
	Category                Category        // tier for CreditScore
	SuggestedLimit          int64           // currency units, > 0
	MonthlyRate             decimal.Decimal // percent per month, > 0
	ProjectedMonthlyRevenue decimal.Decimal // currency units, >= 0
}

// CategorySummary is the per-tier aggregate of one scoring run.
// Corresponds to the category_summaries table.
type CategorySummary struct {
	RunID    string
	Category Category

	Customers     int
	MeanScore     float64
	MeanIncome    float64
	MeanLimit     float64
	TotalRevenue  decimal.Decimal // projected monthly revenue
	RevenueShare  float64         // TotalRevenue / run total, 0 if total is 0
	CustomerShare float64         // Customers / run customers
}
