package domain

import "github.com/shopspring/decimal"

// Weights are the contributions of each component to the composite score.
// They must sum to 1.0.
type Weights struct {
	Income         float64
	Balance        float64
	PaymentHistory float64
	Transactions   float64
	Tenure         float64
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.Income + w.Balance + w.PaymentHistory + w.Transactions + w.Tenure
}

// Tier maps a closed lower score bound to its financial parameters.
type Tier struct {
	Category       Category
	MinScore       int             // inclusive lower bound
	MonthlyRate    decimal.Decimal // percent per month
	SuggestedLimit int64
}

// Normalization holds the caps used to rescale raw metrics onto [0,100].
type Normalization struct {
	IncomeCap          float64 // income yielding a full component
	BalanceCap         float64 // balance yielding a full component
	DelinquencyPenalty float64 // points lost per delinquency
	TransactionsCap    float64 // transactions per month yielding a full component
	TenureCapMonths    float64 // tenure yielding a full component
}

// ScoringConfig is the explicit configuration value passed to the scorer.
type ScoringConfig struct {
	Weights       Weights
	Normalization Normalization
	Tiers         []Tier // sorted by MinScore descending

	MinScore int
	MaxScore int

	MinAge            int
	UtilizationFactor decimal.Decimal // assumed fraction of the limit drawn
}

// DefaultScoringConfig returns the production scoring model.
//
// Weights:
//   - Payment history: 30%
//   - Income: 25%
//   - Balance: 20%
//   - Transactions: 15%
//   - Tenure: 10%
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: Weights{
			Income:         0.25,
			Balance:        0.20,
			PaymentHistory: 0.30,
			Transactions:   0.15,
			Tenure:         0.10,
		},
		Normalization: Normalization{
			IncomeCap:          50000,
			BalanceCap:         100000,
			DelinquencyPenalty: 15,
			TransactionsCap:    100,
			TenureCapMonths:    120,
		},
		Tiers: []Tier{
			{Category: CategoryPremium, MinScore: 800, MonthlyRate: decimal.RequireFromString("1.2"), SuggestedLimit: 50000},
			{Category: CategoryGold, MinScore: 600, MonthlyRate: decimal.RequireFromString("1.8"), SuggestedLimit: 30000},
			{Category: CategoryStandard, MinScore: 400, MonthlyRate: decimal.RequireFromString("2.5"), SuggestedLimit: 15000},
			{Category: CategoryRisk, MinScore: 0, MonthlyRate: decimal.RequireFromString("3.5"), SuggestedLimit: 5000},
		},
		MinScore:          0,
		MaxScore:          1000,
		MinAge:            18,
		UtilizationFactor: decimal.RequireFromString("0.6"),
	}
}
