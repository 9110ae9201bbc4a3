package scoring

import (
	"github.com/shopspring/decimal"

	"credit-score-lab/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ProjectRevenue estimates monthly revenue for a tier:
// limit × (rate / 100) × utilization.
// Depends only on the tier, never feeds back into score or category.
func ProjectRevenue(cfg domain.ScoringConfig, t domain.Tier) decimal.Decimal {
	return decimal.NewFromInt(t.SuggestedLimit).
		Mul(t.MonthlyRate.Div(hundred)).
		Mul(cfg.UtilizationFactor)
}
