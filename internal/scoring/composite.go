package scoring

import (
	"math"

	"credit-score-lab/internal/domain"
)

// scoreScale lifts the [0,100] weighted average onto the [0,1000] score range.
const scoreScale = 10

// WeightedSum returns the weighted average of the components in [0,100].
func WeightedSum(w domain.Weights, c domain.ScoreComponents) float64 {
	return c.Income*w.Income +
		c.Balance*w.Balance +
		c.PaymentHistory*w.PaymentHistory +
		c.Transactions*w.Transactions +
		c.Tenure*w.Tenure
}

// CompositeScore combines the components into the final integer score.
// The scaled sum is clamped to [MinScore, MaxScore] and rounded half to even.
func CompositeScore(cfg domain.ScoringConfig, c domain.ScoreComponents) int {
	raw := WeightedSum(cfg.Weights, c) * scoreScale
	raw = clamp(raw, float64(cfg.MinScore), float64(cfg.MaxScore))
	return int(math.RoundToEven(raw))
}
