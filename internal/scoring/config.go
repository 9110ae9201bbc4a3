package scoring

import (
	"fmt"
	"math"

	"credit-score-lab/internal/domain"
)

// weightSumTolerance absorbs float rounding when summing decimal weights.
const weightSumTolerance = 1e-9

// ValidateConfig checks that weights sum to 1.0 and that the tiers cover
// [MinScore, MaxScore] with positive limits and rates. MinAge must be at
// least 1 so the age rejection rule stays active.
func ValidateConfig(cfg domain.ScoringConfig) error {
	if sum := cfg.Weights.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1.0", ErrInvalidConfig, sum)
	}
	weights := []struct {
		name  string
		value float64
	}{
		{"income", cfg.Weights.Income},
		{"balance", cfg.Weights.Balance},
		{"payment_history", cfg.Weights.PaymentHistory},
		{"transactions", cfg.Weights.Transactions},
		{"tenure", cfg.Weights.Tenure},
	}
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("%w: negative weight %s=%v", ErrInvalidConfig, w.name, w.value)
		}
	}

	n := cfg.Normalization
	if n.IncomeCap <= 0 || n.BalanceCap <= 0 || n.TransactionsCap <= 0 || n.TenureCapMonths <= 0 {
		return fmt.Errorf("%w: normalization caps must be positive", ErrInvalidConfig)
	}
	if n.DelinquencyPenalty < 0 {
		return fmt.Errorf("%w: delinquency penalty must be non-negative", ErrInvalidConfig)
	}

	if cfg.MinAge < 1 {
		return fmt.Errorf("%w: min age must be at least 1, got %d", ErrInvalidConfig, cfg.MinAge)
	}

	if cfg.MaxScore <= cfg.MinScore {
		return fmt.Errorf("%w: max score %d must exceed min score %d", ErrInvalidConfig, cfg.MaxScore, cfg.MinScore)
	}
	if len(cfg.Tiers) == 0 {
		return fmt.Errorf("%w: no tiers configured", ErrInvalidConfig)
	}

	seen := make(map[domain.Category]struct{}, len(cfg.Tiers))
	for i, t := range cfg.Tiers {
		if !t.Category.Valid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidConfig, t.Category)
		}
		if _, dup := seen[t.Category]; dup {
			return fmt.Errorf("%w: category %s configured twice", ErrInvalidConfig, t.Category)
		}
		seen[t.Category] = struct{}{}

		if i > 0 && t.MinScore >= cfg.Tiers[i-1].MinScore {
			return fmt.Errorf("%w: tiers must be sorted by min score descending", ErrInvalidConfig)
		}
		if t.SuggestedLimit <= 0 {
			return fmt.Errorf("%w: tier %s limit must be positive", ErrInvalidConfig, t.Category)
		}
		if !t.MonthlyRate.IsPositive() {
			return fmt.Errorf("%w: tier %s rate must be positive", ErrInvalidConfig, t.Category)
		}
	}

	// The lowest tier must open at MinScore so classification is total.
	if last := cfg.Tiers[len(cfg.Tiers)-1]; last.MinScore != cfg.MinScore {
		return fmt.Errorf("%w: lowest tier starts at %d, want %d", ErrInvalidConfig, last.MinScore, cfg.MinScore)
	}
	if first := cfg.Tiers[0]; first.MinScore > cfg.MaxScore {
		return fmt.Errorf("%w: tier %s is unreachable above max score", ErrInvalidConfig, first.Category)
	}

	if cfg.UtilizationFactor.IsNegative() {
		return fmt.Errorf("%w: utilization factor must be non-negative", ErrInvalidConfig)
	}
	return nil
}
