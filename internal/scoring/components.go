package scoring

import "credit-score-lab/internal/domain"

// ComputeComponents rescales each raw metric linearly onto [0,100] and clamps.
// Clamping keeps unbounded metrics such as income from dominating the sum.
func ComputeComponents(cfg domain.ScoringConfig, rec domain.CustomerRecord) domain.ScoreComponents {
	n := cfg.Normalization
	return domain.ScoreComponents{
		Income:         clamp(rec.MonthlyIncome/n.IncomeCap*100, 0, 100),
		Balance:        clamp(rec.AverageBalance/n.BalanceCap*100, 0, 100),
		PaymentHistory: clamp(100-float64(rec.Delinquencies12m)*n.DelinquencyPenalty, 0, 100),
		Transactions:   clamp(float64(rec.MonthlyTransactions)/n.TransactionsCap*100, 0, 100),
		Tenure:         clamp(float64(rec.TenureMonths)/n.TenureCapMonths*100, 0, 100),
	}
}

// clamp bounds v to [lo, hi]. NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
