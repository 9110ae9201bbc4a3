package metrics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"credit-score-lab/internal/domain"
)

// monthsPerYear converts monthly revenue to annual revenue.
const monthsPerYear = 12

// Statistics describes the credit score distribution and revenue of a batch.
type Statistics struct {
	Customers int

	ScoreMean   float64
	ScoreMedian float64
	ScoreStddev float64 // sample (n-1)
	ScoreP25    float64
	ScoreP75    float64
	ScoreMin    int
	ScoreMax    int

	TotalMonthlyRevenue decimal.Decimal
	AnnualRevenue       decimal.Decimal
}

// ComputeStatistics calculates batch statistics. An empty batch yields zeros.
func ComputeStatistics(records []domain.ScoredRecord) Statistics {
	n := len(records)
	stats := Statistics{
		Customers:           n,
		TotalMonthlyRevenue: decimal.Zero,
		AnnualRevenue:       decimal.Zero,
	}
	if n == 0 {
		return stats
	}

	scores := make([]float64, n)
	total := decimal.Zero
	for i, r := range records {
		scores[i] = float64(r.CreditScore)
		total = total.Add(r.ProjectedMonthlyRevenue)
	}

	sorted := make([]float64, n)
	copy(sorted, scores)
	sort.Float64s(sorted)

	mean := computeMean(scores)
	stats.ScoreMean = mean
	stats.ScoreMedian = computePercentile(sorted, 0.50)
	stats.ScoreStddev = computeStddev(scores, mean)
	stats.ScoreP25 = computePercentile(sorted, 0.25)
	stats.ScoreP75 = computePercentile(sorted, 0.75)
	stats.ScoreMin = int(sorted[0])
	stats.ScoreMax = int(sorted[n-1])
	stats.TotalMonthlyRevenue = total
	stats.AnnualRevenue = total.Mul(decimal.NewFromInt(monthsPerYear))

	return stats
}

// computeMean calculates arithmetic mean of values.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0 // Need at least 2 samples for sample stddev
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// computePercentile uses linear interpolation.
// sorted must be pre-sorted ASC.
// p is percentile (0.25 = 25th percentile).
func computePercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	// Index for percentile (0-based, continuous)
	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
