package ingestion

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"credit-score-lab/internal/domain"
)

// Defaults for the synthetic portfolio.
const (
	DefaultSyntheticCustomers = 500
	DefaultSyntheticSeed      = 42
)

// weightedChoice is a discrete distribution over values.
type weightedChoice[T any] struct {
	values []T
	probs  []float64
}

func (w weightedChoice[T]) sample(rng *rand.Rand) T {
	u := rng.Float64()
	acc := 0.0
	for i, p := range w.probs {
		acc += p
		if u < acc {
			return w.values[i]
		}
	}
	return w.values[len(w.values)-1]
}

var (
	incomeLevels = weightedChoice[float64]{
		values: []float64{2000, 3500, 5000, 8000, 12000, 20000, 35000},
		probs:  []float64{0.15, 0.25, 0.20, 0.15, 0.12, 0.08, 0.05},
	}
	delinquencyLevels = weightedChoice[int]{
		values: []int{0, 1, 2, 3, 5, 8},
		probs:  []float64{0.50, 0.25, 0.12, 0.08, 0.03, 0.02},
	}
	currentLimitLevels = weightedChoice[int64]{
		values: []int64{0, 1000, 3000, 5000, 10000},
		probs:  []float64{0.20, 0.30, 0.25, 0.15, 0.10},
	}
)

const (
	meanMonthlyTransactions = 25
	overdraftProbability    = 0.3
)

// SyntheticSource generates a deterministic customer portfolio.
// The same seed and size always yield the same batch.
type SyntheticSource struct {
	customers int
	seed      int64
}

// NewSyntheticSource creates a generator for n customers.
// Non-positive n falls back to DefaultSyntheticCustomers.
func NewSyntheticSource(n int, seed int64) *SyntheticSource {
	if n <= 0 {
		n = DefaultSyntheticCustomers
	}
	return &SyntheticSource{customers: n, seed: seed}
}

// Compile-time interface check.
var _ Source = (*SyntheticSource)(nil)

// Load generates the batch. IDs are CLI00001, CLI00002, ...
func (s *SyntheticSource) Load(ctx context.Context) (*domain.CustomerBatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ToRaw(s.Generate()), nil
}

// Generate returns the synthetic customers as validated-shape records.
func (s *SyntheticSource) Generate() []domain.CustomerRecord {
	rng := rand.New(rand.NewSource(s.seed))

	records := make([]domain.CustomerRecord, s.customers)
	for i := range records {
		records[i] = domain.CustomerRecord{
			CustomerID:          fmt.Sprintf("CLI%05d", i+1),
			Age:                 18 + rng.Intn(70-18),
			MonthlyIncome:       incomeLevels.sample(rng),
			AverageBalance:      math.Round((100+rng.Float64()*(50000-100))*100) / 100,
			MonthlyTransactions: poisson(rng, meanMonthlyTransactions),
			Delinquencies12m:    delinquencyLevels.sample(rng),
			TenureMonths:        1 + rng.Intn(120-1),
			UsesOverdraft:       rng.Float64() < overdraftProbability,
			CurrentLimit:        currentLimitLevels.sample(rng),
		}
	}
	return records
}

// poisson draws from Poisson(lambda) by multiplying uniforms (Knuth).
// Adequate for the small lambda used here.
func poisson(rng *rand.Rand, lambda float64) int {
	limit := math.Exp(-lambda)
	k := 0
	p := rng.Float64()
	for p > limit {
		k++
		p *= rng.Float64()
	}
	return k
}
