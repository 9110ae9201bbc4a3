package scoring

import (
	"fmt"
	"math"

	"credit-score-lab/internal/domain"
)

// Scorer turns customer records into scored records.
// It holds only its configuration and is safe for concurrent use.
type Scorer struct {
	cfg domain.ScoringConfig
}

// BatchResult is the outcome of scoring one batch.
type BatchResult struct {
	Records          []domain.ScoredRecord // input order, rejected records removed
	Rejected         int
	RejectedByReason map[RejectReason]int
}

// NewScorer creates a scorer after validating cfg.
func NewScorer(cfg domain.ScoringConfig) (*Scorer, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// Config returns the scoring configuration in use.
func (s *Scorer) Config() domain.ScoringConfig {
	return s.cfg
}

// Score validates and scores one record.
// A rejected record yields a non-empty reason and a zero ScoredRecord.
func (s *Scorer) Score(rec domain.CustomerRecord) (domain.ScoredRecord, RejectReason, error) {
	valid, reason, ok := Validate(s.cfg, rec)
	if !ok {
		return domain.ScoredRecord{}, reason, nil
	}

	components := ComputeComponents(s.cfg, valid)
	score := CompositeScore(s.cfg, components)
	tier := Classify(s.cfg, score)

	scored := domain.ScoredRecord{
		Customer:                valid,
		Components:              components,
		CreditScore:             score,
		Category:                tier.Category,
		SuggestedLimit:          tier.SuggestedLimit,
		MonthlyRate:             tier.MonthlyRate,
		ProjectedMonthlyRevenue: ProjectRevenue(s.cfg, tier),
	}
	if err := s.checkRanges(scored); err != nil {
		return domain.ScoredRecord{}, "", err
	}
	return scored, "", nil
}

// ScoreBatch scores records in order. Rejected records are counted and
// dropped; a RangeViolation aborts the batch.
func (s *Scorer) ScoreBatch(records []domain.CustomerRecord) (*BatchResult, error) {
	result := &BatchResult{
		Records:          make([]domain.ScoredRecord, 0, len(records)),
		RejectedByReason: make(map[RejectReason]int),
	}

	for _, rec := range records {
		scored, reason, err := s.Score(rec)
		if err != nil {
			return nil, fmt.Errorf("score customer %s: %w", rec.CustomerID, err)
		}
		if reason != "" {
			result.Rejected++
			result.RejectedByReason[reason]++
			continue
		}
		result.Records = append(result.Records, scored)
	}

	return result, nil
}

// checkRanges verifies every derived value is inside its range.
func (s *Scorer) checkRanges(r domain.ScoredRecord) error {
	id := r.Customer.CustomerID
	components := []struct {
		name  string
		value float64
	}{
		{"income_component", r.Components.Income},
		{"balance_component", r.Components.Balance},
		{"payment_component", r.Components.PaymentHistory},
		{"transactions_component", r.Components.Transactions},
		{"tenure_component", r.Components.Tenure},
	}
	for _, c := range components {
		if c.value < 0 || c.value > 100 {
			return &RangeViolation{Field: c.name, CustomerID: id, Value: c.value, Min: 0, Max: 100}
		}
	}

	if r.CreditScore < s.cfg.MinScore || r.CreditScore > s.cfg.MaxScore {
		return &RangeViolation{
			Field: "credit_score", CustomerID: id, Value: float64(r.CreditScore),
			Min: float64(s.cfg.MinScore), Max: float64(s.cfg.MaxScore),
		}
	}
	if r.SuggestedLimit <= 0 {
		return &RangeViolation{Field: "suggested_limit", CustomerID: id, Value: float64(r.SuggestedLimit), Min: 1, Max: math.Inf(1)}
	}
	if r.ProjectedMonthlyRevenue.IsNegative() {
		return &RangeViolation{Field: "projected_monthly_revenue", CustomerID: id, Value: r.ProjectedMonthlyRevenue.InexactFloat64(), Max: math.Inf(1)}
	}
	return nil
}
