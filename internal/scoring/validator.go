package scoring

import "credit-score-lab/internal/domain"

// RejectReason explains why a record was excluded from scoring.
type RejectReason string

// Reject reasons.
const (
	RejectAgeBelowMinimum   RejectReason = "AGE_BELOW_MINIMUM"
	RejectNonPositiveIncome RejectReason = "NON_POSITIVE_INCOME"
)

// Validate filters and clamps one record.
// Age and income violations reject the record; negative balance and
// delinquency counts are recoverable and clamped to zero.
func Validate(cfg domain.ScoringConfig, rec domain.CustomerRecord) (domain.CustomerRecord, RejectReason, bool) {
	if rec.Age < cfg.MinAge {
		return domain.CustomerRecord{}, RejectAgeBelowMinimum, false
	}
	if !(rec.MonthlyIncome > 0) {
		return domain.CustomerRecord{}, RejectNonPositiveIncome, false
	}

	if rec.AverageBalance < 0 {
		rec.AverageBalance = 0
	}
	if rec.Delinquencies12m < 0 {
		rec.Delinquencies12m = 0
	}
	return rec, "", true
}
