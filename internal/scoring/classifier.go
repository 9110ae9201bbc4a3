package scoring

import "credit-score-lab/internal/domain"

// Classify maps a score to its tier. Tiers are checked highest threshold
// first with inclusive lower bounds. Scores below every threshold fall into
// the last tier, so the mapping is total over the score range.
func Classify(cfg domain.ScoringConfig, score int) domain.Tier {
	for _, t := range cfg.Tiers {
		if score >= t.MinScore {
			return t
		}
	}
	return cfg.Tiers[len(cfg.Tiers)-1]
}
