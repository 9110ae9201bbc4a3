package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"credit-score-lab/internal/domain"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *domain.ScoringConfig)
	}{
		{"weights above one", func(cfg *domain.ScoringConfig) { cfg.Weights.Tenure = 0.2 }},
		{"negative weight", func(cfg *domain.ScoringConfig) {
			cfg.Weights.Tenure = -0.1
			cfg.Weights.Income = 0.45
		}},
		{"zero income cap", func(cfg *domain.ScoringConfig) { cfg.Normalization.IncomeCap = 0 }},
		{"negative penalty", func(cfg *domain.ScoringConfig) { cfg.Normalization.DelinquencyPenalty = -1 }},
		{"no tiers", func(cfg *domain.ScoringConfig) { cfg.Tiers = nil }},
		{"unsorted tiers", func(cfg *domain.ScoringConfig) {
			cfg.Tiers[0], cfg.Tiers[1] = cfg.Tiers[1], cfg.Tiers[0]
		}},
		{"gap at bottom", func(cfg *domain.ScoringConfig) { cfg.Tiers[3].MinScore = 100 }},
		{"unknown category", func(cfg *domain.ScoringConfig) { cfg.Tiers[1].Category = "Silver" }},
		{"duplicate category", func(cfg *domain.ScoringConfig) { cfg.Tiers[1].Category = domain.CategoryPremium }},
		{"zero limit", func(cfg *domain.ScoringConfig) { cfg.Tiers[2].SuggestedLimit = 0 }},
		{"zero rate", func(cfg *domain.ScoringConfig) { cfg.Tiers[2].MonthlyRate = decimal.Zero }},
		{"unreachable top tier", func(cfg *domain.ScoringConfig) { cfg.Tiers[0].MinScore = 1200 }},
		{"zero min age", func(cfg *domain.ScoringConfig) { cfg.MinAge = 0 }},
		{"negative min age", func(cfg *domain.ScoringConfig) { cfg.MinAge = -5 }},
		{"inverted score range", func(cfg *domain.ScoringConfig) { cfg.MaxScore = 0 }},
		{"negative utilization", func(cfg *domain.ScoringConfig) {
			cfg.UtilizationFactor = decimal.RequireFromString("-0.1")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultScoringConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, ValidateConfig(cfg), ErrInvalidConfig)
		})
	}
}

func TestValidateConfig_DefaultIsValid(t *testing.T) {
	assert.NoError(t, ValidateConfig(domain.DefaultScoringConfig()))
}
