package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"credit-score-lab/internal/domain"
)

func TestClassify_Boundaries(t *testing.T) {
	cfg := domain.DefaultScoringConfig()

	tests := []struct {
		score int
		want  domain.Category
	}{
		{1000, domain.CategoryPremium},
		{800, domain.CategoryPremium},
		{799, domain.CategoryGold},
		{600, domain.CategoryGold},
		{599, domain.CategoryStandard},
		{400, domain.CategoryStandard},
		{399, domain.CategoryRisk},
		{0, domain.CategoryRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(cfg, tt.score).Category, "score=%d", tt.score)
	}
}

func TestClassify_TotalAndNonOverlapping(t *testing.T) {
	cfg := domain.DefaultScoringConfig()

	counts := make(map[domain.Category]int)
	for score := cfg.MinScore; score <= cfg.MaxScore; score++ {
		matches := 0
		for i, tier := range cfg.Tiers {
			upper := cfg.MaxScore + 1
			if i > 0 {
				upper = cfg.Tiers[i-1].MinScore
			}
			if score >= tier.MinScore && score < upper {
				matches++
				assert.Equal(t, tier.Category, Classify(cfg, score).Category, "score=%d", score)
			}
		}
		assert.Equal(t, 1, matches, "score=%d must fall in exactly one tier", score)
		counts[Classify(cfg, score).Category]++
	}

	assert.Equal(t, 201, counts[domain.CategoryPremium])
	assert.Equal(t, 200, counts[domain.CategoryGold])
	assert.Equal(t, 200, counts[domain.CategoryStandard])
	assert.Equal(t, 400, counts[domain.CategoryRisk])
}

func TestProjectRevenue_PerTier(t *testing.T) {
	cfg := domain.DefaultScoringConfig()

	want := map[domain.Category]string{
		domain.CategoryPremium:  "360",
		domain.CategoryGold:     "324",
		domain.CategoryStandard: "225",
		domain.CategoryRisk:     "105",
	}
	for _, tier := range cfg.Tiers {
		got := ProjectRevenue(cfg, tier)
		assert.True(t, got.Equal(decimal.RequireFromString(want[tier.Category])),
			"%s revenue %s", tier.Category, got)
	}
}

func TestProjectRevenue_ZeroUtilization(t *testing.T) {
	cfg := domain.DefaultScoringConfig()
	cfg.UtilizationFactor = decimal.Zero

	assert.True(t, ProjectRevenue(cfg, cfg.Tiers[0]).IsZero())
}
