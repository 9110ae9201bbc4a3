package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/reporting"
)

// Quality check names.
const (
	CheckNoMissingValues = "no_missing_values"
	CheckScoreRange      = "score_range"
	CheckValidCategories = "valid_categories"
	CheckPositiveLimits  = "positive_limits"
	CheckUniqueIDs       = "unique_ids"
)

// QualityCheck represents one output quality criterion.
type QualityCheck struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// QualityResult contains all 5 checks.
type QualityResult struct {
	Checks  []QualityCheck
	AllPass bool
}

// Failed returns the names of failed checks.
func (r *QualityResult) Failed() []string {
	var failed []string
	for _, c := range r.Checks {
		if !c.Pass {
			failed = append(failed, c.Name)
		}
	}
	return failed
}

// QualityChecker validates a scored batch before it is exported.
type QualityChecker struct {
	minScore int
	maxScore int
}

// NewQualityChecker creates a checker for scores within [minScore, maxScore].
func NewQualityChecker(minScore, maxScore int) *QualityChecker {
	return &QualityChecker{minScore: minScore, maxScore: maxScore}
}

// Check performs all 5 quality checks. An empty batch passes every check.
func (c *QualityChecker) Check(records []domain.ScoredRecord) *QualityResult {
	result := &QualityResult{
		Checks: []QualityCheck{
			c.checkNoMissingValues(records),
			c.checkScoreRange(records),
			c.checkValidCategories(records),
			c.checkPositiveLimits(records),
			c.checkUniqueIDs(records),
		},
		AllPass: true,
	}
	for _, check := range result.Checks {
		if !check.Pass {
			result.AllPass = false
		}
	}
	return result
}

// checkNoMissingValues counts records with an empty identifier or category,
// or a NaN among the numeric fields.
func (c *QualityChecker) checkNoMissingValues(records []domain.ScoredRecord) QualityCheck {
	missing := 0
	for _, r := range records {
		if hasMissingValue(r) {
			missing++
		}
	}
	return QualityCheck{
		Name:      CheckNoMissingValues,
		Threshold: "0 records",
		Actual:    fmt.Sprintf("%d records", missing),
		Pass:      missing == 0,
	}
}

func hasMissingValue(r domain.ScoredRecord) bool {
	if r.Customer.CustomerID == "" || r.Category == "" {
		return true
	}
	floats := []float64{
		r.Customer.MonthlyIncome,
		r.Customer.AverageBalance,
		r.Components.Income,
		r.Components.Balance,
		r.Components.PaymentHistory,
		r.Components.Transactions,
		r.Components.Tenure,
	}
	for _, f := range floats {
		if math.IsNaN(f) {
			return true
		}
	}
	return false
}

func (c *QualityChecker) checkScoreRange(records []domain.ScoredRecord) QualityCheck {
	check := QualityCheck{
		Name:      CheckScoreRange,
		Threshold: fmt.Sprintf("[%d, %d]", c.minScore, c.maxScore),
		Actual:    "no records",
		Pass:      true,
	}
	if len(records) == 0 {
		return check
	}

	lo, hi := records[0].CreditScore, records[0].CreditScore
	for _, r := range records[1:] {
		lo = min(lo, r.CreditScore)
		hi = max(hi, r.CreditScore)
	}
	check.Actual = fmt.Sprintf("[%d, %d]", lo, hi)
	check.Pass = lo >= c.minScore && hi <= c.maxScore
	return check
}

func (c *QualityChecker) checkValidCategories(records []domain.ScoredRecord) QualityCheck {
	found := make(map[string]struct{})
	invalid := false
	for _, r := range records {
		found[string(r.Category)] = struct{}{}
		if !r.Category.Valid() {
			invalid = true
		}
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)

	allowed := make([]string, 0, len(domain.Categories()))
	for _, cat := range domain.Categories() {
		allowed = append(allowed, string(cat))
	}

	return QualityCheck{
		Name:      CheckValidCategories,
		Threshold: "subset of " + strings.Join(allowed, ", "),
		Actual:    strings.Join(names, ", "),
		Pass:      !invalid,
	}
}

func (c *QualityChecker) checkPositiveLimits(records []domain.ScoredRecord) QualityCheck {
	nonPositive := 0
	for _, r := range records {
		if r.SuggestedLimit <= 0 {
			nonPositive++
		}
	}
	return QualityCheck{
		Name:      CheckPositiveLimits,
		Threshold: "0 non-positive",
		Actual:    fmt.Sprintf("%d non-positive", nonPositive),
		Pass:      nonPositive == 0,
	}
}

func (c *QualityChecker) checkUniqueIDs(records []domain.ScoredRecord) QualityCheck {
	seen := make(map[string]struct{}, len(records))
	duplicates := 0
	for _, r := range records {
		if _, dup := seen[r.Customer.CustomerID]; dup {
			duplicates++
			continue
		}
		seen[r.Customer.CustomerID] = struct{}{}
	}
	return QualityCheck{
		Name:      CheckUniqueIDs,
		Threshold: "0 duplicates",
		Actual:    fmt.Sprintf("%d duplicates", duplicates),
		Pass:      duplicates == 0,
	}
}

// convertToQualitySection converts QualityResult to reporting.QualitySection.
func convertToQualitySection(result *QualityResult) reporting.QualitySection {
	checks := make([]reporting.QualityCheckRow, len(result.Checks))
	for i, c := range result.Checks {
		checks[i] = reporting.QualityCheckRow{
			Name:      c.Name,
			Threshold: c.Threshold,
			Actual:    c.Actual,
			Pass:      c.Pass,
		}
	}
	return reporting.QualitySection{
		Checks:          checks,
		AllChecksPassed: result.AllPass,
	}
}
