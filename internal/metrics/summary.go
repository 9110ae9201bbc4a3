package metrics

import (
	"github.com/shopspring/decimal"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/storage"
)

// SummarizeByCategory groups a scored batch per category.
// Output follows tier order (Premium, Gold, Standard, Risk); empty categories are omitted.
// Shares are fractions of the batch total; RunID is left for the caller.
func SummarizeByCategory(records []domain.ScoredRecord) []domain.CategorySummary {
	if len(records) == 0 {
		return nil
	}

	type acc struct {
		count   int
		score   float64
		income  float64
		limit   float64
		revenue decimal.Decimal
	}

	groups := make(map[domain.Category]*acc)
	totalRevenue := decimal.Zero
	for _, r := range records {
		g, ok := groups[r.Category]
		if !ok {
			g = &acc{revenue: decimal.Zero}
			groups[r.Category] = g
		}
		g.count++
		g.score += float64(r.CreditScore)
		g.income += r.Customer.MonthlyIncome
		g.limit += float64(r.SuggestedLimit)
		g.revenue = g.revenue.Add(r.ProjectedMonthlyRevenue)
		totalRevenue = totalRevenue.Add(r.ProjectedMonthlyRevenue)
	}

	summaries := make([]domain.CategorySummary, 0, len(groups))
	for _, category := range domain.Categories() {
		g, ok := groups[category]
		if !ok {
			continue
		}
		n := float64(g.count)

		revenueShare := 0.0
		if totalRevenue.IsPositive() {
			revenueShare = g.revenue.Div(totalRevenue).InexactFloat64()
		}

		summaries = append(summaries, domain.CategorySummary{
			Category:      category,
			Customers:     g.count,
			MeanScore:     g.score / n,
			MeanIncome:    g.income / n,
			MeanLimit:     g.limit / n,
			TotalRevenue:  g.revenue,
			RevenueShare:  revenueShare,
			CustomerShare: n / float64(len(records)),
		})
	}
	return summaries
}

// SortForReport returns a copy of records ordered by credit_score DESC, customer_id ASC.
func SortForReport(records []domain.ScoredRecord) []domain.ScoredRecord {
	out := make([]domain.ScoredRecord, len(records))
	copy(out, records)
	storage.SortScored(out)
	return out
}

// TopN returns the n best-scored records in report order.
func TopN(records []domain.ScoredRecord, n int) []domain.ScoredRecord {
	if n <= 0 {
		return nil
	}
	sorted := SortForReport(records)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
