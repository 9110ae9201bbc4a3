package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Credit Scoring Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s | Data version: %s", r.RunID, r.DataVersion))
	if r.GitCommit != "" {
		sb.WriteString(fmt.Sprintf(" | Commit: %s", r.GitCommit))
	}
	sb.WriteString("\n\n")

	// Batch Summary
	sb.WriteString("## Batch Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Input Records | %d |\n", r.Batch.InputRecords))
	sb.WriteString(fmt.Sprintf("| Duplicates Removed | %d |\n", r.Batch.DuplicateRecords))
	sb.WriteString(fmt.Sprintf("| Rejected | %d |\n", r.Batch.RejectedRecords))
	for _, rc := range r.Batch.RejectedByReason {
		sb.WriteString(fmt.Sprintf("| Rejected: %s | %d |\n", rc.Reason, rc.Count))
	}
	sb.WriteString(fmt.Sprintf("| Scored | %d |\n", r.Batch.ScoredRecords))
	sb.WriteString("\n")

	// Data Quality
	sb.WriteString("## Data Quality\n\n")
	if len(r.Quality.Checks) > 0 {
		sb.WriteString("| Check | Threshold | Actual | Status |\n")
		sb.WriteString("|-------|-----------|--------|--------|\n")
		for _, check := range r.Quality.Checks {
			status := "FAIL"
			if check.Pass {
				status = "PASS"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				check.Name, check.Threshold, check.Actual, status))
		}
		sb.WriteString("\n")

		if r.Quality.AllChecksPassed {
			sb.WriteString("**All checks passed.**\n\n")
		} else {
			sb.WriteString("**Some checks failed.** Review the output before use.\n\n")
		}
	} else {
		sb.WriteString("No data quality checks performed.\n\n")
	}

	// Category Distribution
	sb.WriteString("## Category Distribution\n\n")
	if len(r.Categories) > 0 {
		sb.WriteString("| Category | Customers | Share | Mean Score | Mean Income | Mean Limit | Monthly Revenue | Revenue Share |\n")
		sb.WriteString("|----------|-----------|-------|------------|-------------|------------|-----------------|---------------|\n")
		for _, c := range r.Categories {
			sb.WriteString(fmt.Sprintf("| %s | %d | %.1f%% | %.0f | %.2f | %.2f | %s | %.1f%% |\n",
				c.Category, c.Customers, c.CustomerShare*100,
				c.MeanScore, c.MeanIncome, c.MeanLimit,
				c.TotalRevenue.StringFixed(2), c.RevenueShare*100))
		}
	} else {
		sb.WriteString("No scored customers.\n")
	}
	sb.WriteString("\n")

	// General Statistics
	s := r.Statistics
	sb.WriteString("## General Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Mean Score | %.0f |\n", s.ScoreMean))
	sb.WriteString(fmt.Sprintf("| Median Score | %.0f |\n", s.ScoreMedian))
	sb.WriteString(fmt.Sprintf("| Score Std Dev | %.2f |\n", s.ScoreStddev))
	sb.WriteString(fmt.Sprintf("| Score P25 / P75 | %.0f / %.0f |\n", s.ScoreP25, s.ScoreP75))
	sb.WriteString(fmt.Sprintf("| Score Min / Max | %d / %d |\n", s.ScoreMin, s.ScoreMax))
	sb.WriteString(fmt.Sprintf("| Projected Monthly Revenue | %s |\n", s.TotalMonthlyRevenue.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("| Projected Annual Revenue | %s |\n", s.AnnualRevenue.StringFixed(2)))
	sb.WriteString("\n")

	// Top Customers
	sb.WriteString(fmt.Sprintf("## Top %d Customers\n\n", TopCustomersLimit))
	if len(r.TopCustomers) > 0 {
		sb.WriteString("| Customer | Score | Category | Suggested Limit |\n")
		sb.WriteString("|----------|-------|----------|-----------------|\n")
		for _, c := range r.TopCustomers {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s | %d |\n",
				c.Customer.CustomerID, c.CreditScore, c.Category, c.SuggestedLimit))
		}
	} else {
		sb.WriteString("No scored customers.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
