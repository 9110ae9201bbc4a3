package reporting

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/metrics"
)

// utf8BOM lets spreadsheet tools detect the encoding.
const utf8BOM = "\ufeff"

// ScoredRecordsHeader is the column layout of the scored records export.
var ScoredRecordsHeader = []string{
	"customer_id",
	"age",
	"monthly_income",
	"average_balance",
	"delinquencies_12m",
	"tenure_months",
	"credit_score",
	"category",
	"suggested_limit",
	"monthly_rate",
	"projected_monthly_revenue",
}

// CategorySummaryHeader is the column layout of the category summary export.
var CategorySummaryHeader = []string{
	"category",
	"customers",
	"mean_score",
	"mean_income",
	"mean_limit",
	"total_revenue",
	"revenue_share",
	"customer_share",
}

// RenderScoredRecordsCSV renders scored records as CSV, prefixed with a UTF-8 BOM.
// Rows are sorted by credit_score DESC, customer_id ASC.
func RenderScoredRecordsCSV(records []domain.ScoredRecord) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, r := range metrics.SortForReport(records) {
		c := r.Customer
		rows = append(rows, []string{
			c.CustomerID,
			strconv.Itoa(c.Age),
			formatFloat(c.MonthlyIncome),
			formatFloat(c.AverageBalance),
			strconv.Itoa(c.Delinquencies12m),
			strconv.Itoa(c.TenureMonths),
			strconv.Itoa(r.CreditScore),
			string(r.Category),
			strconv.FormatInt(r.SuggestedLimit, 10),
			r.MonthlyRate.String(),
			r.ProjectedMonthlyRevenue.StringFixed(2),
		})
	}
	return renderCSV(ScoredRecordsHeader, rows)
}

// RenderCategorySummaryCSV renders category summaries as CSV, prefixed with a UTF-8 BOM.
func RenderCategorySummaryCSV(summaries []domain.CategorySummary) (string, error) {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			string(s.Category),
			strconv.Itoa(s.Customers),
			strconv.FormatFloat(s.MeanScore, 'f', 2, 64),
			strconv.FormatFloat(s.MeanIncome, 'f', 2, 64),
			strconv.FormatFloat(s.MeanLimit, 'f', 2, 64),
			s.TotalRevenue.StringFixed(2),
			strconv.FormatFloat(s.RevenueShare, 'f', 4, 64),
			strconv.FormatFloat(s.CustomerShare, 'f', 4, 64),
		})
	}
	return renderCSV(CategorySummaryHeader, rows)
}

func renderCSV(header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatFloat prints the shortest representation, so 5000 stays "5000".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
