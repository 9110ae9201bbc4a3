package reporting

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"credit-score-lab/internal/domain"
)

func sampleRecords() []domain.ScoredRecord {
	return []domain.ScoredRecord{
		{
			Customer:                domain.CustomerRecord{CustomerID: "CLI00002", Age: 22, MonthlyIncome: 2000, AverageBalance: 150.5, Delinquencies12m: 8, TenureMonths: 3},
			CreditScore:             0,
			Category:                domain.CategoryRisk,
			SuggestedLimit:          5000,
			MonthlyRate:             decimal.RequireFromString("3.5"),
			ProjectedMonthlyRevenue: decimal.NewFromInt(105),
		},
		{
			Customer:                domain.CustomerRecord{CustomerID: "CLI00001", Age: 45, MonthlyIncome: 60000, AverageBalance: 150000, TenureMonths: 130},
			CreditScore:             1000,
			Category:                domain.CategoryPremium,
			SuggestedLimit:          50000,
			MonthlyRate:             decimal.RequireFromString("1.2"),
			ProjectedMonthlyRevenue: decimal.NewFromInt(360),
		},
	}
}

func TestRenderScoredRecordsCSV(t *testing.T) {
	out, err := RenderScoredRecordsCSV(sampleRecords())
	if err != nil {
		t.Fatalf("RenderScoredRecordsCSV failed: %v", err)
	}

	if !strings.HasPrefix(out, utf8BOM) {
		t.Error("CSV should start with a UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, utf8BOM)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}

	wantHeader := "customer_id,age,monthly_income,average_balance,delinquencies_12m,tenure_months,credit_score,category,suggested_limit,monthly_rate,projected_monthly_revenue"
	if lines[0] != wantHeader {
		t.Errorf("header mismatch:\n got %s\nwant %s", lines[0], wantHeader)
	}

	// Sorted by score DESC
	if lines[1] != "CLI00001,45,60000,150000,0,130,1000,Premium,50000,1.2,360.00" {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	if lines[2] != "CLI00002,22,2000,150.5,8,3,0,Risk,5000,3.5,105.00" {
		t.Errorf("unexpected second row: %s", lines[2])
	}
}

func TestRenderScoredRecordsCSV_Empty(t *testing.T) {
	out, err := RenderScoredRecordsCSV(nil)
	if err != nil {
		t.Fatalf("RenderScoredRecordsCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Errorf("expected header only, got %d lines", len(lines))
	}
}

func TestRenderCategorySummaryCSV(t *testing.T) {
	summaries := []domain.CategorySummary{
		{Category: domain.CategoryGold, Customers: 3, MeanScore: 650, MeanIncome: 9000, MeanLimit: 30000, TotalRevenue: decimal.NewFromInt(972), RevenueShare: 0.75, CustomerShare: 0.6},
	}

	out, err := RenderCategorySummaryCSV(summaries)
	if err != nil {
		t.Fatalf("RenderCategorySummaryCSV failed: %v", err)
	}

	if !strings.Contains(out, "category,customers,mean_score,mean_income,mean_limit,total_revenue,revenue_share,customer_share\n") {
		t.Error("CSV should contain header")
	}
	if !strings.Contains(out, "Gold,3,650.00,9000.00,30000.00,972.00,0.7500,0.6000\n") {
		t.Errorf("unexpected CSV body:\n%s", out)
	}
}
