package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/ingestion/stub"
	"credit-score-lab/internal/observability"
	"credit-score-lab/internal/scoring"
	"credit-score-lab/internal/storage"
	"credit-score-lab/internal/storage/memory"
)

var fixedTime = time.Date(2025, 1, 4, 12, 0, 0, 0, time.UTC)

func newTestPipeline(t *testing.T, outputDir string) *CreditPipeline {
	t.Helper()
	scorer, err := scoring.NewScorer(domain.DefaultScoringConfig())
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	return NewCreditPipeline(stub.NewStubSource(FixtureBatch()), scorer, outputDir).
		WithClock(func() time.Time { return fixedTime }).
		WithRunID("run-test")
}

func TestCreditPipeline_Run(t *testing.T) {
	tempDir := t.TempDir()
	ctx := context.Background()

	result, err := newTestPipeline(t, tempDir).Run(ctx)
	if err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}

	if result.InputRecords != 8 || result.DuplicateRecords != 1 {
		t.Errorf("input/duplicates = %d/%d, want 8/1", result.InputRecords, result.DuplicateRecords)
	}
	if result.Batch.Rejected != 2 {
		t.Errorf("rejected = %d, want 2", result.Batch.Rejected)
	}
	if got := result.Batch.RejectedByReason[scoring.RejectAgeBelowMinimum]; got != 1 {
		t.Errorf("age rejections = %d, want 1", got)
	}
	if got := result.Batch.RejectedByReason[scoring.RejectNonPositiveIncome]; got != 1 {
		t.Errorf("income rejections = %d, want 1", got)
	}
	if !result.Quality.AllPass {
		t.Errorf("quality checks failed: %v", result.Quality.Failed())
	}

	wantScores := map[string]int{
		"CLI00001": 1000,
		"CLI00003": 0,
		"CLI00004": 800,
		"CLI00006": 605,
		"CLI00007": 405,
	}
	if len(result.Batch.Records) != len(wantScores) {
		t.Fatalf("scored %d records, want %d", len(result.Batch.Records), len(wantScores))
	}
	for _, r := range result.Batch.Records {
		if want, ok := wantScores[r.Customer.CustomerID]; !ok || r.CreditScore != want {
			t.Errorf("%s: score %d, want %d", r.Customer.CustomerID, r.CreditScore, want)
		}
	}

	// First occurrence of CLI00001 wins
	if first := result.Batch.Records[0]; first.Customer.Age != 35 {
		t.Errorf("expected first CLI00001 row, got age %d", first.Customer.Age)
	}

	wantCategories := []domain.Category{
		domain.CategoryPremium, domain.CategoryGold, domain.CategoryStandard, domain.CategoryRisk,
	}
	if len(result.Summaries) != len(wantCategories) {
		t.Fatalf("got %d summaries, want %d", len(result.Summaries), len(wantCategories))
	}
	for i, s := range result.Summaries {
		if s.Category != wantCategories[i] {
			t.Errorf("summary %d: got %s, want %s", i, s.Category, wantCategories[i])
		}
		if s.RunID != "run-test" {
			t.Errorf("summary %d: run id %q", i, s.RunID)
		}
	}

	if len(result.DataVersion) != 12 {
		t.Errorf("data version %q, want 12 hex chars", result.DataVersion)
	}

	// Verify all files exist
	for _, f := range []string{ScoredRecordsFile, CategorySummaryFile, ReportFile} {
		path := filepath.Join(tempDir, f)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Expected file %s does not exist", f)
		}
	}
	if len(result.Files) != 3 {
		t.Errorf("expected 3 files written, got %d", len(result.Files))
	}

	md, err := os.ReadFile(filepath.Join(tempDir, ReportFile))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	for _, want := range []string{"# Credit Scoring Report", "run-test", result.DataVersion, "AGE_BELOW_MINIMUM"} {
		if !strings.Contains(string(md), want) {
			t.Errorf("report missing %q", want)
		}
	}

	csv, err := os.ReadFile(filepath.Join(tempDir, ScoredRecordsFile))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected header + 5 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "CLI00001,") {
		t.Errorf("highest score should come first, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[5], "CLI00003,") {
		t.Errorf("lowest score should come last, got %q", lines[5])
	}
}

func TestCreditPipeline_Deterministic(t *testing.T) {
	ctx := context.Background()
	var outputs []map[string]string

	// Run pipeline twice
	for run := 0; run < 2; run++ {
		tempDir := t.TempDir()
		if _, err := newTestPipeline(t, tempDir).Run(ctx); err != nil {
			t.Fatalf("run %d failed: %v", run, err)
		}

		files := make(map[string]string)
		for _, f := range []string{ScoredRecordsFile, CategorySummaryFile, ReportFile} {
			content, err := os.ReadFile(filepath.Join(tempDir, f))
			if err != nil {
				t.Fatalf("run %d: read %s: %v", run, f, err)
			}
			files[f] = string(content)
		}
		outputs = append(outputs, files)
	}

	for name, content := range outputs[0] {
		if outputs[1][name] != content {
			t.Errorf("%s differs between runs", name)
		}
	}
}

func TestCreditPipeline_DefaultRunID(t *testing.T) {
	scorer, err := scoring.NewScorer(domain.DefaultScoringConfig())
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	p := NewCreditPipeline(stub.NewStubSource(FixtureBatch()), scorer, t.TempDir())

	a, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("expected distinct generated run ids, got %q and %q", a.RunID, b.RunID)
	}
	if a.DataVersion != b.DataVersion {
		t.Errorf("data version changed between identical runs")
	}
}

func TestCreditPipeline_Stores(t *testing.T) {
	ctx := context.Background()
	scoredStore := memory.NewScoredRecordStore()
	summaryStore := memory.NewCategorySummaryStore()

	p := newTestPipeline(t, t.TempDir()).
		WithScoredStore(scoredStore).
		WithSummaryStore(summaryStore)
	if _, err := p.Run(ctx); err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}

	records, err := scoredStore.GetByRun(ctx, "run-test")
	if err != nil {
		t.Fatalf("GetByRun failed: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("stored %d records, want 5", len(records))
	}

	summaries, err := summaryStore.GetByRun(ctx, "run-test")
	if err != nil {
		t.Fatalf("GetByRun summaries failed: %v", err)
	}
	if len(summaries) != 4 {
		t.Errorf("stored %d summaries, want 4", len(summaries))
	}

	// Same run id again collides on (run_id, customer_id)
	_, err = p.Run(ctx)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey on rerun, got %v", err)
	}
}

func TestCreditPipeline_MissingField(t *testing.T) {
	tempDir := t.TempDir()
	batch := FixtureBatch()
	batch.Rows[2].Age = nil

	scorer, err := scoring.NewScorer(domain.DefaultScoringConfig())
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	_, err = NewCreditPipeline(stub.NewStubSource(batch), scorer, tempDir).Run(context.Background())

	var missing *scoring.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != domain.ColumnAge || missing.CustomerID != "CLI00003" {
		t.Errorf("unexpected missing field: %+v", missing)
	}

	if _, err := os.Stat(filepath.Join(tempDir, ReportFile)); !os.IsNotExist(err) {
		t.Errorf("report should not be written on a fatal error")
	}
}

func TestCreditPipeline_SourceError(t *testing.T) {
	scorer, err := scoring.NewScorer(domain.DefaultScoringConfig())
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}
	boom := errors.New("source unavailable")

	_, err = NewCreditPipeline(stub.NewFailingSource(boom), scorer, t.TempDir()).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("expected source error, got %v", err)
	}
}

func TestCreditPipeline_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(t, t.TempDir()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCreditPipeline_Metrics(t *testing.T) {
	m := observability.NewMetrics("test", prometheus.NewRegistry())

	if _, err := newTestPipeline(t, t.TempDir()).WithMetrics(m).Run(context.Background()); err != nil {
		t.Fatalf("Pipeline run failed: %v", err)
	}

	counter := func(c prometheus.Counter) float64 {
		var out dto.Metric
		if err := c.Write(&out); err != nil {
			t.Fatalf("write metric: %v", err)
		}
		return out.GetCounter().GetValue()
	}

	if got := counter(m.RecordsScored); got != 5 {
		t.Errorf("records scored = %v, want 5", got)
	}
	if got := counter(m.DuplicatesDropped); got != 1 {
		t.Errorf("duplicates dropped = %v, want 1", got)
	}
	if got := counter(m.RecordsRejected.WithLabelValues(string(scoring.RejectAgeBelowMinimum))); got != 1 {
		t.Errorf("age rejections = %v, want 1", got)
	}
	if got := counter(m.RecordsByCategory.WithLabelValues(string(domain.CategoryPremium))); got != 2 {
		t.Errorf("premium records = %v, want 2", got)
	}
	if got := counter(m.PipelineRunsTotal.WithLabelValues("credit", "success")); got != 1 {
		t.Errorf("successful runs = %v, want 1", got)
	}
	if got := counter(m.ReportsGenerated); got != 1 {
		t.Errorf("reports generated = %v, want 1", got)
	}
}
