// Package pipeline wires ingestion, scoring, quality checks and reporting
// into a single credit scoring run.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/idhash"
	"credit-score-lab/internal/ingestion"
	"credit-score-lab/internal/metrics"
	"credit-score-lab/internal/observability"
	"credit-score-lab/internal/reporting"
	"credit-score-lab/internal/scoring"
	"credit-score-lab/internal/storage"
)

// Output file names written by a run.
const (
	ScoredRecordsFile   = "credit_report.csv"
	CategorySummaryFile = "category_summary.csv"
	ReportFile          = "CREDIT_REPORT.md"
)

// Pipeline stage names used in logs and metrics.
const (
	StageLoad    = "load"
	StageExtract = "extract"
	StageScore   = "score"
	StageQuality = "quality"
	StageReport  = "report"
	StageStore   = "store"
)

// RunResult is the outcome of one pipeline run.
type RunResult struct {
	RunID       string
	DataVersion string

	InputRecords     int
	DuplicateRecords int
	Batch            *scoring.BatchResult

	Quality    *QualityResult
	Summaries  []domain.CategorySummary
	Statistics metrics.Statistics
	Report     *reporting.Report

	Files []string // paths written, in write order
}

// CreditPipeline runs a full scoring batch from a source to the report files.
type CreditPipeline struct {
	source    ingestion.Source
	scorer    *scoring.Scorer
	quality   *QualityChecker
	outputDir string

	scoredStore  storage.ScoredRecordStore    // optional
	summaryStore storage.CategorySummaryStore // optional
	metrics      *observability.Metrics       // optional

	runID  string
	clock  func() time.Time
	logger zerolog.Logger
}

// NewCreditPipeline creates a new pipeline.
func NewCreditPipeline(source ingestion.Source, scorer *scoring.Scorer, outputDir string) *CreditPipeline {
	cfg := scorer.Config()
	return &CreditPipeline{
		source:    source,
		scorer:    scorer,
		quality:   NewQualityChecker(cfg.MinScore, cfg.MaxScore),
		outputDir: outputDir,
		clock:     func() time.Time { return time.Now().UTC() },
		logger:    zerolog.Nop(),
	}
}

// WithClock sets a custom clock function for deterministic output.
func (p *CreditPipeline) WithClock(clock func() time.Time) *CreditPipeline {
	p.clock = clock
	return p
}

// WithLogger sets the logger used for stage events.
func (p *CreditPipeline) WithLogger(logger zerolog.Logger) *CreditPipeline {
	p.logger = logger
	return p
}

// WithScoredStore persists scored records of every run.
func (p *CreditPipeline) WithScoredStore(store storage.ScoredRecordStore) *CreditPipeline {
	p.scoredStore = store
	return p
}

// WithSummaryStore persists category summaries of every run.
func (p *CreditPipeline) WithSummaryStore(store storage.CategorySummaryStore) *CreditPipeline {
	p.summaryStore = store
	return p
}

// WithMetrics records run counters on m.
func (p *CreditPipeline) WithMetrics(m *observability.Metrics) *CreditPipeline {
	p.metrics = m
	return p
}

// WithRunID fixes the run identifier. By default each run gets a new UUID.
func (p *CreditPipeline) WithRunID(runID string) *CreditPipeline {
	p.runID = runID
	return p
}

// Run executes the pipeline and writes output files:
// - credit_report.csv
// - category_summary.csv
// - CREDIT_REPORT.md
// A missing required field aborts the run before anything is written.
func (p *CreditPipeline) Run(ctx context.Context) (*RunResult, error) {
	start := p.clock()
	result, err := p.run(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}
	if p.metrics != nil {
		p.metrics.RecordPipelineRun("credit", status, p.clock().Sub(start).Seconds())
		if err == nil {
			p.metrics.LastSuccessfulPipeline.Set(float64(p.clock().Unix()))
		}
	}
	return result, err
}

func (p *CreditPipeline) run(ctx context.Context) (*RunResult, error) {
	runID := p.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	log := p.logger.With().Str("run_id", runID).Logger()

	// 1. Load
	batch, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageLoad, err)
	}
	if batch != nil {
		log.Info().Str("stage", StageLoad).Int("rows", len(batch.Rows)).Msg("batch loaded")
	}

	// 2. Extract + deduplicate
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := ingestion.Extract(batch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageExtract, err)
	}
	unique, duplicates := ingestion.Deduplicate(records)
	log.Info().Str("stage", StageExtract).
		Int("records", len(records)).
		Int("duplicates", duplicates).
		Msg("batch extracted")

	// 3. Score
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	scored, err := p.scorer.ScoreBatch(unique)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageScore, err)
	}
	log.Info().Str("stage", StageScore).
		Int("scored", len(scored.Records)).
		Int("rejected", scored.Rejected).
		Msg("batch scored")

	// 4. Quality
	quality := p.quality.Check(scored.Records)
	for _, name := range quality.Failed() {
		log.Warn().Str("stage", StageQuality).Str("check", name).Msg("quality check failed")
	}

	summaries := metrics.SummarizeByCategory(scored.Records)
	for i := range summaries {
		summaries[i].RunID = runID
	}
	p.recordBatchMetrics(scored, summaries, duplicates, quality)

	result := &RunResult{
		RunID:            runID,
		DataVersion:      idhash.ComputeDataVersion(scored.Records),
		InputRecords:     len(records),
		DuplicateRecords: duplicates,
		Batch:            scored,
		Quality:          quality,
		Summaries:        summaries,
		Statistics:       metrics.ComputeStatistics(scored.Records),
	}
	result.Report = p.buildReport(result)

	// 5. Report files
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := p.writeOutputs(result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", StageReport, err)
	}
	result.Files = files
	if p.metrics != nil {
		p.metrics.ReportsGenerated.Inc()
	}
	log.Info().Str("stage", StageReport).Str("dir", p.outputDir).Msg("report written")

	// 6. Stores
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.store(ctx, result); err != nil {
		return nil, fmt.Errorf("%s: %w", StageStore, err)
	}

	log.Info().
		Str("data_version", result.DataVersion).
		Bool("quality_passed", quality.AllPass).
		Msg("run complete")
	return result, nil
}

func (p *CreditPipeline) recordBatchMetrics(batch *scoring.BatchResult, summaries []domain.CategorySummary, duplicates int, quality *QualityResult) {
	if p.metrics == nil {
		return
	}
	rejected := make(map[string]int, len(batch.RejectedByReason))
	for reason, n := range batch.RejectedByReason {
		rejected[string(reason)] = n
	}
	byCategory := make(map[string]int, len(summaries))
	for _, s := range summaries {
		byCategory[string(s.Category)] = s.Customers
	}
	p.metrics.RecordBatch(len(batch.Records), rejected, byCategory)
	p.metrics.DuplicatesDropped.Add(float64(duplicates))
	for _, name := range quality.Failed() {
		p.metrics.RecordQualityFailure(name)
	}
}

func (p *CreditPipeline) buildReport(r *RunResult) *reporting.Report {
	reasons := make([]reporting.ReasonCount, 0, len(r.Batch.RejectedByReason))
	for reason, n := range r.Batch.RejectedByReason {
		reasons = append(reasons, reporting.ReasonCount{Reason: string(reason), Count: n})
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i].Reason < reasons[j].Reason })

	return &reporting.Report{
		GeneratedAt: p.clock(),
		RunID:       r.RunID,
		DataVersion: r.DataVersion,
		GitCommit:   getGitCommitHash(),
		Batch: reporting.BatchSummary{
			InputRecords:     r.InputRecords,
			DuplicateRecords: r.DuplicateRecords,
			RejectedRecords:  r.Batch.Rejected,
			RejectedByReason: reasons,
			ScoredRecords:    len(r.Batch.Records),
		},
		Quality:      convertToQualitySection(r.Quality),
		Categories:   r.Summaries,
		Statistics:   r.Statistics,
		TopCustomers: metrics.TopN(r.Batch.Records, reporting.TopCustomersLimit),
	}
}

func (p *CreditPipeline) writeOutputs(r *RunResult) ([]string, error) {
	// Ensure output directory exists
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, err
	}

	recordsCSV, err := reporting.RenderScoredRecordsCSV(r.Batch.Records)
	if err != nil {
		return nil, err
	}
	summaryCSV, err := reporting.RenderCategorySummaryCSV(r.Summaries)
	if err != nil {
		return nil, err
	}

	outputs := []struct {
		name    string
		content string
	}{
		{ScoredRecordsFile, recordsCSV},
		{CategorySummaryFile, summaryCSV},
		{ReportFile, reporting.RenderMarkdown(r.Report)},
	}

	files := make([]string, 0, len(outputs))
	for _, out := range outputs {
		path := filepath.Join(p.outputDir, out.name)
		if err := os.WriteFile(path, []byte(out.content), 0644); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

func (p *CreditPipeline) store(ctx context.Context, r *RunResult) error {
	if p.scoredStore != nil && len(r.Batch.Records) > 0 {
		start := time.Now()
		err := p.scoredStore.InsertBulk(ctx, r.RunID, r.Batch.Records)
		p.recordDBQuery("scored_records", time.Since(start), err)
		if err != nil {
			return fmt.Errorf("insert scored records: %w", err)
		}
	}
	if p.summaryStore != nil && len(r.Summaries) > 0 {
		start := time.Now()
		err := p.summaryStore.InsertBulk(ctx, r.Summaries)
		p.recordDBQuery("category_summaries", time.Since(start), err)
		if err != nil {
			return fmt.Errorf("insert category summaries: %w", err)
		}
	}
	return nil
}

func (p *CreditPipeline) recordDBQuery(table string, d time.Duration, err error) {
	if p.metrics != nil {
		p.metrics.RecordDBQuery(table, "insert_bulk", d.Seconds(), err)
	}
}

// getGitCommitHash returns current git commit hash or "unknown" if not in git repo.
func getGitCommitHash() string {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "unknown"
	}
	return strings.TrimSpace(out.String())
}
