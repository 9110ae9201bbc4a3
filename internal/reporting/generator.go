package reporting

import (
	"context"
	"fmt"
	"time"

	"credit-score-lab/internal/idhash"
	"credit-score-lab/internal/metrics"
	"credit-score-lab/internal/storage"
)

// Generator rebuilds a report for a stored run.
// Batch counts are unknown for stored runs, so only the scored count is set.
type Generator struct {
	scoredStore  storage.ScoredRecordStore
	summaryStore storage.CategorySummaryStore
	now          func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
// summaryStore may be nil; summaries are then recomputed from the records.
func NewGenerator(scoredStore storage.ScoredRecordStore, summaryStore storage.CategorySummaryStore) *Generator {
	return &Generator{
		scoredStore:  scoredStore,
		summaryStore: summaryStore,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces the report of a stored run.
// Returns storage.ErrNotFound when the run has no records.
func (g *Generator) Generate(ctx context.Context, runID string) (*Report, error) {
	records, err := g.scoredStore.GetByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load scored records: %w", err)
	}
	if len(records) == 0 {
		return nil, storage.ErrNotFound
	}

	summaries := metrics.SummarizeByCategory(records)
	if g.summaryStore != nil {
		stored, err := g.summaryStore.GetByRun(ctx, runID)
		if err != nil {
			return nil, fmt.Errorf("load category summaries: %w", err)
		}
		if len(stored) > 0 {
			summaries = stored
		}
	}
	for i := range summaries {
		summaries[i].RunID = runID
	}

	return &Report{
		GeneratedAt:  g.now(),
		RunID:        runID,
		DataVersion:  idhash.ComputeDataVersion(records),
		Batch:        BatchSummary{ScoredRecords: len(records)},
		Categories:   summaries,
		Statistics:   metrics.ComputeStatistics(records),
		TopCustomers: metrics.TopN(records, TopCustomersLimit),
	}, nil
}
