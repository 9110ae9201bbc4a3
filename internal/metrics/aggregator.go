package metrics

import (
	"context"
	"errors"
	"fmt"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/storage"
)

// ErrNoRecords is returned when a run has no scored records to aggregate.
var ErrNoRecords = errors.New("no scored records available for aggregation")

// Aggregator recomputes category summaries from persisted scored records.
type Aggregator struct {
	scoredStore  storage.ScoredRecordStore
	summaryStore storage.CategorySummaryStore
}

// NewAggregator creates a new metrics aggregator.
func NewAggregator(scoredStore storage.ScoredRecordStore, summaryStore storage.CategorySummaryStore) *Aggregator {
	return &Aggregator{
		scoredStore:  scoredStore,
		summaryStore: summaryStore,
	}
}

// ComputeRunSummaries loads the records of a run and summarizes them by category.
// Returns ErrNoRecords if the run is empty or unknown.
func (a *Aggregator) ComputeRunSummaries(ctx context.Context, runID string) ([]domain.CategorySummary, error) {
	records, err := a.scoredStore.GetByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load scored records: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	summaries := SummarizeByCategory(records)
	for i := range summaries {
		summaries[i].RunID = runID
	}
	return summaries, nil
}

// ComputeAndStore computes and persists the summaries of a run.
// Returns storage.ErrDuplicateKey if summaries already exist (append-only).
func (a *Aggregator) ComputeAndStore(ctx context.Context, runID string) ([]domain.CategorySummary, error) {
	summaries, err := a.ComputeRunSummaries(ctx, runID)
	if err != nil {
		return nil, err
	}

	if err := a.summaryStore.InsertBulk(ctx, summaries); err != nil {
		return nil, err
	}

	return summaries, nil
}
