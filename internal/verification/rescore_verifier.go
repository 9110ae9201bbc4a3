package verification

import (
	"context"
	"errors"
	"fmt"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/scoring"
	"credit-score-lab/internal/storage"
)

var (
	// ErrRunNotFound is returned when a run has no stored records.
	ErrRunNotFound = errors.New("run not found")

	// ErrRecordNotFound is returned when a customer is not part of a run.
	ErrRecordNotFound = errors.New("record not found")
)

// RescoreVerifier implements Verifier by rescoring stored inputs.
type RescoreVerifier struct {
	scoredStore storage.ScoredRecordStore
	scorer      *scoring.Scorer
}

// NewRescoreVerifier creates a new RescoreVerifier.
func NewRescoreVerifier(scoredStore storage.ScoredRecordStore, scorer *scoring.Scorer) *RescoreVerifier {
	return &RescoreVerifier{
		scoredStore: scoredStore,
		scorer:      scorer,
	}
}

// VerifyRecord verifies a single record of a run.
func (v *RescoreVerifier) VerifyRecord(ctx context.Context, runID, customerID string) (*VerificationResult, error) {
	records, err := v.loadRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.Customer.CustomerID == customerID {
			return v.verify(r)
		}
	}
	return nil, fmt.Errorf("%w: %s in run %s", ErrRecordNotFound, customerID, runID)
}

// VerifyRun verifies all stored records of a run.
// A record the current configuration rejects is reported as a divergence.
func (v *RescoreVerifier) VerifyRun(ctx context.Context, runID string) (*VerificationReport, error) {
	records, err := v.loadRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	report := &VerificationReport{
		RunID:        runID,
		TotalRecords: len(records),
		Results:      make([]VerificationResult, 0, len(records)),
	}

	for _, stored := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := v.verify(stored)
		if err != nil {
			// Record error as divergence
			report.Results = append(report.Results, VerificationResult{
				CustomerID:  stored.Customer.CustomerID,
				Match:       false,
				StoredScore: stored.CreditScore,
				Divergences: []FieldDivergence{
					{Field: "Error", Expected: nil, Actual: err.Error()},
				},
			})
			report.DivergentRecords++
			continue
		}

		report.Results = append(report.Results, *result)
		if result.Match {
			report.MatchedRecords++
		} else {
			report.DivergentRecords++
		}
	}

	return report, nil
}

func (v *RescoreVerifier) loadRun(ctx context.Context, runID string) ([]domain.ScoredRecord, error) {
	records, err := v.scoredStore.GetByRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return records, nil
}

func (v *RescoreVerifier) verify(stored domain.ScoredRecord) (*VerificationResult, error) {
	rescored, reason, err := v.scorer.Score(stored.Customer)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return &VerificationResult{
			CustomerID:  stored.Customer.CustomerID,
			Match:       false,
			StoredScore: stored.CreditScore,
			Divergences: []FieldDivergence{
				{Field: "Rejected", Expected: nil, Actual: string(reason)},
			},
		}, nil
	}

	divergences := CompareScoredRecords(stored, rescored)
	return &VerificationResult{
		CustomerID:    stored.Customer.CustomerID,
		Match:         len(divergences) == 0,
		Divergences:   divergences,
		StoredScore:   stored.CreditScore,
		RescoredScore: rescored.CreditScore,
	}, nil
}
