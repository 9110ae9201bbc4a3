package reporting

import (
	"time"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/metrics"
)

// TopCustomersLimit is the number of customers listed in the report ranking.
const TopCustomersLimit = 10

// Report represents a credit scoring run report.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	RunID       string
	DataVersion string
	GitCommit   string

	// Batch Summary
	Batch BatchSummary

	// Data Quality
	Quality QualitySection

	// Category distribution in tier order
	Categories []domain.CategorySummary

	// General statistics
	Statistics metrics.Statistics

	// Best customers, score DESC then customer_id ASC
	TopCustomers []domain.ScoredRecord
}

// BatchSummary describes how the input batch was reduced to scored records.
// Counts are zero when the report is rebuilt from stored records.
type BatchSummary struct {
	InputRecords     int
	DuplicateRecords int
	RejectedRecords  int
	RejectedByReason []ReasonCount // sorted by reason
	ScoredRecords    int
}

// ReasonCount is the number of records rejected for one reason.
type ReasonCount struct {
	Reason string
	Count  int
}

// QualitySection contains the output quality checks.
type QualitySection struct {
	Checks          []QualityCheckRow
	AllChecksPassed bool
}

// QualityCheckRow represents one quality criterion.
type QualityCheckRow struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}
