package ingestion

import (
	"credit-score-lab/internal/domain"
)

// Deduplicate drops repeated customer IDs, keeping the first occurrence.
// Input order is preserved. Returns the kept records and the number dropped.
func Deduplicate(records []domain.CustomerRecord) ([]domain.CustomerRecord, int) {
	seen := make(map[string]struct{}, len(records))
	kept := make([]domain.CustomerRecord, 0, len(records))

	for _, r := range records {
		if _, dup := seen[r.CustomerID]; dup {
			continue
		}
		seen[r.CustomerID] = struct{}{}
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}
