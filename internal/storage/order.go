package storage

import (
	"sort"

	"credit-score-lab/internal/domain"
)

// SortScored orders records by credit_score DESC, customer_id ASC.
// This is the ordering every ScoredRecordStore read returns.
func SortScored(records []domain.ScoredRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreditScore != records[j].CreditScore {
			return records[i].CreditScore > records[j].CreditScore
		}
		return records[i].Customer.CustomerID < records[j].Customer.CustomerID
	})
}

// CategoryRank returns the report position of a category (Premium = 0).
// Unknown categories sort last.
func CategoryRank(c domain.Category) int {
	for i, known := range domain.Categories() {
		if known == c {
			return i
		}
	}
	return len(domain.Categories())
}
