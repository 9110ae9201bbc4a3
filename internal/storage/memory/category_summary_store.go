package memory

import (
	"context"
	"sort"
	"sync"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/storage"
)

type summaryKey struct {
	runID    string
	category domain.Category
}

// CategorySummaryStore is an in-memory implementation of storage.CategorySummaryStore.
type CategorySummaryStore struct {
	mu   sync.RWMutex
	data map[summaryKey]domain.CategorySummary
}

// NewCategorySummaryStore creates a new in-memory category summary store.
func NewCategorySummaryStore() *CategorySummaryStore {
	return &CategorySummaryStore{
		data: make(map[summaryKey]domain.CategorySummary),
	}
}

// InsertBulk adds all summaries atomically. Fails entire batch on any duplicate.
func (s *CategorySummaryStore) InsertBulk(_ context.Context, summaries []domain.CategorySummary) error {
	if len(summaries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[summaryKey]struct{}, len(summaries))
	for _, sum := range summaries {
		if sum.RunID == "" || !sum.Category.Valid() {
			return storage.ErrInvalidInput
		}
		key := summaryKey{runID: sum.RunID, category: sum.Category}
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, sum := range summaries {
		s.data[summaryKey{runID: sum.RunID, category: sum.Category}] = sum
	}
	return nil
}

// GetByRun retrieves summaries of a run in tier order (Premium first).
func (s *CategorySummaryStore) GetByRun(_ context.Context, runID string) ([]domain.CategorySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.CategorySummary
	for key, sum := range s.data {
		if key.runID == runID {
			result = append(result, sum)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return storage.CategoryRank(result[i].Category) < storage.CategoryRank(result[j].Category)
	})
	return result, nil
}

var _ storage.CategorySummaryStore = (*CategorySummaryStore)(nil)
