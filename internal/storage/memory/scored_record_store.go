package memory

import (
	"context"
	"sync"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/storage"
)

// ScoredRecordStore is an in-memory implementation of storage.ScoredRecordStore.
type ScoredRecordStore struct {
	mu   sync.RWMutex
	data map[string]map[string]domain.ScoredRecord // run_id -> customer_id -> record
}

// NewScoredRecordStore creates a new in-memory scored record store.
func NewScoredRecordStore() *ScoredRecordStore {
	return &ScoredRecordStore{
		data: make(map[string]map[string]domain.ScoredRecord),
	}
}

// InsertBulk adds all records of a run atomically. Fails entire batch on any duplicate.
func (s *ScoredRecordStore) InsertBulk(_ context.Context, runID string, records []domain.ScoredRecord) error {
	if runID == "" {
		return storage.ErrInvalidInput
	}
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.data[runID]
	batchKeys := make(map[string]struct{}, len(records))
	for _, r := range records {
		id := r.Customer.CustomerID
		if id == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := existing[id]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[id]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[id] = struct{}{}
	}

	if existing == nil {
		existing = make(map[string]domain.ScoredRecord, len(records))
		s.data[runID] = existing
	}
	for _, r := range records {
		existing[r.Customer.CustomerID] = r
	}
	return nil
}

// GetByRun retrieves all records of a run ordered by credit_score DESC, customer_id ASC.
func (s *ScoredRecordStore) GetByRun(_ context.Context, runID string) ([]domain.ScoredRecord, error) {
	return s.collect(runID, func(domain.ScoredRecord) bool { return true }), nil
}

// GetByCategory retrieves records of a run in one category.
func (s *ScoredRecordStore) GetByCategory(_ context.Context, runID string, category domain.Category) ([]domain.ScoredRecord, error) {
	return s.collect(runID, func(r domain.ScoredRecord) bool { return r.Category == category }), nil
}

func (s *ScoredRecordStore) collect(runID string, keep func(domain.ScoredRecord) bool) []domain.ScoredRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.ScoredRecord
	for _, r := range s.data[runID] {
		if keep(r) {
			result = append(result, r)
		}
	}
	storage.SortScored(result)
	return result
}

var _ storage.ScoredRecordStore = (*ScoredRecordStore)(nil)
