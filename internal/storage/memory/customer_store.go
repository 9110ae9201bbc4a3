package memory

import (
	"context"
	"sort"
	"sync"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/storage"
)

// CustomerStore is an in-memory implementation of storage.CustomerStore.
type CustomerStore struct {
	mu   sync.RWMutex
	data map[string]domain.CustomerRecord // keyed by customer_id
}

// NewCustomerStore creates a new in-memory customer store.
func NewCustomerStore() *CustomerStore {
	return &CustomerStore{
		data: make(map[string]domain.CustomerRecord),
	}
}

// Insert adds a new customer. Returns ErrDuplicateKey if customer_id exists.
func (s *CustomerStore) Insert(_ context.Context, c domain.CustomerRecord) error {
	if c.CustomerID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[c.CustomerID]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[c.CustomerID] = c
	return nil
}

// InsertBulk adds multiple customers atomically. Fails entire batch on any duplicate.
func (s *CustomerStore) InsertBulk(_ context.Context, customers []domain.CustomerRecord) error {
	if len(customers) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// First pass: check for duplicates (existing + intra-batch)
	batchKeys := make(map[string]struct{}, len(customers))
	for _, c := range customers {
		if c.CustomerID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[c.CustomerID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[c.CustomerID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[c.CustomerID] = struct{}{}
	}

	// Second pass: insert all
	for _, c := range customers {
		s.data[c.CustomerID] = c
	}
	return nil
}

// GetByID retrieves a customer by its ID. Returns ErrNotFound if not exists.
func (s *CustomerStore) GetByID(_ context.Context, customerID string) (domain.CustomerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, exists := s.data[customerID]
	if !exists {
		return domain.CustomerRecord{}, storage.ErrNotFound
	}
	return c, nil
}

// GetAll retrieves all customers ordered by customer_id ASC.
func (s *CustomerStore) GetAll(_ context.Context) ([]domain.CustomerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.CustomerRecord, 0, len(s.data))
	for _, c := range s.data {
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CustomerID < result[j].CustomerID
	})
	return result, nil
}

var _ storage.CustomerStore = (*CustomerStore)(nil)
