package ingestion

import (
	"context"
	"fmt"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/storage"
)

// StoreSource loads the customer batch from a CustomerStore.
type StoreSource struct {
	store storage.CustomerStore
}

// NewStoreSource creates a source backed by store.
func NewStoreSource(store storage.CustomerStore) *StoreSource {
	return &StoreSource{store: store}
}

// Compile-time interface check.
var _ Source = (*StoreSource)(nil)

// Load returns all stored customers ordered by customer_id.
func (s *StoreSource) Load(ctx context.Context) (*domain.CustomerBatch, error) {
	customers, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	return ToRaw(customers), nil
}
