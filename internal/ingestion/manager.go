package ingestion

import (
	"context"
	"fmt"

	"credit-score-lab/internal/storage"
)

// Manager moves customers from a source into a customer store.
// It uses the storage layer for duplicate rejection.
type Manager struct {
	source Source
	store  storage.CustomerStore
}

// NewManager creates a new ingestion manager.
func NewManager(source Source, store storage.CustomerStore) *Manager {
	return &Manager{source: source, store: store}
}

// Ingest loads the source batch, extracts and deduplicates it, then stores it
// in a single bulk insert. Returns the number of stored customers and the
// number of duplicates dropped. Customers already in the store fail the whole
// batch with storage.ErrDuplicateKey.
func (m *Manager) Ingest(ctx context.Context) (stored, duplicates int, err error) {
	if m.source == nil || m.store == nil {
		return 0, 0, nil
	}

	batch, err := m.source.Load(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load source: %w", err)
	}

	records, err := Extract(batch)
	if err != nil {
		return 0, 0, err
	}

	records, duplicates = Deduplicate(records)
	if len(records) == 0 {
		return 0, duplicates, nil
	}

	if err := m.store.InsertBulk(ctx, records); err != nil {
		return 0, duplicates, err
	}

	return len(records), duplicates, nil
}
