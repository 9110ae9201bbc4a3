package stub

import (
	"context"

	"credit-score-lab/internal/domain"
)

// StubSource returns a fixed in-memory batch for testing.
// Implements ingestion.Source interface.
type StubSource struct {
	batch *domain.CustomerBatch
	err   error
}

// NewStubSource creates a stub source returning batch.
func NewStubSource(batch *domain.CustomerBatch) *StubSource {
	return &StubSource{batch: batch}
}

// NewFailingSource creates a stub source whose Load always fails with err.
func NewFailingSource(err error) *StubSource {
	return &StubSource{err: err}
}

// Load returns a copy of the batch so callers cannot mutate the fixture.
func (s *StubSource) Load(_ context.Context) (*domain.CustomerBatch, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.batch == nil {
		return &domain.CustomerBatch{Columns: domain.AllColumns()}, nil
	}
	out := &domain.CustomerBatch{
		Columns: append([]string(nil), s.batch.Columns...),
		Rows:    append([]domain.RawCustomer(nil), s.batch.Rows...),
	}
	return out, nil
}
