package ingestion

import (
	"context"

	"credit-score-lab/internal/domain"
)

// Source provides a raw customer batch from an external system.
// The returned batch declares its schema; rows may carry nil fields,
// which Extract reports as missing.
type Source interface {
	Load(ctx context.Context) (*domain.CustomerBatch, error)
}
