package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"credit-score-lab/internal/config"
	"credit-score-lab/internal/storage"
	chstore "credit-score-lab/internal/storage/clickhouse"
	"credit-score-lab/internal/storage/memory"
	pgstore "credit-score-lab/internal/storage/postgres"
)

// stores groups the collaborators of one command.
// Without a DSN the corresponding stores are in-memory.
type stores struct {
	customers storage.CustomerStore
	scored    storage.ScoredRecordStore
	summaries storage.CategorySummaryStore
	durable   bool
}

// openStores connects to the configured databases.
func openStores(ctx context.Context, cfg config.StorageConfig) (*stores, func(), error) {
	s := &stores{
		customers: memory.NewCustomerStore(),
		scored:    memory.NewScoredRecordStore(),
		summaries: memory.NewCategorySummaryStore(),
	}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.PostgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		s.customers = pgstore.NewCustomerStore(pool)
		s.scored = pgstore.NewScoredRecordStore(pool)
		s.durable = true
		log.Debug().Msg("using postgres for customers and scored records")
	}

	if cfg.ClickHouseDSN != "" {
		conn, err := chstore.NewConn(ctx, cfg.ClickHouseDSN)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		closers = append(closers, func() { conn.Close() })
		s.summaries = chstore.NewCategorySummaryStore(conn)
		s.durable = true
		log.Debug().Msg("using clickhouse for category summaries")
	}

	return s, cleanup, nil
}
