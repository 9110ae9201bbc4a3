package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"credit-score-lab/internal/storage/migrations"
	pgstore "credit-score-lab/internal/storage/postgres"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded database migrations",
		Long: `Create the customers and scored_records tables in PostgreSQL and the
category_summaries table in ClickHouse. Each database is migrated only when its DSN is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Storage.PostgresDSN == "" && cfg.Storage.ClickHouseDSN == "" {
				return errors.New("at least one of --postgres-dsn or --clickhouse-dsn is required")
			}
			ctx, cancel := signalContext()
			defer cancel()

			if cfg.Storage.PostgresDSN != "" {
				pool, err := pgstore.NewPool(ctx, cfg.Storage.PostgresDSN)
				if err != nil {
					return fmt.Errorf("connect to postgres: %w", err)
				}
				defer pool.Close()
				if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
					return fmt.Errorf("postgres migrations: %w", err)
				}
				log.Info().Msg("postgres migrations applied")
			}

			if cfg.Storage.ClickHouseDSN != "" {
				conn, err := migrations.RunClickhouseMigrations(ctx, cfg.Storage.ClickHouseDSN)
				if err != nil {
					return fmt.Errorf("clickhouse migrations: %w", err)
				}
				defer conn.Close()
				log.Info().Msg("clickhouse migrations applied")
			}
			return nil
		},
	}

	addStorageFlags(cmd)
	return cmd
}
