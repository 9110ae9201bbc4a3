package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"credit-score-lab/internal/metrics"
	"credit-score-lab/internal/pipeline"
	"credit-score-lab/internal/reporting"
	"credit-score-lab/internal/storage"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report RUN_ID",
		Short: "Rebuild the Markdown report of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Storage.PostgresDSN == "" {
				return errors.New("--postgres-dsn is required")
			}
			ctx, cancel := signalContext()
			defer cancel()

			st, cleanup, err := openStores(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			defer cleanup()

			summaries := st.summaries
			if cfg.Storage.ClickHouseDSN == "" {
				summaries = nil
			}
			report, err := reporting.NewGenerator(st.scored, summaries).Generate(ctx, args[0])
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("run %s has no scored records", args[0])
			}
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.Run.OutputDir, 0755); err != nil {
				return err
			}
			path := filepath.Join(cfg.Run.OutputDir, pipeline.ReportFile)
			if err := os.WriteFile(path, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
				return err
			}
			log.Info().Str("run_id", args[0]).Str("path", path).Msg("report written")
			return nil
		},
	}

	cmd.Flags().String("output-dir", "", "Output directory for generated files (default from config)")
	addStorageFlags(cmd)
	return cmd
}

func newSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize RUN_ID",
		Short: "Recompute category summaries of a stored run into ClickHouse",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Storage.PostgresDSN == "" || cfg.Storage.ClickHouseDSN == "" {
				return errors.New("--postgres-dsn and --clickhouse-dsn are required")
			}
			ctx, cancel := signalContext()
			defer cancel()

			st, cleanup, err := openStores(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			defer cleanup()

			summaries, err := metrics.NewAggregator(st.scored, st.summaries).ComputeAndStore(ctx, args[0])
			if err != nil {
				return err
			}
			for _, s := range summaries {
				log.Info().
					Str("run_id", s.RunID).
					Str("category", string(s.Category)).
					Int("customers", s.Customers).
					Str("revenue", s.TotalRevenue.StringFixed(2)).
					Msg("category summary stored")
			}
			return nil
		},
	}

	addStorageFlags(cmd)
	return cmd
}
