package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"credit-score-lab/internal/scoring"
	"credit-score-lab/internal/verification"
)

func newVerifyCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "verify RUN_ID",
		Short: "Rescore a stored run and report divergences",
		Long: `Rescore the stored customers of a run with the current configuration
and compare every derived field with the stored record. Exits non-zero on any divergence.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Storage.PostgresDSN == "" {
				return errors.New("--postgres-dsn is required")
			}
			scoringCfg, err := cfg.Scoring.Domain()
			if err != nil {
				return err
			}
			scorer, err := scoring.NewScorer(scoringCfg)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			st, cleanup, err := openStores(ctx, cfg.Storage)
			if err != nil {
				return err
			}
			defer cleanup()

			report, err := verification.NewRescoreVerifier(st.scored, scorer).VerifyRun(ctx, args[0])
			if err != nil {
				return err
			}

			for _, r := range report.Results {
				if r.Match && !verbose {
					continue
				}
				ev := log.Info()
				if !r.Match {
					ev = log.Warn()
				}
				ev.Str("customer_id", r.CustomerID).
					Bool("match", r.Match).
					Int("divergences", len(r.Divergences)).
					Msg("record verified")
				for _, d := range r.Divergences {
					log.Warn().
						Str("customer_id", r.CustomerID).
						Str("field", d.Field).
						Interface("stored", d.Expected).
						Interface("rescored", d.Actual).
						Msg("divergence")
				}
			}

			log.Info().
				Str("run_id", report.RunID).
				Int("total", report.TotalRecords).
				Int("matched", report.MatchedRecords).
				Int("divergent", report.DivergentRecords).
				Msg("verification complete")
			if !report.AllMatch() {
				return fmt.Errorf("run %s: %d of %d records diverge", report.RunID, report.DivergentRecords, report.TotalRecords)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log matching records too")
	addStorageFlags(cmd)
	return cmd
}
