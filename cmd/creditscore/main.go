// Package main provides the creditscore command line entry point.
// Subcommands: run, serve, seed, migrate, report, summarize, verify.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"credit-score-lab/internal/config"
)

const version = "v1.0.0"

// Flags shared by all subcommands.
var (
	configPath string
	logLevel   string
	jsonLogs   bool
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "creditscore",
		Short:         "Score bank customers and export credit reports",
		Long:          "creditscore computes a 0-1000 credit score per customer, assigns a tier and projects monthly revenue.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit JSON logs instead of console output")

	rootCmd.AddCommand(
		newRunCmd(),
		newServeCmd(),
		newSeedCmd(),
		newMigrateCmd(),
		newReportCmd(),
		newSummarizeCmd(),
		newVerifyCmd(),
	)
	return rootCmd
}

func setupLogger() error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	if jsonLogs {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

// loadConfig reads --config and lets explicitly set flags override it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Lookup("output-dir") != nil && flags.Changed("output-dir") {
		cfg.Run.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Lookup("source") != nil && flags.Changed("source") {
		cfg.Run.Source, _ = flags.GetString("source")
	}
	if flags.Lookup("customers") != nil && flags.Changed("customers") {
		cfg.Run.Synthetic.Customers, _ = flags.GetInt("customers")
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Run.Synthetic.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Lookup("postgres-dsn") != nil && flags.Changed("postgres-dsn") {
		cfg.Storage.PostgresDSN, _ = flags.GetString("postgres-dsn")
	}
	if flags.Lookup("clickhouse-dsn") != nil && flags.Changed("clickhouse-dsn") {
		cfg.Storage.ClickHouseDSN, _ = flags.GetString("clickhouse-dsn")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Server.Addr, _ = flags.GetString("addr")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func addStorageFlags(cmd *cobra.Command) {
	cmd.Flags().String("postgres-dsn", "", "PostgreSQL connection string (default from config or "+config.EnvPostgresDSN+")")
	cmd.Flags().String("clickhouse-dsn", "", "ClickHouse connection string (default from config or "+config.EnvClickHouseDSN+")")
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log.Warn().Str("signal", sig.String()).Msg("shutting down")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
