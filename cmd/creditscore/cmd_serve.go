package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"credit-score-lab/internal/config"
	"credit-score-lab/internal/observability"
)

func newServeCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pipeline on a schedule and expose /metrics",
		Long: `Start an HTTP server with /health, /status and /metrics endpoints
and run the scoring pipeline every --interval.

Examples:
  creditscore serve
  creditscore serve --addr :9100 --interval 15m`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if interval <= 0 {
				return errors.New("--interval must be positive")
			}
			ctx, cancel := signalContext()
			defer cancel()

			s := &server{cfg: cfg, interval: interval, started: time.Now()}
			return s.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "HTTP listen address (default from config)")
	cmd.Flags().String("output-dir", "", "Output directory for generated files (default from config)")
	cmd.Flags().String("source", "", "Customer source: synthetic, fixtures or postgres (default from config)")
	cmd.Flags().DurationVar(&interval, "interval", time.Hour, "Pipeline run interval")
	addStorageFlags(cmd)
	return cmd
}

// server runs the pipeline periodically.
type server struct {
	cfg      *config.Config
	interval time.Duration
	started  time.Time

	mu          sync.Mutex
	running     bool
	runs        int
	failures    int
	lastRun     time.Time
	lastRunID   string
	lastVersion string
}

// Run starts the HTTP server and the scheduler and blocks until ctx is done.
func (s *server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Server.Addr).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go s.schedule(ctx)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("shutdown complete")
	return nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	mux.Handle("/metrics", observability.Handler())

	// Status endpoint
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

func (s *server) schedule(ctx context.Context) {
	log.Info().Dur("interval", s.interval).Msg("starting pipeline scheduler")

	// Run immediately on start
	s.runPipeline(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runPipeline(ctx)
		}
	}
}

func (s *server) runPipeline(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Warn().Msg("pipeline already running, skipping")
		return
	}
	s.running = true
	s.mu.Unlock()

	result, err := runOnce(ctx, s.cfg, "", observability.DefaultMetrics)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.runs++
	s.lastRun = time.Now()
	if err != nil {
		s.failures++
		if !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("pipeline run failed")
		}
		return
	}
	s.lastRunID = result.RunID
	s.lastVersion = result.DataVersion
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status          string    `json:"status"`
	Uptime          string    `json:"uptime"`
	LastPipelineRun time.Time `json:"last_pipeline_run,omitempty"`
	LastRunID       string    `json:"last_run_id,omitempty"`
	DataVersion     string    `json:"data_version,omitempty"`
	PipelineRuns    int       `json:"pipeline_runs"`
	PipelineErrors  int       `json:"pipeline_errors"`
	PipelineRunning bool      `json:"pipeline_running"`
}

// handleStatus returns server status as JSON.
func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := StatusResponse{
		Status:          "running",
		Uptime:          time.Since(s.started).Round(time.Second).String(),
		LastPipelineRun: s.lastRun,
		LastRunID:       s.lastRunID,
		DataVersion:     s.lastVersion,
		PipelineRuns:    s.runs,
		PipelineErrors:  s.failures,
		PipelineRunning: s.running,
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
