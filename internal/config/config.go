// Package config loads scoring and run settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"credit-score-lab/internal/domain"
	"credit-score-lab/internal/ingestion"
	"credit-score-lab/internal/scoring"
)

// Source kinds accepted in run.source.
const (
	SourceSynthetic = "synthetic"
	SourceFixtures  = "fixtures"
	SourcePostgres  = "postgres"
)

// Environment fallbacks for empty DSNs.
const (
	EnvPostgresDSN   = "POSTGRES_DSN"
	EnvClickHouseDSN = "CLICKHOUSE_DSN"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full application configuration.
type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Run     RunConfig     `yaml:"run"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// ScoringConfig mirrors domain.ScoringConfig. Rates and factors are decimal strings.
type ScoringConfig struct {
	Weights           WeightsConfig       `yaml:"weights"`
	Normalization     NormalizationConfig `yaml:"normalization"`
	Tiers             []TierConfig        `yaml:"tiers"`
	MinScore          int                 `yaml:"min_score"`
	MaxScore          int                 `yaml:"max_score"`
	MinAge            int                 `yaml:"min_age"`
	UtilizationFactor string              `yaml:"utilization_factor"`
}

// WeightsConfig contains the five component weights.
type WeightsConfig struct {
	Income         float64 `yaml:"income"`
	Balance        float64 `yaml:"balance"`
	PaymentHistory float64 `yaml:"payment_history"`
	Transactions   float64 `yaml:"transactions"`
	Tenure         float64 `yaml:"tenure"`
}

// NormalizationConfig contains the component caps.
type NormalizationConfig struct {
	IncomeCap          float64 `yaml:"income_cap"`
	BalanceCap         float64 `yaml:"balance_cap"`
	DelinquencyPenalty float64 `yaml:"delinquency_penalty"`
	TransactionsCap    float64 `yaml:"transactions_cap"`
	TenureCapMonths    float64 `yaml:"tenure_cap_months"`
}

// TierConfig defines one tier.
type TierConfig struct {
	Category       string `yaml:"category"`
	MinScore       int    `yaml:"min_score"`
	MonthlyRate    string `yaml:"monthly_rate"`
	SuggestedLimit int64  `yaml:"suggested_limit"`
}

// RunConfig contains batch run settings.
type RunConfig struct {
	OutputDir string          `yaml:"output_dir"`
	Source    string          `yaml:"source"`
	Synthetic SyntheticConfig `yaml:"synthetic"`
}

// SyntheticConfig controls the synthetic customer generator.
type SyntheticConfig struct {
	Customers int   `yaml:"customers"`
	Seed      int64 `yaml:"seed"`
}

// StorageConfig contains database connection strings.
// Empty DSNs disable the corresponding store.
type StorageConfig struct {
	PostgresDSN   string `yaml:"postgres_dsn"`
	ClickHouseDSN string `yaml:"clickhouse_dsn"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		Run: RunConfig{
			OutputDir: "output",
			Source:    SourceSynthetic,
			Synthetic: SyntheticConfig{
				Customers: ingestion.DefaultSyntheticCustomers,
				Seed:      ingestion.DefaultSyntheticSeed,
			},
		},
		Server: ServerConfig{Addr: ":9090"},
	}
	cfg.Scoring = fromDomain(domain.DefaultScoringConfig())
	return cfg
}

// Load reads a YAML file over the defaults, applies environment fallbacks
// and validates the result. An empty path loads the defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := Parse(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg. Keys absent from data keep their current value.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if c.Storage.PostgresDSN == "" {
		c.Storage.PostgresDSN = os.Getenv(EnvPostgresDSN)
	}
	if c.Storage.ClickHouseDSN == "" {
		c.Storage.ClickHouseDSN = os.Getenv(EnvClickHouseDSN)
	}
}

// Validate checks run settings and the scoring configuration.
func (c *Config) Validate() error {
	if _, err := c.Scoring.Domain(); err != nil {
		return err
	}
	if c.Run.OutputDir == "" {
		return fmt.Errorf("%w: run.output_dir is empty", ErrInvalid)
	}
	switch c.Run.Source {
	case SourceSynthetic, SourceFixtures:
	case SourcePostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("%w: source %q needs storage.postgres_dsn or %s", ErrInvalid, SourcePostgres, EnvPostgresDSN)
		}
	default:
		return fmt.Errorf("%w: unknown run.source %q", ErrInvalid, c.Run.Source)
	}
	if c.Run.Synthetic.Customers < 1 {
		return fmt.Errorf("%w: run.synthetic.customers must be at least 1, got %d", ErrInvalid, c.Run.Synthetic.Customers)
	}
	return nil
}

// Domain converts the section into a validated domain.ScoringConfig.
func (s ScoringConfig) Domain() (domain.ScoringConfig, error) {
	factor, err := decimal.NewFromString(s.UtilizationFactor)
	if err != nil {
		return domain.ScoringConfig{}, fmt.Errorf("%w: utilization_factor %q: %v", ErrInvalid, s.UtilizationFactor, err)
	}

	tiers := make([]domain.Tier, len(s.Tiers))
	for i, t := range s.Tiers {
		rate, err := decimal.NewFromString(t.MonthlyRate)
		if err != nil {
			return domain.ScoringConfig{}, fmt.Errorf("%w: tier %s monthly_rate %q: %v", ErrInvalid, t.Category, t.MonthlyRate, err)
		}
		tiers[i] = domain.Tier{
			Category:       domain.Category(t.Category),
			MinScore:       t.MinScore,
			MonthlyRate:    rate,
			SuggestedLimit: t.SuggestedLimit,
		}
	}

	cfg := domain.ScoringConfig{
		Weights: domain.Weights{
			Income:         s.Weights.Income,
			Balance:        s.Weights.Balance,
			PaymentHistory: s.Weights.PaymentHistory,
			Transactions:   s.Weights.Transactions,
			Tenure:         s.Weights.Tenure,
		},
		Normalization: domain.Normalization{
			IncomeCap:          s.Normalization.IncomeCap,
			BalanceCap:         s.Normalization.BalanceCap,
			DelinquencyPenalty: s.Normalization.DelinquencyPenalty,
			TransactionsCap:    s.Normalization.TransactionsCap,
			TenureCapMonths:    s.Normalization.TenureCapMonths,
		},
		Tiers:             tiers,
		MinScore:          s.MinScore,
		MaxScore:          s.MaxScore,
		MinAge:            s.MinAge,
		UtilizationFactor: factor,
	}
	if err := scoring.ValidateConfig(cfg); err != nil {
		return domain.ScoringConfig{}, err
	}
	return cfg, nil
}

func fromDomain(cfg domain.ScoringConfig) ScoringConfig {
	tiers := make([]TierConfig, len(cfg.Tiers))
	for i, t := range cfg.Tiers {
		tiers[i] = TierConfig{
			Category:       string(t.Category),
			MinScore:       t.MinScore,
			MonthlyRate:    t.MonthlyRate.String(),
			SuggestedLimit: t.SuggestedLimit,
		}
	}
	return ScoringConfig{
		Weights: WeightsConfig{
			Income:         cfg.Weights.Income,
			Balance:        cfg.Weights.Balance,
			PaymentHistory: cfg.Weights.PaymentHistory,
			Transactions:   cfg.Weights.Transactions,
			Tenure:         cfg.Weights.Tenure,
		},
		Normalization: NormalizationConfig{
			IncomeCap:          cfg.Normalization.IncomeCap,
			BalanceCap:         cfg.Normalization.BalanceCap,
			DelinquencyPenalty: cfg.Normalization.DelinquencyPenalty,
			TransactionsCap:    cfg.Normalization.TransactionsCap,
			TenureCapMonths:    cfg.Normalization.TenureCapMonths,
		},
		Tiers:             tiers,
		MinScore:          cfg.MinScore,
		MaxScore:          cfg.MaxScore,
		MinAge:            cfg.MinAge,
		UtilizationFactor: cfg.UtilizationFactor.String(),
	}
}
