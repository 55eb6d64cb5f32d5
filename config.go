package jobassigner

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hakkd/job-assigner/strategy"
)

// Store backends accepted in StoreConfig.Backend.
const (
	StoreBackendFile = "file"
	StoreBackendKV   = "kv"
)

// StoreConfig configures where engine snapshots are persisted.
type StoreConfig struct {
	// Backend is "file" (JSON file) or "kv" (NATS JetStream KeyValue).
	Backend string `yaml:"backend"`

	// Path is the JSON file used by the file backend.
	Path string `yaml:"path"`

	// NATSURL is the server URL used by the kv backend.
	NATSURL string `yaml:"natsUrl"`

	// Bucket is the KV bucket name used by the kv backend.
	Bucket string `yaml:"bucket"`

	// Key is the KV key holding the snapshot.
	Key string `yaml:"key"`

	// OperationTimeout bounds a single load or save.
	OperationTimeout time.Duration `yaml:"operationTimeout"`
}

// Config is the configuration for an Engine.
type Config struct {
	// SlotsPerJob is the capacity given to jobs created through Engine.NewJob.
	SlotsPerJob int `yaml:"slotsPerJob"`

	// Strategy selects the job selection algorithm: "uniform", "linear-probe" or "rendezvous".
	Strategy string `yaml:"strategy"`

	// MaxProbeAttempts bounds the random starts of the linear-probe strategy.
	// 0 means 4 attempts per job with a floor of 16.
	MaxProbeAttempts int `yaml:"maxProbeAttempts"`

	// Seed seeds the engine random source and the rendezvous hash.
	// 0 draws a random seed at engine creation.
	Seed uint64 `yaml:"seed"`

	// VacateFirst releases every held job into the holder's history at the
	// start of a round, before anyone is assigned. Without it people move one
	// at a time and each still occupies their old slot while choosing.
	VacateFirst bool `yaml:"vacateFirst"`

	// ResetOnExhaustion makes RunRound reset the engine and retry once when
	// people have run out of jobs they have not held yet.
	ResetOnExhaustion bool `yaml:"resetOnExhaustion"`

	// Store configures snapshot persistence.
	Store StoreConfig `yaml:"store"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SlotsPerJob: 2,
		Strategy:    strategy.NameUniform,
		Store: StoreConfig{
			Backend:          StoreBackendFile,
			Path:             "data.json",
			Bucket:           "job-assigner",
			Key:              "engine",
			OperationTimeout: 10 * time.Second,
		},
	}
}

// SetDefaults fills in missing configuration values.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.SlotsPerJob == 0 {
		cfg.SlotsPerJob = defaults.SlotsPerJob
	}
	if cfg.Strategy == "" {
		cfg.Strategy = defaults.Strategy
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = defaults.Store.Backend
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = defaults.Store.Path
	}
	if cfg.Store.Bucket == "" {
		cfg.Store.Bucket = defaults.Store.Bucket
	}
	if cfg.Store.Key == "" {
		cfg.Store.Key = defaults.Store.Key
	}
	if cfg.Store.OperationTimeout == 0 {
		cfg.Store.OperationTimeout = defaults.Store.OperationTimeout
	}
	// Seed 0 and MaxProbeAttempts 0 are meaningful, no defaults applied.
}

// Validate checks configuration constraints.
//
// Returns:
//   - error: Wrapped ErrInvalidConfig describing the first violation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.SlotsPerJob <= 0 {
		return fmt.Errorf("%w: slotsPerJob must be > 0, got %d", ErrInvalidConfig, cfg.SlotsPerJob)
	}

	switch cfg.Strategy {
	case strategy.NameUniform, strategy.NameLinearProbe, strategy.NameRendezvous:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnknownStrategy, cfg.Strategy)
	}

	if cfg.MaxProbeAttempts < 0 {
		return fmt.Errorf("%w: maxProbeAttempts must be >= 0, got %d", ErrInvalidConfig, cfg.MaxProbeAttempts)
	}

	switch cfg.Store.Backend {
	case StoreBackendFile:
		if cfg.Store.Path == "" {
			return fmt.Errorf("%w: store.path is required for the file backend", ErrInvalidConfig)
		}
	case StoreBackendKV:
		if cfg.Store.Bucket == "" || cfg.Store.Key == "" {
			return fmt.Errorf("%w: store.bucket and store.key are required for the kv backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidConfig, cfg.Store.Backend)
	}

	if cfg.Store.OperationTimeout < 0 {
		return fmt.Errorf("%w: store.operationTimeout must be >= 0, got %v", ErrInvalidConfig, cfg.Store.OperationTimeout)
	}

	return nil
}

// LoadConfig reads a YAML configuration file, applies defaults and validates it.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - *Config: Loaded configuration
//   - error: Read, parse or validation error
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	SetDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
