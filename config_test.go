package jobassigner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, 2, cfg.SlotsPerJob)
	require.Equal(t, "uniform", cfg.Strategy)
	require.Equal(t, 0, cfg.MaxProbeAttempts)
	require.Equal(t, uint64(0), cfg.Seed)
	require.False(t, cfg.ResetOnExhaustion)
	require.False(t, cfg.VacateFirst)
	require.Equal(t, "file", cfg.Store.Backend)
	require.Equal(t, "data.json", cfg.Store.Path)
	require.Equal(t, "job-assigner", cfg.Store.Bucket)
	require.Equal(t, "engine", cfg.Store.Key)
	require.Equal(t, 10*time.Second, cfg.Store.OperationTimeout)
	require.NoError(t, cfg.Validate())
}

func TestSetDefaults(t *testing.T) {
	t.Run("applies defaults to empty config", func(t *testing.T) {
		cfg := Config{}
		SetDefaults(&cfg)

		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("preserves custom values", func(t *testing.T) {
		cfg := Config{
			SlotsPerJob:       3,
			Strategy:          "rendezvous",
			MaxProbeAttempts:  5,
			Seed:              42,
			VacateFirst:       true,
			ResetOnExhaustion: true,
			Store: StoreConfig{
				Backend:          "kv",
				Path:             "state.json",
				NATSURL:          "nats://nats:4222",
				Bucket:           "rota",
				Key:              "kitchen",
				OperationTimeout: time.Second,
			},
		}
		want := cfg
		SetDefaults(&cfg)

		require.Equal(t, want, cfg)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero slots", func(c *Config) { c.SlotsPerJob = 0 }},
		{"negative slots", func(c *Config) { c.SlotsPerJob = -2 }},
		{"unknown strategy", func(c *Config) { c.Strategy = "round-robin" }},
		{"negative probe attempts", func(c *Config) { c.MaxProbeAttempts = -1 }},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }},
		{"file backend without path", func(c *Config) { c.Store.Path = "" }},
		{"kv backend without key", func(c *Config) { c.Store.Backend = "kv"; c.Store.Key = "" }},
		{"negative timeout", func(c *Config) { c.Store.OperationTimeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("unknown strategy also matches ErrUnknownStrategy", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Strategy = "fair"
		require.ErrorIs(t, cfg.Validate(), ErrUnknownStrategy)
	})
}

func TestConfig_YAML(t *testing.T) {
	yamlConfig := `
slotsPerJob: 3
strategy: linear-probe
maxProbeAttempts: 12
seed: 7
vacateFirst: true
resetOnExhaustion: true
store:
  backend: kv
  natsUrl: nats://127.0.0.1:4222
  bucket: rota
  key: kitchen
  operationTimeout: 3s
`

	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(yamlConfig), &cfg))

	require.Equal(t, 3, cfg.SlotsPerJob)
	require.Equal(t, "linear-probe", cfg.Strategy)
	require.Equal(t, 12, cfg.MaxProbeAttempts)
	require.Equal(t, uint64(7), cfg.Seed)
	require.True(t, cfg.VacateFirst)
	require.True(t, cfg.ResetOnExhaustion)
	require.Equal(t, "kv", cfg.Store.Backend)
	require.Equal(t, "nats://127.0.0.1:4222", cfg.Store.NATSURL)
	require.Equal(t, "rota", cfg.Store.Bucket)
	require.Equal(t, "kitchen", cfg.Store.Key)
	require.Equal(t, 3*time.Second, cfg.Store.OperationTimeout)
}

func TestLoadConfig(t *testing.T) {
	t.Run("partial file gets defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("slotsPerJob: 4\n"), 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, 4, cfg.SlotsPerJob)
		require.Equal(t, "uniform", cfg.Strategy)
		require.Equal(t, "data.json", cfg.Store.Path)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("strategy: fair\n"), 0o600))

		_, err := LoadConfig(path)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("slotsPerJob: [\n"), 0o600))

		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}
