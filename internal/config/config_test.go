package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2_000_000, cfg.Input.Size)
	assert.Equal(t, 20000, cfg.Reduce.Threshold)
	assert.Equal(t, 0, cfg.Pool.Parallelism)
	assert.Equal(t, 5, cfg.Bench.Runs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Flags: newFlags(t), Defaults: DefaultConfig()})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("RECIPSUM_REDUCE_THRESHOLD", "500")
	t.Setenv("RECIPSUM_INPUT_SIZE", "1000")

	cfg, err := Load(LoadOptions{
		Flags:    newFlags(t, "--input-size=64", "--pool-parallelism=3"),
		Defaults: DefaultConfig(),
	})
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Input.Size)
	assert.Equal(t, 3, cfg.Pool.Parallelism)
	assert.Equal(t, 500, cfg.Reduce.Threshold)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	content := "input:\n  size: 128\n  seed: 7\nreduce:\n  tasks: 4\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(LoadOptions{ConfigFile: path, Defaults: DefaultConfig()})
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Input.Size)
	assert.Equal(t, uint64(7), cfg.Input.Seed)
	assert.Equal(t, 4, cfg.Reduce.Tasks)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Bench.Runs)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: filepath.Join(t.TempDir(), "missing.yaml"),
		Defaults:   DefaultConfig(),
	})
	assert.Error(t, err)
}

func TestLoadRejectsOddSize(t *testing.T) {
	_, err := Load(LoadOptions{Flags: newFlags(t, "--input-size=3"), Defaults: DefaultConfig()})
	assert.ErrorContains(t, err, "input.size")
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"negative size":        func(c *Config) { c.Input.Size = -2 },
		"empty value range":    func(c *Config) { c.Input.Min, c.Input.Max = 5, 5 },
		"negative parallelism": func(c *Config) { c.Pool.Parallelism = -1 },
		"negative threshold":   func(c *Config) { c.Reduce.Threshold = -1 },
		"negative tasks":       func(c *Config) { c.Reduce.Tasks = -1 },
		"no runs":              func(c *Config) { c.Bench.Runs = 0 },
		"negative tolerance":   func(c *Config) { c.Bench.Tolerance = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
