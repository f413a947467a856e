// Package config loads the configuration of the recipsum command. Command
// line flags take precedence over RECIPSUM_ environment variables, which
// take precedence over an optional config file, which takes precedence over
// the defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/exascience/recipsum"
)

type Config struct {
	Input  InputConfig  `mapstructure:"input"`
	Pool   PoolConfig   `mapstructure:"pool"`
	Reduce ReduceConfig `mapstructure:"reduce"`
	Bench  BenchConfig  `mapstructure:"bench"`
	Log    LogConfig    `mapstructure:"log"`
}

type InputConfig struct {
	Size int     `mapstructure:"size"`
	Seed uint64  `mapstructure:"seed"`
	Min  float64 `mapstructure:"min"`
	Max  float64 `mapstructure:"max"`
}

type PoolConfig struct {
	Parallelism int `mapstructure:"parallelism"`
}

type ReduceConfig struct {
	Threshold int `mapstructure:"threshold"`
	Tasks     int `mapstructure:"tasks"`
}

type BenchConfig struct {
	Runs      int     `mapstructure:"runs"`
	Tolerance float64 `mapstructure:"tolerance"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type LoadOptions struct {
	Flags      *pflag.FlagSet
	ConfigFile string
	Defaults   Config
}

func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			Size: 2_000_000,
			Seed: 1,
			Min:  1,
			Max:  100,
		},
		Pool: PoolConfig{
			Parallelism: 0,
		},
		Reduce: ReduceConfig{
			Threshold: recipsum.DefaultThreshold,
			Tasks:     0,
		},
		Bench: BenchConfig{
			Runs:      5,
			Tolerance: 1e-9,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// keys maps config keys to the flags that set them.
var keys = []struct{ key, flag string }{
	{"input.size", "input-size"},
	{"input.seed", "input-seed"},
	{"input.min", "input-min"},
	{"input.max", "input-max"},
	{"pool.parallelism", "pool-parallelism"},
	{"reduce.threshold", "reduce-threshold"},
	{"reduce.tasks", "reduce-tasks"},
	{"bench.runs", "bench-runs"},
	{"bench.tolerance", "bench-tolerance"},
	{"log.level", "log-level"},
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Int("input-size", defaults.Input.Size, "Number of input elements (must be even)")
	fs.Uint64("input-seed", defaults.Input.Seed, "Seed for the input generator")
	fs.Float64("input-min", defaults.Input.Min, "Lower bound of input values (inclusive)")
	fs.Float64("input-max", defaults.Input.Max, "Upper bound of input values (exclusive)")
	fs.Int("pool-parallelism", defaults.Pool.Parallelism, "Worker pool parallelism (0 = GOMAXPROCS)")
	fs.Int("reduce-threshold", defaults.Reduce.Threshold, "Sequential threshold of the divide-and-conquer reduction")
	fs.Int("reduce-tasks", defaults.Reduce.Tasks, "Number of tasks of the chunked reduction (0 = parallelism)")
	fs.Int("bench-runs", defaults.Bench.Runs, "Number of timed runs per variant")
	fs.Float64("bench-tolerance", defaults.Bench.Tolerance, "Relative tolerance for verifying parallel results")
	fs.String("log-level", defaults.Log.Level, "Log level: debug|info|warn|error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Flags != nil {
		for _, k := range keys {
			if f := opts.Flags.Lookup(k.flag); f != nil {
				if err := v.BindPFlag(k.key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", k.flag, err)
				}
			}
		}
	}

	v.SetEnvPrefix("RECIPSUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("recipsum")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("input.size", c.Input.Size)
	v.SetDefault("input.seed", c.Input.Seed)
	v.SetDefault("input.min", c.Input.Min)
	v.SetDefault("input.max", c.Input.Max)
	v.SetDefault("pool.parallelism", c.Pool.Parallelism)
	v.SetDefault("reduce.threshold", c.Reduce.Threshold)
	v.SetDefault("reduce.tasks", c.Reduce.Tasks)
	v.SetDefault("bench.runs", c.Bench.Runs)
	v.SetDefault("bench.tolerance", c.Bench.Tolerance)
	v.SetDefault("log.level", c.Log.Level)
}

// Validate checks the values that the core packages would reject only after
// the input has been generated.
func (c Config) Validate() error {
	switch {
	case c.Input.Size < 0 || c.Input.Size%2 != 0:
		return fmt.Errorf("input.size must be even and not negative, got %d", c.Input.Size)
	case !(c.Input.Min < c.Input.Max):
		return fmt.Errorf("input.min (%v) must be less than input.max (%v)", c.Input.Min, c.Input.Max)
	case c.Pool.Parallelism < 0:
		return fmt.Errorf("pool.parallelism must not be negative, got %d", c.Pool.Parallelism)
	case c.Reduce.Threshold < 0:
		return fmt.Errorf("reduce.threshold must not be negative, got %d", c.Reduce.Threshold)
	case c.Reduce.Tasks < 0:
		return fmt.Errorf("reduce.tasks must not be negative, got %d", c.Reduce.Tasks)
	case c.Bench.Runs < 1:
		return fmt.Errorf("bench.runs must be at least 1, got %d", c.Bench.Runs)
	case c.Bench.Tolerance < 0:
		return fmt.Errorf("bench.tolerance must not be negative, got %v", c.Bench.Tolerance)
	}
	return nil
}
