package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/exascience/recipsum/forkjoin"
	"github.com/exascience/recipsum/internal"
	"github.com/exascience/recipsum/internal/bench"
	"github.com/exascience/recipsum/internal/config"
	"github.com/exascience/recipsum/parallel"
	"github.com/exascience/recipsum/sequential"
)

func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		cfg     config.Config
	)
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "recipsum",
		Short:         "Sum of reciprocals with fork-join parallelism",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Flags:      cmd.Flags(),
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newSumCmd(&cfg))
	cmd.AddCommand(newBenchCmd(&cfg))

	return cmd
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}))
}

// session holds the input and pool shared by the variants of one command.
type session struct {
	cfg    config.Config
	logger *slog.Logger
	pool   *forkjoin.Pool
	input  []float64
	tasks  int
}

func newSession(cfg config.Config, stderr io.Writer) *session {
	logger := newLogger(stderr, cfg.Log.Level)
	pool := forkjoin.NewPool(cfg.Pool.Parallelism)
	tasks := internal.ComputeNofTasks(cfg.Input.Size, cfg.Reduce.Tasks, pool.Parallelism())
	logger.Info("generating input",
		"size", cfg.Input.Size, "seed", cfg.Input.Seed, "min", cfg.Input.Min, "max", cfg.Input.Max)
	input := bench.Generate(cfg.Input.Size, cfg.Input.Seed, cfg.Input.Min, cfg.Input.Max)
	logger.Info("pool ready",
		"parallelism", pool.Parallelism(), "threshold", cfg.Reduce.Threshold, "tasks", tasks)
	return &session{cfg: cfg, logger: logger, pool: pool, input: input, tasks: tasks}
}

func (s *session) Close() {
	s.pool.Close()
}

func (s *session) variants() []bench.Variant {
	r := &parallel.Reducer{Pool: s.pool, Threshold: s.cfg.Reduce.Threshold}
	return []bench.Variant{
		{
			Name: "sequential",
			Run:  func() (float64, error) { return sequential.Sum(s.input), nil },
		},
		{
			Name: "parallel",
			Run:  func() (float64, error) { return r.Sum(s.input) },
		},
		{
			Name: "chunked",
			Run:  func() (float64, error) { return r.ChunkedSum(s.input, s.tasks) },
		},
	}
}
