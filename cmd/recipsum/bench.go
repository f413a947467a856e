package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exascience/recipsum/internal/bench"
	"github.com/exascience/recipsum/internal/config"
)

func newBenchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Time every variant and report speedups over the sequential baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(*cfg, cmd.ErrOrStderr())
			defer s.Close()

			results, err := bench.Run(s.logger, s.variants(), cfg.Bench.Runs, cfg.Bench.Tolerance)
			if err != nil {
				return err
			}
			if err := bench.FormatTable(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			for _, r := range results[1:] {
				s.logger.Info("speedup", "variant", r.Name, "speedup", fmt.Sprintf("%.2fx", r.Speedup))
			}
			if !bench.AllVerified(results) {
				return fmt.Errorf("results disagree beyond relative tolerance %g", cfg.Bench.Tolerance)
			}
			return nil
		},
	}
}
