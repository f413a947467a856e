package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exascience/recipsum/internal/bench"
	"github.com/exascience/recipsum/internal/config"
)

func newSumCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "sum",
		Short: "Compute the sum once with every variant and compare the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(*cfg, cmd.ErrOrStderr())
			defer s.Close()

			results, err := bench.Run(s.logger, s.variants(), 1, cfg.Bench.Tolerance)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%-10s %.17g\n", r.Name, r.Value)
			}
			if !bench.AllVerified(results) {
				return fmt.Errorf("results disagree beyond relative tolerance %g", cfg.Bench.Tolerance)
			}
			return nil
		},
	}
}
