package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/fstour/pkg/fstour/walkthrough"
)

func newRunCommand() *cobra.Command {
	var steps []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the tour",
		Long: `Run every step of the tour, or only the named steps and the steps they
require. Result lines go to stdout and logs to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, fsys, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			if len(steps) == 0 {
				steps = cfg.Steps
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			runner := walkthrough.NewRunner(fsys, cfg, cmd.OutOrStdout(), logger)
			result, err := runner.Run(ctx, steps...)
			if err != nil {
				return err
			}
			logger.Debug().
				Str("run", result.RunID).
				Dur("duration", result.Duration).
				Msg("tour complete")
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&steps, "step", "s", nil, "step to run, repeatable (default is every step)")

	return cmd
}

func newStepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the tour steps in run order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := walkthrough.DefaultRegistry().Plan()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, step := range plan {
				requires := ""
				if len(step.Requires) > 0 {
					requires = " (requires " + strings.Join(step.Requires, ", ") + ")"
				}
				fmt.Fprintf(out, "%-12s %s%s\n", step.Name, step.Description, requires)
			}
			return nil
		},
	}
}
