package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "pipenet",
		Short:         "Hydraulic piping network analysis and design",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "pipenet.yaml", "session file")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override the session log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flags.metrics, "metrics", false, "print solver metrics to stderr on exit")

	rootCmd.AddCommand(analyzeCmd(&flags))
	rootCmd.AddCommand(designCmd(&flags))
	rootCmd.AddCommand(fitPumpCmd(&flags))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type globalFlags struct {
	config   string
	logLevel string
	metrics  bool
}

func analyzeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Solve a looped network for its flow distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}
}

func designCmd(flags *globalFlags) *cobra.Command {
	var curvePoints int

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Size and balance a branched network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDesign(cmd.Context(), cmd.OutOrStdout(), flags, curvePoints)
		},
	}

	cmd.Flags().IntVar(&curvePoints, "curve", 0, "tabulate the system curve at this many points")
	return cmd
}

func fitPumpCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "fit-pump [points.csv]",
		Short: "Fit a quadratic pump curve to measured points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFitPump(cmd.OutOrStdout(), flags, args[0])
		},
	}
}
