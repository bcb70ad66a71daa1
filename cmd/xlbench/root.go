package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xlbench",
		Short: "xlbench - token efficiency benchmark for Excel skills",
		Long: `xlbench benchmarks two ways of solving the same Excel analysis tasks
through the Anthropic API: the custom xl CLI skill and the built-in xlsx
skill. It measures token usage per task, grades response correctness with
a judge model, and reports which approach wins.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newReportCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
