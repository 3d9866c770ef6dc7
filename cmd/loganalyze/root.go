package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "loganalyze",
		Short: "Offline access-log analysis",
		Long: `loganalyze runs the serverlog-analyser job engine on local files.
Results are printed to stdout as JSON; logs and progress go to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file whose analysis section provides the defaults")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newAnalyzeCommand(opts))
	return cmd
}
