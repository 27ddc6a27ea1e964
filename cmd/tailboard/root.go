package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/tailboard/internal/app"
)

// runDashboard is replaced in tests.
var runDashboard = app.Run

func newRootCommand() *cobra.Command {
	var opts app.Options

	rootCmd := &cobra.Command{
		Use:   "tailboard [flags] [paths...]",
		Short: "Follow several log files side by side in the terminal",
		Long: `tailboard follows one or more log files and shows their newest lines in
a live dashboard. Press 0 for the overview, 1-9 to focus a single file, h for
help and q to quit.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runOpts := opts
			runOpts.Files = append(append([]string(nil), opts.Files...), args...)
			return runDashboard(cmd.Context(), runOpts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file path (default ~/.config/tailboard/config.toml)")
	rootCmd.Flags().StringVar(&opts.PrefsPath, "prefs", "", "Preferences file path (default ~/.config/tailboard/prefs.toml)")
	rootCmd.Flags().StringSliceVarP(&opts.Files, "files", "f", nil, "Log files to follow (repeatable or comma separated)")
	rootCmd.Flags().IntVar(&opts.HistoryLines, "history", 0, "Lines of history kept per file")
	rootCmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Write diagnostics to this file")
	rootCmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Diagnostic level: debug, info, warn or error")

	rootCmd.AddCommand(newDumpCommand(&opts.ConfigPath))

	return rootCmd
}
