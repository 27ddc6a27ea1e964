package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/five82/tailboard/internal/app"
	"github.com/five82/tailboard/internal/logtail"
)

const defaultDumpLines = 20

func newDumpCommand(configPath *string) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "dump [paths...]",
		Short: "Print the current tail of each file once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines <= 0 {
				return fmt.Errorf("--lines must be positive, got %d", lines)
			}
			cfg, err := app.Settings(app.Options{ConfigPath: *configPath, Files: args})
			if err != nil {
				return err
			}
			opts, err := app.TailerOptions(cfg, nil)
			if err != nil {
				return err
			}

			var rows [][]string
			var errs []error
			for _, path := range cfg.Files {
				tailer := logtail.New(path, opts)
				if _, err := tailer.Poll(); err != nil {
					errs = append(errs, err)
				}
				rows = append(rows, dumpRows(tailer.Snapshot(lines))...)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"File", "#", "Line"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return errors.Join(errs...)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", defaultDumpLines, "Lines to print per file")
	return cmd
}

// dumpRows numbers lines by their position in the whole file.
func dumpRows(snap logtail.Snapshot) [][]string {
	name := filepath.Base(snap.Path)
	if snap.Err != nil {
		return [][]string{{name, "", "unavailable: " + snap.Err.Error()}}
	}
	if len(snap.Lines) == 0 {
		return [][]string{{name, "", "(empty)"}}
	}
	first := snap.Total - len(snap.Lines) + 1
	rows := make([][]string, 0, len(snap.Lines))
	for i, line := range snap.Lines {
		rows = append(rows, []string{name, strconv.Itoa(first + i), ansi.Strip(line)})
	}
	return rows
}
