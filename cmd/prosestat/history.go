package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/prosestat/internal/config"
	"github.com/verte-zerg/prosestat/internal/report"
	"github.com/verte-zerg/prosestat/internal/store"
)

var (
	historyDB    string
	historyLast  int
	historyJSON  bool
	historyColor string
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.PersistentFlags().StringVar(&historyDB, "db", "", "history database path")
	cmd.PersistentFlags().IntVar(&historyLast, "last", defaultLast, "limit to last N runs (0 = all)")
	cmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "print JSON instead of tables")
	cmd.PersistentFlags().StringVar(&historyColor, "color", defaultColor, "color output: auto, always or never")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one archived run (an id prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShowCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "trend <word>",
		Short: "Show the rate of a crutch word across runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryTrendCmd,
	})
	return cmd
}

func openHistory(cmd *cobra.Command) (*store.Store, error) {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return nil, err
	}
	applyStringConfig(cmd, "db", &historyDB, fileCfg.History.DB)
	applyIntConfig(cmd, "last", &historyLast, fileCfg.History.Last)
	applyStringConfig(cmd, "color", &historyColor, fileCfg.Analyze.Color)
	if historyLast < 0 {
		return nil, fmt.Errorf("--last must be >= 0")
	}
	path := historyDB
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeHistory(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer closeHistory(st)

	runs, err := st.ListRuns(context.Background(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	out := cmd.OutOrStdout()
	if historyJSON {
		return writeJSON(out, runs)
	}
	return report.RenderRuns(out, runs, report.NewPainter(useColor(historyColor, out)))
}

func runHistoryShowCmd(cmd *cobra.Command, args []string) error {
	st, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer closeHistory(st)

	run, err := st.GetRun(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no run matches %q", args[0])
		}
		return fmt.Errorf("failed to load run: %w", err)
	}
	out := cmd.OutOrStdout()
	if historyJSON {
		return writeJSON(out, run)
	}
	return report.RenderRun(out, run, report.NewPainter(useColor(historyColor, out)))
}

func runHistoryTrendCmd(cmd *cobra.Command, args []string) error {
	st, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer closeHistory(st)

	points, err := st.RateHistory(context.Background(), args[0], historyLast)
	if err != nil {
		return fmt.Errorf("failed to load rate history: %w", err)
	}
	out := cmd.OutOrStdout()
	if historyJSON {
		return writeJSON(out, points)
	}
	return report.RenderTrend(out, args[0], points, report.NewPainter(useColor(historyColor, out)), report.TrendOptions{})
}
