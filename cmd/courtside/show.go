package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/report"
	"github.com/fortuna/courtside/internal/store"
)

var showPeriod string

var showCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show a stored match box score",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showPeriod, "period", "", "show a single period instead of the full game (e.g. Q1, OT1)")
}

func runShow(cmd *cobra.Command, args []string) error {
	matchID := args[0]

	db, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	bundle, _, err := db.GetResult(cmd.Context(), matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "No stored match %q. Run 'courtside process %s' first.\n", matchID, matchID)
			return nil
		}
		return fmt.Errorf("load match: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, bundle)

	if showPeriod != "" {
		lines, ok := bundle.Periods[showPeriod]
		if !ok {
			fmt.Fprintf(os.Stderr, "No data for period %q\n", showPeriod)
			return nil
		}
		periodBundle := *bundle
		periodBundle.Players = lines
		fmt.Fprintf(os.Stdout, "Period %s\n\n", showPeriod)
		for _, side := range pbp.Sides {
			report.PrintPlayerTable(os.Stdout, &periodBundle, side)
		}
		return nil
	}

	for _, side := range pbp.Sides {
		report.PrintPlayerTable(os.Stdout, bundle, side)
	}
	report.PrintTeamTable(os.Stdout, bundle)
	return nil
}
