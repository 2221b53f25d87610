package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fortuna/courtside/internal/report"
	"github.com/fortuna/courtside/internal/store"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <match-id>",
	Short: "Show the verification report for a stored match",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	matchID := args[0]

	db, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	_, rep, err := db.GetResult(cmd.Context(), matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "No stored match %q. Run 'courtside process %s' first.\n", matchID, matchID)
			return nil
		}
		return fmt.Errorf("load match: %w", err)
	}
	if rep == nil {
		fmt.Fprintln(os.Stdout, "Match was processed without an official box score; nothing to verify against.")
		return nil
	}

	report.PrintVerificationReport(os.Stdout, rep)
	return nil
}
